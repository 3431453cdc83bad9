package population

import (
	"math/rand"
)

// Population is the closed world the simulator runs against: dense-id arenas
// of learners and courses. Ids double as slice indexes, so lookup is O(1) and
// there is no pointer graph to manage. The population is generated once and
// outlives every episode; learners mutate, courses never do.
type Population struct {
	Learners []*Learner
	Courses  []*Course
}

// New generates a population of the given sizes from rng.
func New(rng *rand.Rand, numLearners, numCourses int) *Population {
	p := &Population{
		Learners: make([]*Learner, numLearners),
		Courses:  make([]*Course, numCourses),
	}
	for id := range p.Learners {
		p.Learners[id] = NewLearner(id, rng)
	}
	for id := range p.Courses {
		p.Courses[id] = NewCourse(id, rng)
	}
	return p
}
