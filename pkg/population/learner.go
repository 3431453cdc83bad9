package population

import (
	"math"
	"math/rand"
)

// Update-rule constants. Skill moves by at most learnRate per completion,
// interests and the engagement scores follow exponential moving averages.
const (
	learnRate   = 0.05
	driftRate   = 0.05
	engageDecay = 0.9
)

// Learner models one simulated learner: a latent interest distribution,
// scalar skill/time/engagement attributes, and the full history of courses
// it has been shown. History is append-only and never truncated; it belongs
// to the learner, not to any single episode.
type Learner struct {
	ID             int
	Interests      []float64 // categorical over NumTopics latent topics, sums to 1
	SkillLevel     float64
	AvailableTime  float64
	CompletionRate float64
	Satisfaction   float64
	History        []int
}

// NewLearner creates a learner with randomized attributes drawn from rng.
func NewLearner(id int, rng *rand.Rand) *Learner {
	return &Learner{
		ID:             id,
		Interests:      randomDistribution(rng),
		SkillLevel:     uniformIn(rng, 0.1, 0.9),
		AvailableTime:  uniformIn(rng, 0.2, 1.0),
		CompletionRate: uniformIn(rng, 0.5, 0.9),
		Satisfaction:   uniformIn(rng, 0.3, 0.7),
		History:        make([]int, 0),
	}
}

// HasSeen reports whether the course has ever been shown to this learner,
// across all episodes it has lived through.
func (l *Learner) HasSeen(courseID int) bool {
	for _, id := range l.History {
		if id == courseID {
			return true
		}
	}
	return false
}

// CompletionProbability returns the base probability that the learner
// finishes the course, before any noise: a weighted blend of interest
// alignment, difficulty match, time compatibility, and historical
// completion rate. The result is not clamped; weights keep it near [0,1]
// but callers sampling from it decide how to treat the edges.
func (l *Learner) CompletionProbability(c *Course) float64 {
	interestAlignment := dot(l.Interests, c.ContentFeatures)
	difficultyMatch := 1.0 - math.Abs(l.SkillLevel-c.Difficulty)
	timeCompatibility := 1.0 - math.Abs(l.AvailableTime-c.TimeCommitment)

	return 0.4*interestAlignment +
		0.3*difficultyMatch +
		0.2*timeCompatibility +
		0.1*l.CompletionRate
}

// UpdateAfterInteraction mutates the learner's state after a recommendation
// has been resolved. On completion, skill grows in proportion to how well the
// course difficulty matched, interests drift toward the course content, and
// completion rate and satisfaction move toward 1. On dropout, the engagement
// scores decay and skill and interests stay put. The course id is appended to
// history either way.
func (l *Learner) UpdateAfterInteraction(c *Course, completed bool) {
	l.History = append(l.History, c.ID)

	if !completed {
		l.CompletionRate = engageDecay * l.CompletionRate
		l.Satisfaction = engageDecay * l.Satisfaction
		return
	}

	skillMatch := 1.0 - math.Abs(l.SkillLevel-c.Difficulty)
	l.SkillLevel = math.Min(1.0, l.SkillLevel+learnRate*skillMatch)

	for i := range l.Interests {
		l.Interests[i] = (1-driftRate)*l.Interests[i] + driftRate*c.ContentFeatures[i]
	}
	normalize(l.Interests)

	l.CompletionRate = engageDecay*l.CompletionRate + 0.1

	// Satisfaction tracks alignment with the interests as they stand after
	// the drift above, not the ones the learner walked in with.
	l.Satisfaction = engageDecay*l.Satisfaction + 0.1*dot(l.Interests, c.ContentFeatures)
}
