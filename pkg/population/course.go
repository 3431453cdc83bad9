package population

import (
	"math/rand"
)

// Course models one learning item with fixed latent attributes. Courses are
// immutable once created.
type Course struct {
	ID              int
	ContentFeatures []float64 // topic mixture over NumTopics latent topics, sums to 1
	Difficulty      float64
	TimeCommitment  float64
	Popularity      float64
	Quality         float64
}

// NewCourse creates a course with randomized attributes drawn from rng.
func NewCourse(id int, rng *rand.Rand) *Course {
	return &Course{
		ID:              id,
		ContentFeatures: randomDistribution(rng),
		Difficulty:      uniformIn(rng, 0.1, 0.9),
		TimeCommitment:  uniformIn(rng, 0.2, 1.0),
		Popularity:      uniformIn(rng, 0.1, 0.9),
		Quality:         uniformIn(rng, 0.3, 0.9),
	}
}

// NewCourseFrom creates a course from explicit attributes. The feature vector
// is normalized to sum to 1 at construction, like randomly generated ones.
func NewCourseFrom(id int, features []float64, difficulty, timeCommitment, popularity, quality float64) *Course {
	f := make([]float64, len(features))
	copy(f, features)
	normalize(f)
	return &Course{
		ID:              id,
		ContentFeatures: f,
		Difficulty:      difficulty,
		TimeCommitment:  timeCommitment,
		Popularity:      popularity,
		Quality:         quality,
	}
}
