package population

import (
	"math/rand"
)

// NumTopics is the dimensionality of the latent topic space shared by
// learner interests and course content features.
const NumTopics = 5

// randomDistribution draws NumTopics uniform values and normalizes them into
// a categorical distribution.
func randomDistribution(rng *rand.Rand) []float64 {
	v := make([]float64, NumTopics)
	for i := range v {
		v[i] = rng.Float64()
	}
	normalize(v)
	return v
}

// normalize scales v in place so its elements sum to 1.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum == 0 {
		return
	}
	for i := range v {
		v[i] /= sum
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func uniformIn(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
