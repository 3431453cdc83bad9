package environment

import (
	"math/rand"

	"github.com/boristopalov/recsim/pkg/core"
	"github.com/boristopalov/recsim/pkg/population"
)

// ObservationDim is the fixed length of every observation: the learner's
// interest distribution, its four scalar attributes, the normalized history
// length, and contextDim exogenous context values.
const ObservationDim = population.NumTopics + 5 + contextDim

// contextDim is the number of synthetic context features appended to each
// observation, sized so the builder fills the declared 15-element space.
// Real context signals (time of day, device, session) are deliberately
// unmodeled; these slots hold uniform noise until a v2 wires in something
// real.
const contextDim = 5

// ObservationBuilder projects learner state into the fixed-length vector a
// policy sees.
type ObservationBuilder struct {
	rng      *rand.Rand
	maxSteps int
}

// NewObservationBuilder creates a builder that normalizes history length by
// maxSteps and draws context features from rng.
func NewObservationBuilder(rng *rand.Rand, maxSteps int) *ObservationBuilder {
	return &ObservationBuilder{rng: rng, maxSteps: maxSteps}
}

// Build returns the learner's observation. The history term divides by the
// episode horizon even though history spans episodes, so it drifts past 1 for
// learners that have lived longer than one horizon; the declared [0,1] bounds
// hold for the first 11 components within a learner's first episode.
func (b *ObservationBuilder) Build(l *population.Learner) core.Observation {
	obs := make(core.Observation, 0, ObservationDim)

	for _, w := range l.Interests {
		obs = append(obs, float32(w))
	}
	obs = append(obs,
		float32(l.SkillLevel),
		float32(l.AvailableTime),
		float32(l.CompletionRate),
		float32(l.Satisfaction),
		float32(float64(len(l.History))/float64(b.maxSteps)),
	)
	for i := 0; i < contextDim; i++ {
		obs = append(obs, float32(b.rng.Float64()))
	}
	return obs
}
