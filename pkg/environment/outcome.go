package environment

import (
	"math/rand"

	"github.com/boristopalov/recsim/pkg/population"
)

// Reward values for the three ways a step can resolve.
const (
	CompletionReward = 1.0
	DropoutPenalty   = -1.0
	RepeatPenalty    = -0.5
)

// noiseStdDev is the standard deviation of the zero-mean Gaussian added to
// the completion probability before sampling.
const noiseStdDev = 0.1

// OutcomeModel resolves a single recommendation against a learner: it samples
// whether the learner completes the course and applies the learner's update
// rule with the sampled outcome.
type OutcomeModel struct {
	rng *rand.Rand
}

// NewOutcomeModel creates an outcome model drawing from rng.
func NewOutcomeModel(rng *rand.Rand) *OutcomeModel {
	return &OutcomeModel{rng: rng}
}

// Resolve runs one interaction. Recommending a course the learner has already
// been shown, in any past episode, trips the repeat guard: fixed penalty, no
// prediction, no state movement, not even a history append. Otherwise the
// completion outcome is sampled, reward is +1 on completion and -1 on
// dropout, and the learner's state is updated.
func (m *OutcomeModel) Resolve(l *population.Learner, c *population.Course) (reward float64, completed, repeat bool) {
	if l.HasSeen(c.ID) {
		return RepeatPenalty, false, true
	}

	completed = m.sampleCompletion(l, c)
	if completed {
		reward = CompletionReward
	} else {
		reward = DropoutPenalty
	}
	l.UpdateAfterInteraction(c, completed)
	return reward, completed, false
}

// sampleCompletion draws a Bernoulli outcome from the learner's noised
// completion probability. The noised value can land outside [0,1]; it is
// clamped before the draw, which matches comparing a uniform [0,1) variate
// against the raw value (p>1 always completes, p<0 never does).
func (m *OutcomeModel) sampleCompletion(l *population.Learner, c *population.Course) bool {
	p := l.CompletionProbability(c) + m.rng.NormFloat64()*noiseStdDev
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return m.rng.Float64() < p
}
