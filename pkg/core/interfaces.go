package core

import (
	"context"
)

// Environment is the contract between the simulator and whatever drives it.
// A trainer, evaluation harness, or hand-rolled loop only ever needs these
// five operations; the simulator never depends on the caller.
type Environment interface {
	// Reset starts a new episode and returns the initial observation
	Reset() Observation
	// Step resolves one recommended course against the current learner
	Step(action int) (StepResult, error)
	// Seed reseeds the environment's random source
	Seed(seed int64)
	// ActionSpace returns the discrete space of recommendable course ids
	ActionSpace() Discrete
	// ObservationSpace returns the bounded space observations live in
	ObservationSpace() Box
}

// Policy selects the next course to recommend given the latest observation.
type Policy interface {
	// SelectAction picks an action inside the given space
	SelectAction(ctx context.Context, obs Observation, space Discrete) (int, error)
	// Observe feeds the reward of the previous action back to the policy
	Observe(action int, reward float64)
}
