package core

// Observation is the fixed-length numeric projection of learner state plus
// exogenous context that the environment exposes on every reset and step.
type Observation []float32

// StepInfo carries per-step diagnostics alongside the reward signal.
type StepInfo struct {
	LearnerID    int
	CourseID     int
	Completed    bool
	Repeat       bool // the course had already been shown to this learner
	Satisfaction float64
	Step         int
}

// StepResult is the (observation, reward, done, info) tuple returned by a
// single environment step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        StepInfo
}

// Discrete describes an action space of N distinct actions numbered 0..N-1.
type Discrete struct {
	N int
}

// Contains reports whether action lies inside the space.
func (d Discrete) Contains(action int) bool {
	return action >= 0 && action < d.N
}

// Box describes a bounded continuous observation space of Dim elements, each
// expected to lie in [Low, High].
type Box struct {
	Low  float32
	High float32
	Dim  int
}
