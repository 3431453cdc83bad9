package environment

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/boristopalov/recsim/pkg/core"
	"github.com/boristopalov/recsim/pkg/population"
)

var (
	// ErrInvalidAction reports an action id outside the discrete action space.
	ErrInvalidAction = errors.New("environment: action outside action space")
	// ErrNotReady reports a Step call before the first Reset.
	ErrNotReady = errors.New("environment: step called before reset")
)

// Config holds the construction-time inputs of the simulator.
type Config struct {
	NumLearners    int
	NumCourses     int
	MaxSteps       int
	ObservationDim int   // must equal ObservationDim; 0 means use the default
	Seed           int64 // seed for the environment's owned random source
}

// RecEnv simulates a population of learners responding probabilistically to
// recommended courses over bounded episodes.
//
// Learner state is shared, mutable, and persists across episodes: Reset only
// reseats the episode (step counter plus a freshly sampled learner) and never
// rolls back skill, interests, or history. A learner remembers every course it
// has ever been shown, which makes repeat penalties carry over between
// episodes.
//
// All randomness (population generation, learner sampling, completion noise,
// context features) flows through a single owned *rand.Rand, so a seed fixes
// the full trajectory. The mutex serializes calls on one instance; concurrent
// drivers must each construct their own environment.
type RecEnv struct {
	cfg     Config
	rng     *rand.Rand
	pop     *population.Population
	outcome *OutcomeModel
	builder *ObservationBuilder

	mu               sync.Mutex
	currentStep      int
	currentLearnerID int
	started          bool
}

var _ core.Environment = (*RecEnv)(nil)

// New constructs the environment and generates its population. Configuration
// errors (empty population, non-positive horizon, observation dimension that
// does not match the builder layout) are surfaced here, before any episode
// can run.
func New(cfg Config) (*RecEnv, error) {
	if cfg.ObservationDim == 0 {
		cfg.ObservationDim = ObservationDim
	}
	if cfg.ObservationDim != ObservationDim {
		return nil, fmt.Errorf("environment: observation dim must be %d, got %d", ObservationDim, cfg.ObservationDim)
	}
	if cfg.NumLearners <= 0 {
		return nil, fmt.Errorf("environment: need at least one learner, got %d", cfg.NumLearners)
	}
	if cfg.NumCourses <= 0 {
		return nil, fmt.Errorf("environment: need at least one course, got %d", cfg.NumCourses)
	}
	if cfg.MaxSteps <= 0 {
		return nil, fmt.Errorf("environment: episode horizon must be positive, got %d", cfg.MaxSteps)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	return &RecEnv{
		cfg:     cfg,
		rng:     rng,
		pop:     population.New(rng, cfg.NumLearners, cfg.NumCourses),
		outcome: NewOutcomeModel(rng),
		builder: NewObservationBuilder(rng, cfg.MaxSteps),
	}, nil
}

// Reset starts a new episode: the step counter goes back to zero, a learner is
// sampled uniformly from the population, and its observation is returned.
// Valid in any state. Population state is untouched.
func (e *RecEnv) Reset() core.Observation {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.currentStep = 0
	e.currentLearnerID = e.rng.Intn(e.cfg.NumLearners)
	e.started = true

	return e.builder.Build(e.pop.Learners[e.currentLearnerID])
}

// Step resolves one recommendation (action = course id) against the episode's
// learner. The action is validated before any state moves; an out-of-range
// action or a Step before the first Reset fails without side effects.
func (e *RecEnv) Step(action int) (core.StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return core.StepResult{}, ErrNotReady
	}
	if !e.ActionSpace().Contains(action) {
		return core.StepResult{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidAction, action, e.cfg.NumCourses)
	}

	learner := e.pop.Learners[e.currentLearnerID]
	course := e.pop.Courses[action]

	reward, completed, repeat := e.outcome.Resolve(learner, course)

	e.currentStep++

	return core.StepResult{
		Observation: e.builder.Build(learner),
		Reward:      reward,
		Done:        e.currentStep >= e.cfg.MaxSteps,
		Info: core.StepInfo{
			LearnerID:    learner.ID,
			CourseID:     course.ID,
			Completed:    completed,
			Repeat:       repeat,
			Satisfaction: learner.Satisfaction,
			Step:         e.currentStep,
		},
	}, nil
}

// Seed reseeds the environment's random source. Learner and course state are
// left alone; only future draws change.
func (e *RecEnv) Seed(seed int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng.Seed(seed)
}

// ActionSpace returns the discrete space of recommendable course ids.
func (e *RecEnv) ActionSpace() core.Discrete {
	return core.Discrete{N: e.cfg.NumCourses}
}

// ObservationSpace returns the bounded box observations are declared to live
// in.
func (e *RecEnv) ObservationSpace() core.Box {
	return core.Box{Low: 0, High: 1, Dim: ObservationDim}
}

// Learner exposes a learner by id, mainly for diagnostics and tests.
func (e *RecEnv) Learner(id int) *population.Learner {
	return e.pop.Learners[id]
}

// Course exposes a course by id, mainly for diagnostics and tests.
func (e *RecEnv) Course(id int) *population.Course {
	return e.pop.Courses[id]
}
