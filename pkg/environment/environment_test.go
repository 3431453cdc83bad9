package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/recsim/pkg/core"
)

func newTestEnv(t *testing.T, cfg Config) *RecEnv {
	t.Helper()
	env, err := New(cfg)
	require.NoError(t, err)
	return env
}

func TestNewRejectsBadConfig(t *testing.T) {
	base := Config{NumLearners: 1, NumCourses: 1, MaxSteps: 1}

	t.Run("observation dim mismatch", func(t *testing.T) {
		cfg := base
		cfg.ObservationDim = 10
		_, err := New(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "observation dim")
	})

	t.Run("empty learner population", func(t *testing.T) {
		cfg := base
		cfg.NumLearners = 0
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("empty course catalog", func(t *testing.T) {
		cfg := base
		cfg.NumCourses = 0
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("non-positive horizon", func(t *testing.T) {
		cfg := base
		cfg.MaxSteps = 0
		_, err := New(cfg)
		require.Error(t, err)
	})
}

func TestSpaces(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 3, NumCourses: 12, MaxSteps: 5})

	assert.Equal(t, core.Discrete{N: 12}, env.ActionSpace())
	assert.Equal(t, core.Box{Low: 0, High: 1, Dim: 15}, env.ObservationSpace())
}

func TestStepBeforeResetFails(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 2, NumCourses: 3, MaxSteps: 5})

	_, err := env.Step(0)
	require.ErrorIs(t, err, ErrNotReady)
}

func TestInvalidActionRejectedBeforeStateMoves(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 1, NumCourses: 3, MaxSteps: 5})
	env.Reset()

	for _, action := range []int{-1, 3, 100} {
		_, err := env.Step(action)
		require.ErrorIs(t, err, ErrInvalidAction, "action %d", action)
	}

	// The rejected actions must not have consumed steps or touched the learner.
	require.Empty(t, env.Learner(0).History)
	res, err := env.Step(0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Info.Step)
}

func TestResetObservation(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 5, NumCourses: 10, MaxSteps: 20, Seed: 3})

	obs := env.Reset()
	require.Len(t, obs, 15)
	for i := 0; i < 11; i++ {
		assert.GreaterOrEqual(t, obs[i], float32(0), "component %d", i)
		assert.LessOrEqual(t, obs[i], float32(1), "component %d", i)
	}
}

func TestEpisodeTerminatesAtHorizon(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 1, NumCourses: 5, MaxSteps: 3, Seed: 1})
	env.Reset()

	for step, action := range []int{0, 1, 2} {
		res, err := env.Step(action)
		require.NoError(t, err)
		assert.Equal(t, step+1, res.Info.Step)
		assert.Equal(t, step == 2, res.Done, "step %d", step+1)
		require.Len(t, res.Observation, 15)
	}
}

func TestFreshCourseRewardIsUnit(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 1, NumCourses: 50, MaxSteps: 50, Seed: 9})
	env.Reset()

	for action := 0; action < 50; action++ {
		res, err := env.Step(action)
		require.NoError(t, err)
		assert.False(t, res.Info.Repeat)
		if res.Info.Completed {
			assert.Equal(t, CompletionReward, res.Reward)
		} else {
			assert.Equal(t, DropoutPenalty, res.Reward)
		}
	}
}

func TestRepeatRecommendationPenalty(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 1, NumCourses: 3, MaxSteps: 2, Seed: 11})

	env.Reset()
	learner := env.Learner(0)

	first, err := env.Step(0)
	require.NoError(t, err)
	assert.False(t, first.Done)
	assert.Equal(t, 0, first.Info.LearnerID, "single-learner population must pick learner 0")

	// Snapshot state after the first interaction.
	interests := append([]float64(nil), learner.Interests...)
	skill := learner.SkillLevel
	completionRate := learner.CompletionRate
	satisfaction := learner.Satisfaction

	second, err := env.Step(0)
	require.NoError(t, err)

	assert.Equal(t, RepeatPenalty, second.Reward)
	assert.False(t, second.Info.Completed)
	assert.True(t, second.Info.Repeat)
	assert.True(t, second.Done)

	t.Run("repeat guard leaves learner untouched", func(t *testing.T) {
		assert.Equal(t, interests, learner.Interests)
		assert.Equal(t, skill, learner.SkillLevel)
		assert.Equal(t, completionRate, learner.CompletionRate)
		assert.Equal(t, satisfaction, learner.Satisfaction)
		assert.Equal(t, []int{0}, learner.History, "no second history append")
	})
}

func TestHistoryPersistsAcrossEpisodes(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 1, NumCourses: 3, MaxSteps: 2, Seed: 5})

	env.Reset()
	_, err := env.Step(0)
	require.NoError(t, err)
	_, err = env.Step(1)
	require.NoError(t, err)

	// New episode, same (only) learner: course 0 is still remembered.
	env.Reset()
	res, err := env.Step(0)
	require.NoError(t, err)
	assert.Equal(t, RepeatPenalty, res.Reward)
	assert.True(t, res.Info.Repeat)
}

func TestSeedReproducibility(t *testing.T) {
	cfg := Config{NumLearners: 4, NumCourses: 8, MaxSteps: 5, Seed: 42}
	actions := []int{3, 1, 4, 1, 5, 2, 6, 0, 7, 3}

	trace := func() ([]core.Observation, []float64) {
		env := newTestEnv(t, cfg)
		var observations []core.Observation
		var rewards []float64

		observations = append(observations, env.Reset())
		for i, a := range actions {
			if i == 5 {
				observations = append(observations, env.Reset())
			}
			res, err := env.Step(a)
			require.NoError(t, err)
			observations = append(observations, res.Observation)
			rewards = append(rewards, res.Reward)
		}
		return observations, rewards
	}

	obsA, rewardsA := trace()
	obsB, rewardsB := trace()
	require.Equal(t, obsA, obsB)
	require.Equal(t, rewardsA, rewardsB)
}

func TestSeedDoesNotResetPopulation(t *testing.T) {
	env := newTestEnv(t, Config{NumLearners: 1, NumCourses: 3, MaxSteps: 5, Seed: 1})
	env.Reset()
	_, err := env.Step(0)
	require.NoError(t, err)

	env.Seed(99)

	// Reseeding changes future draws but not accumulated learner state.
	assert.Equal(t, []int{0}, env.Learner(0).History)
	res, err := env.Step(0)
	require.NoError(t, err)
	assert.Equal(t, RepeatPenalty, res.Reward)
}
