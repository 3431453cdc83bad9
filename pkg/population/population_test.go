package population

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := New(rng, 10, 25)

	require.Len(t, p.Learners, 10)
	require.Len(t, p.Courses, 25)

	t.Run("ids are dense slice indexes", func(t *testing.T) {
		for i, l := range p.Learners {
			assert.Equal(t, i, l.ID)
		}
		for i, c := range p.Courses {
			assert.Equal(t, i, c.ID)
		}
	})

	t.Run("course features normalized and attributes in range", func(t *testing.T) {
		for _, c := range p.Courses {
			var sum float64
			for _, w := range c.ContentFeatures {
				require.GreaterOrEqual(t, w, 0.0)
				sum += w
			}
			require.InDelta(t, 1.0, sum, 1e-9)

			require.GreaterOrEqual(t, c.Difficulty, 0.1)
			require.LessOrEqual(t, c.Difficulty, 0.9)
			require.GreaterOrEqual(t, c.TimeCommitment, 0.2)
			require.LessOrEqual(t, c.TimeCommitment, 1.0)
			require.GreaterOrEqual(t, c.Popularity, 0.1)
			require.LessOrEqual(t, c.Popularity, 0.9)
			require.GreaterOrEqual(t, c.Quality, 0.3)
			require.LessOrEqual(t, c.Quality, 0.9)
		}
	})
}

func TestPopulationDeterministicBySeed(t *testing.T) {
	a := New(rand.New(rand.NewSource(7)), 5, 5)
	b := New(rand.New(rand.NewSource(7)), 5, 5)

	for i := range a.Learners {
		require.Equal(t, a.Learners[i], b.Learners[i])
	}
	for i := range a.Courses {
		require.Equal(t, a.Courses[i], b.Courses[i])
	}
}

func TestNewCourseFromNormalizes(t *testing.T) {
	c := NewCourseFrom(1, []float64{2, 2, 2, 2, 2}, 0.5, 0.5, 0.5, 0.5)
	for _, w := range c.ContentFeatures {
		assert.InDelta(t, 0.2, w, 1e-12)
	}
}
