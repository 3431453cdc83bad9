// Package policy ships reference implementations of core.Policy. They live on
// the caller side of the environment contract: the simulator never imports
// them.
package policy

import (
	"context"
	"math/rand"

	"github.com/boristopalov/recsim/pkg/core"
)

// Random recommends uniformly over the catalog. It is the baseline every
// other policy gets measured against.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) SelectAction(ctx context.Context, obs core.Observation, space core.Discrete) (int, error) {
	return p.rng.Intn(space.N), nil
}

func (p *Random) Observe(action int, reward float64) {}

// EpsilonGreedy exploits the course with the best observed mean reward and
// explores uniformly with probability epsilon. Reward bookkeeping is a plain
// incremental mean per course.
type EpsilonGreedy struct {
	rng     *rand.Rand
	epsilon float64
	counts  map[int]int
	means   map[int]float64
}

func NewEpsilonGreedy(seed int64, epsilon float64) *EpsilonGreedy {
	return &EpsilonGreedy{
		rng:     rand.New(rand.NewSource(seed)),
		epsilon: epsilon,
		counts:  make(map[int]int),
		means:   make(map[int]float64),
	}
}

func (p *EpsilonGreedy) SelectAction(ctx context.Context, obs core.Observation, space core.Discrete) (int, error) {
	if len(p.means) == 0 || p.rng.Float64() < p.epsilon {
		return p.rng.Intn(space.N), nil
	}

	// Lowest id wins ties so exploitation is deterministic.
	best := -1
	var bestMean float64
	for action := 0; action < space.N; action++ {
		mean, ok := p.means[action]
		if !ok {
			continue
		}
		if best == -1 || mean > bestMean {
			best = action
			bestMean = mean
		}
	}
	return best, nil
}

func (p *EpsilonGreedy) Observe(action int, reward float64) {
	p.counts[action]++
	n := float64(p.counts[action])
	p.means[action] += (reward - p.means[action]) / n
}
