package experiment

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/boristopalov/recsim/pkg/telemetry"
)

// Metrics tracks rollout counters and the reward distribution on a dedicated
// prometheus registry, so two rollouts in one process never share collectors.
// It implements telemetry.Recorder and is attached to every rollout.
type Metrics struct {
	registry    *prometheus.Registry
	steps       prometheus.Counter
	episodes    prometheus.Counter
	completions prometheus.Counter
	dropouts    prometheus.Counter
	repeats     prometheus.Counter
	reward      prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recsim_steps_total",
			Help: "Environment steps taken.",
		}),
		episodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recsim_episodes_total",
			Help: "Episodes run to termination.",
		}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recsim_completions_total",
			Help: "Steps where the learner completed the recommended course.",
		}),
		dropouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recsim_dropouts_total",
			Help: "Steps where the learner dropped the recommended course.",
		}),
		repeats: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recsim_repeats_total",
			Help: "Steps penalized for recommending an already-shown course.",
		}),
		reward: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recsim_step_reward",
			Help:    "Per-step reward distribution.",
			Buckets: prometheus.LinearBuckets(-1, 0.25, 9),
		}),
	}
	m.registry.MustRegister(m.steps, m.episodes, m.completions, m.dropouts, m.repeats, m.reward)
	return m
}

// Record implements telemetry.Recorder.
func (m *Metrics) Record(ev telemetry.StepEvent) {
	m.steps.Inc()
	m.reward.Observe(ev.Reward)
	switch {
	case ev.Repeat:
		m.repeats.Inc()
	case ev.Completed:
		m.completions.Inc()
	default:
		m.dropouts.Inc()
	}
	if ev.Done {
		m.episodes.Inc()
	}
}

// Registry exposes the underlying registry, e.g. to mount an exporter next to
// a long-running rollout.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Summary gathers the registry into a flat name-to-value map. Histograms
// contribute _count and _sum entries.
func (m *Metrics) Summary() (map[string]float64, error) {
	fams, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, fam := range fams {
		for _, metric := range fam.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				out[fam.GetName()] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				out[fam.GetName()+"_count"] = float64(h.GetSampleCount())
				out[fam.GetName()+"_sum"] = h.GetSampleSum()
			}
		}
	}
	return out, nil
}
