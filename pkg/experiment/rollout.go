package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boristopalov/recsim/pkg/core"
	"github.com/boristopalov/recsim/pkg/telemetry"
)

// Rollout drives an environment with a policy for a fixed number of episodes
// and publishes every step through the telemetry broker to the attached
// recorders. It is an evaluation harness, not a trainer: the policy may learn
// from its Observe callbacks, but no optimization happens here.
type Rollout struct {
	name      string
	runID     string
	env       core.Environment
	policy    core.Policy
	episodes  int
	broker    telemetry.Broker
	metrics   *Metrics
	recorders []telemetry.Recorder
	log       *slog.Logger
}

type Option func(*Rollout)

// WithRecorder attaches an additional step recorder.
func WithRecorder(r telemetry.Recorder) Option {
	return func(ro *Rollout) {
		ro.recorders = append(ro.recorders, r)
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(ro *Rollout) {
		ro.log = l
	}
}

// NewRollout creates a rollout over env driven by policy. A metrics recorder
// is always attached.
func NewRollout(name string, env core.Environment, policy core.Policy, episodes int, opts ...Option) *Rollout {
	r := &Rollout{
		name:     name,
		runID:    uuid.New().String(),
		env:      env,
		policy:   policy,
		episodes: episodes,
		broker:   telemetry.NewBroker(),
		metrics:  NewMetrics(),
		log:      slog.Default(),
	}
	r.recorders = append(r.recorders, r.metrics)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the unique id of this rollout.
func (r *Rollout) RunID() string {
	return r.runID
}

// Metrics returns the rollout's metrics collector.
func (r *Rollout) Metrics() *Metrics {
	return r.metrics
}

// subscription pairs a broker channel with the goroutine draining it into a
// recorder.
type subscription struct {
	id   string
	ch   chan telemetry.StepEvent
	done chan struct{}
}

func (r *Rollout) attach(rec telemetry.Recorder) (*subscription, error) {
	sub := &subscription{
		id:   uuid.New().String(),
		ch:   make(chan telemetry.StepEvent, 256),
		done: make(chan struct{}),
	}
	if err := r.broker.Subscribe(sub.id, sub.ch); err != nil {
		return nil, err
	}
	go func() {
		defer close(sub.done)
		for ev := range sub.ch {
			rec.Record(ev)
		}
	}()
	return sub, nil
}

func (r *Rollout) detach(sub *subscription) {
	if err := r.broker.Unsubscribe(sub.id); err != nil {
		r.log.Warn("failed to unsubscribe recorder", "id", sub.id, "error", err)
	}
	close(sub.ch)
	<-sub.done
}

// Run executes the configured number of episodes. All recorders are drained
// before Run returns, so metrics and trajectory files are complete when it
// does.
func (r *Rollout) Run(ctx context.Context) error {
	subs := make([]*subscription, 0, len(r.recorders))
	for _, rec := range r.recorders {
		sub, err := r.attach(rec)
		if err != nil {
			for _, s := range subs {
				r.detach(s)
			}
			return fmt.Errorf("rollout %s: %w", r.runID, err)
		}
		subs = append(subs, sub)
	}

	r.log.Info("starting rollout",
		"name", r.name,
		"run_id", r.runID,
		"episodes", r.episodes,
		"action_space", r.env.ActionSpace().N,
	)

	runErr := r.runEpisodes(ctx)

	for _, sub := range subs {
		r.detach(sub)
	}
	if runErr != nil {
		return fmt.Errorf("rollout %s: %w", r.runID, runErr)
	}

	if summary, err := r.metrics.Summary(); err == nil {
		r.log.Info("rollout finished", "run_id", r.runID, "summary", summary)
	}
	return nil
}

func (r *Rollout) runEpisodes(ctx context.Context) error {
	for ep := 0; ep < r.episodes; ep++ {
		total, completions, err := r.runEpisode(ctx, ep)
		if err != nil {
			return fmt.Errorf("episode %d: %w", ep, err)
		}
		r.log.Info("episode finished",
			"episode", ep,
			"total_reward", total,
			"completions", completions,
		)
	}
	return nil
}

func (r *Rollout) runEpisode(ctx context.Context, episode int) (float64, int, error) {
	obs := r.env.Reset()

	var totalReward float64
	var completions int
	for {
		select {
		case <-ctx.Done():
			return totalReward, completions, ctx.Err()
		default:
		}

		action, err := r.policy.SelectAction(ctx, obs, r.env.ActionSpace())
		if err != nil {
			return totalReward, completions, fmt.Errorf("select action: %w", err)
		}
		res, err := r.env.Step(action)
		if err != nil {
			return totalReward, completions, fmt.Errorf("step: %w", err)
		}
		r.policy.Observe(action, res.Reward)

		if err := r.broker.Publish(telemetry.StepEvent{
			RunID:        r.runID,
			Episode:      episode,
			Step:         res.Info.Step,
			LearnerID:    res.Info.LearnerID,
			CourseID:     res.Info.CourseID,
			Reward:       res.Reward,
			Completed:    res.Info.Completed,
			Repeat:       res.Info.Repeat,
			Satisfaction: res.Info.Satisfaction,
			Done:         res.Done,
		}); err != nil {
			r.log.Warn("dropping step event", "error", err)
		}

		totalReward += res.Reward
		if res.Info.Completed {
			completions++
		}
		obs = res.Observation
		if res.Done {
			return totalReward, completions, nil
		}
	}
}
