package telemetry

// StepEvent is the per-step record the rollout driver publishes: one event
// per environment step, carrying the diagnostics a recorder needs to rebuild
// the trajectory.
type StepEvent struct {
	RunID        string
	Episode      int
	Step         int
	LearnerID    int
	CourseID     int
	Reward       float64
	Completed    bool
	Repeat       bool
	Satisfaction float64
	Done         bool
}

// Recorder consumes step events, typically at the end of a subscriber
// channel.
type Recorder interface {
	Record(ev StepEvent)
}

// Broker fans step events out to subscribers.
type Broker interface {
	// Publish delivers an event to every subscriber
	Publish(ev StepEvent) error
	// Subscribe registers a channel to receive events
	Subscribe(id string, ch chan<- StepEvent) error
	// Unsubscribe removes a subscription
	Unsubscribe(id string) error
}
