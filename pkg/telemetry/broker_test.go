package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerFanout(t *testing.T) {
	broker := NewBroker()

	chA := make(chan StepEvent, 4)
	chB := make(chan StepEvent, 4)
	require.NoError(t, broker.Subscribe("csv", chA))
	require.NoError(t, broker.Subscribe("metrics", chB))

	ev := StepEvent{RunID: "run-1", Episode: 0, Step: 1, CourseID: 3, Reward: 1.0, Completed: true}
	require.NoError(t, broker.Publish(ev))

	assert.Equal(t, ev, <-chA)
	assert.Equal(t, ev, <-chB)
}

func TestBrokerDuplicateSubscribe(t *testing.T) {
	broker := NewBroker()
	ch := make(chan StepEvent, 1)

	require.NoError(t, broker.Subscribe("csv", ch))
	require.Error(t, broker.Subscribe("csv", ch))
}

func TestBrokerUnsubscribe(t *testing.T) {
	broker := NewBroker()
	ch := make(chan StepEvent, 1)

	require.Error(t, broker.Unsubscribe("unknown"))

	require.NoError(t, broker.Subscribe("csv", ch))
	require.NoError(t, broker.Unsubscribe("csv"))

	require.NoError(t, broker.Publish(StepEvent{Step: 1}))
	assert.Empty(t, ch)
}

func TestBrokerFullChannel(t *testing.T) {
	broker := NewBroker()
	ch := make(chan StepEvent, 1)
	require.NoError(t, broker.Subscribe("slow", ch))

	require.NoError(t, broker.Publish(StepEvent{Step: 1}))
	err := broker.Publish(StepEvent{Step: 2})
	require.Error(t, err, "publish into a full channel must not block")
}

func TestBrokerReset(t *testing.T) {
	broker := NewBroker()
	ch := make(chan StepEvent, 1)
	require.NoError(t, broker.Subscribe("csv", ch))

	broker.Reset()

	require.NoError(t, broker.Publish(StepEvent{Step: 1}))
	assert.Empty(t, ch)
	require.NoError(t, broker.Subscribe("csv", ch), "reset frees subscriber ids")
}
