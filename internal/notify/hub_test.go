package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(buffer int) *Hub {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return NewHub(logger, buffer)
}

func TestHub_PublishFansOut(t *testing.T) {
	hub := newTestHub(4)
	a, unsubA := hub.Subscribe()
	b, unsubB := hub.Subscribe()
	defer unsubA()
	defer unsubB()
	require.Equal(t, 2, hub.Subscribers())

	hub.Publish(context.Background(), EventPersonalSummaryUpdated, "hello")

	for _, ch := range []<-chan Event{a, b} {
		evt := <-ch
		assert.Equal(t, EventPersonalSummaryUpdated, evt.Name)
		assert.NotEmpty(t, evt.ID)

		var text string
		require.NoError(t, json.Unmarshal(evt.Data, &text))
		assert.Equal(t, "hello", text)
	}
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	logger, hook := test.NewNullLogger()
	hub := NewHub(logger, 1)
	ch, unsub := hub.Subscribe()
	defer unsub()

	hub.Publish(context.Background(), EventCommitDataUpdated, []int{1})
	hub.Publish(context.Background(), EventCommitDataUpdated, []int{2})

	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 1, hook.LastEntry().Data["dropped"])

	evt := <-ch
	assert.JSONEq(t, `[1]`, string(evt.Data))
	select {
	case extra := <-ch:
		t.Fatalf("unexpected event %s", extra.Data)
	default:
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := newTestHub(1)
	ch, unsub := hub.Subscribe()
	unsub()
	unsub()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers())

	// publishing with nobody listening is fine
	hub.Publish(context.Background(), EventCommitDataUpdated, nil)
}

func TestHub_Close(t *testing.T) {
	hub := newTestHub(1)
	ch, unsub := hub.Subscribe()
	hub.Close()
	hub.Close()
	unsub()

	_, open := <-ch
	assert.False(t, open)

	late, _ := hub.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestHub_UnencodablePayload(t *testing.T) {
	logger, hook := test.NewNullLogger()
	hub := NewHub(logger, 1)
	ch, unsub := hub.Subscribe()
	defer unsub()

	hub.Publish(context.Background(), EventCommitDataUpdated, make(chan int))

	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Len(t, ch, 0)
}
