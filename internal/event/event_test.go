package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var got []string
	bus.Subscribe("test.event", func(ctx context.Context, evt Event) error {
		got = append(got, evt.Payload.(string))
		return nil
	})

	err := bus.Publish(context.Background(), New("test.event", "hello"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, got)
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), New("nobody.listens", nil))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewMemoryBus()

	secondCalled := false
	bus.Subscribe("test.event", func(ctx context.Context, evt Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("test.event", func(ctx context.Context, evt Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(context.Background(), New("test.event", nil))
	assert.Error(t, err)
	assert.True(t, secondCalled)
}

func TestNew_SetsVersionAndType(t *testing.T) {
	evt := New("some.type", 42)
	assert.Equal(t, "1.0", evt.Version)
	assert.Equal(t, Type("some.type"), evt.Type)
	assert.Equal(t, 42, evt.Payload)
}
