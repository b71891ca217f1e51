package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestBus_PublishSyncOrder(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))

	var calls []string
	bus.Subscribe(BatchSucceeded, HandlerFunc(func(_ context.Context, _ Event) error {
		calls = append(calls, "first")
		return nil
	}))
	bus.Subscribe(BatchSucceeded, HandlerFunc(func(_ context.Context, _ Event) error {
		calls = append(calls, "second")
		return nil
	}))
	bus.Subscribe(BatchFailed, HandlerFunc(func(_ context.Context, _ Event) error {
		calls = append(calls, "failed")
		return nil
	}))

	require.NoError(t, bus.PublishSync(context.Background(), NewBatchSucceeded(1, 3, 10, "sig")))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))

	delivered := false
	bus.Subscribe(RunFinished, HandlerFunc(func(context.Context, Event) error {
		return errors.New("boom")
	}))
	bus.Subscribe(RunFinished, HandlerFunc(func(context.Context, Event) error {
		delivered = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), NewRunFinished(1, 0, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, delivered)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))

	count := 0
	sub := bus.Subscribe(RunStarted, HandlerFunc(func(context.Context, Event) error {
		count++
		return nil
	}))
	require.NoError(t, bus.PublishSync(context.Background(), NewRunStarted("mint", 10, 1)))
	require.Equal(t, 1, count)

	sub.Unsubscribe()
	sub.Unsubscribe()

	require.NoError(t, bus.PublishSync(context.Background(), NewRunStarted("mint", 10, 1)))
	assert.Equal(t, 1, count)
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))

	var seen []EventType
	subs := bus.SubscribeAll(HandlerFunc(func(_ context.Context, e Event) error {
		seen = append(seen, e.Type())
		return nil
	}))
	assert.Len(t, subs, len(AllTypes))

	ctx := context.Background()
	require.NoError(t, bus.PublishSync(ctx, NewRunStarted("mint", 20, 2)))
	require.NoError(t, bus.PublishSync(ctx, NewBatchSucceeded(1, 2, 10, "sig")))
	require.NoError(t, bus.PublishSync(ctx, NewBatchFailed(2, 2, 10, errors.New("x"))))
	require.NoError(t, bus.PublishSync(ctx, NewRunFinished(10, 10, 5000)))

	assert.Equal(t, AllTypes, seen)
}
