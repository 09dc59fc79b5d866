package eventbus_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-io/tessellate/pkg/channels/gochannel"
	"github.com/tessellate-io/tessellate/pkg/eventbus"
	"github.com/tessellate-io/tessellate/pkg/events"
)

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewSlogLogger(slog.Default()))
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() {
		_ = bus.Close()
	})

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	received := make(chan *events.ConfigurationApplied, 1)

	err := bus.Handle(events.ConfigurationAppliedEvent, func(_ context.Context, event any) error {
		applied, ok := event.(*events.ConfigurationApplied)
		require.True(t, ok)
		received <- applied

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(ctx))

	err = bus.Publish(ctx, "finance:fraud-detection", events.ConfigurationApplied{
		BaseEvent:       events.NewBaseEvent(events.ConfigurationAppliedEvent),
		ConfigurationID: "cfg-1",
		TemplateID:      "tpl-1",
		IndustryID:      "finance",
		UseCaseID:       "fraud-detection",
	})
	require.NoError(t, err)

	select {
	case applied := <-received:
		assert.Equal(t, "cfg-1", applied.ConfigurationID)
		assert.Equal(t, "tpl-1", applied.TemplateID)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventBus_UnhandledTypeIsAcked(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	received := make(chan struct{}, 1)

	err := bus.Handle(events.VariantsGeneratedEvent, func(_ context.Context, _ any) error {
		received <- struct{}{}

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for template imports; the message is dropped.
	err = bus.Publish(ctx, "finance:fraud-detection", events.TemplateImported{
		BaseEvent:  events.NewBaseEvent(events.TemplateImportedEvent),
		TemplateID: "tpl-1",
	})
	require.NoError(t, err)

	err = bus.Publish(ctx, "cfg-1", events.VariantsGenerated{
		BaseEvent:       events.NewBaseEvent(events.VariantsGeneratedEvent),
		ConfigurationID: "cfg-1",
	})
	require.NoError(t, err)

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("subscribed event was not delivered")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
