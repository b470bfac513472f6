package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/camp-management/internal/core/events"
	"github.com/frahmantamala/camp-management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect and debug the in-process event bus: publish test workflow events and watch handlers fire`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a test transition event",
	Long:  `Publish a sample workflow transition event to the event bus for testing subscriber wiring`,
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent()
	},
}

var eventReason string

func publishTestEvent() {
	appLogger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(appLogger)

	eventBus.Subscribe(events.EventTypeTransitionApplied, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload().(events.TransitionPayload)
		if !ok {
			appLogger.Warn("unexpected payload type", "event_id", event.EventID())
			return nil
		}
		appLogger.Info("test handler received event",
			"event_id", event.EventID(),
			"entity_type", payload.EntityType,
			"entity_id", payload.EntityID,
			"previous_state", payload.PreviousState,
			"new_state", payload.NewState,
			"reason", payload.Reason)
		return nil
	})

	testEvent := events.NewTransitionAppliedEvent(1, "event", 42, "event.set_status", "pending", "approved", eventReason)

	appLogger.Info("publishing test event", "event_type", testEvent.EventType(), "event_id", testEvent.EventID())

	ctx := context.Background()
	if err := eventBus.Publish(ctx, testEvent); err != nil {
		appLogger.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	appLogger.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventReason, "reason", "smoke test", "Reason attached to the test transition")

	eventCmd.AddCommand(publishEventCmd)
}
