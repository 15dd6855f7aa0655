package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/shared/application"
	shared "github.com/felixgeelhaar/studyflow/internal/shared/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
)

var (
	_ application.Command = RebuildPlanCommand{}
	_ application.Command = UpdateSessionStatusCommand{}
	_ application.Command = RemoveTaskFromPlansCommand{}
	_ application.Command = RemoveHabitFromPlansCommand{}
)

// publishEvent stamps command-scoped metadata onto the event and sends it
// through the publisher. Publish failures are logged, never fatal: the
// state change has already committed and events are a best-effort signal
// to external consumers.
func publishEvent(ctx context.Context, publisher eventbus.Publisher, logger *slog.Logger, owner uuid.UUID, event shared.DomainEvent) {
	if publisher == nil {
		return
	}

	application.ApplyEventMetadata([]shared.DomainEvent{event}, application.NewEventMetadata(owner))

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Warn("failed to marshal domain event", "routing_key", event.RoutingKey(), "error", err)
		return
	}
	if err := publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		logger.Warn("failed to publish domain event", "routing_key", event.RoutingKey(), "error", err)
	}
}
