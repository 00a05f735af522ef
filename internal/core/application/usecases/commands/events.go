package commands

import (
	"context"
	"log/slog"
	"time"

	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/ports"
)

// publishStatusChange announces a committed status change. The write has
// already happened, so a broker failure is logged and swallowed.
func publishStatusChange(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	changedBy string,
	s *shipment.Shipment,
	previous shipment.Status,
) {
	payload := ports.ShipmentStatusChanged{
		ID:        s.ID(),
		Code:      s.Code(),
		To:        s.Status().String(),
		ChangedBy: changedBy,
	}
	if previous != shipment.Unknown {
		payload.From = previous.String()
	}

	err := publisher.Publish(ctx, ports.Event{
		Type:       ports.EventShipmentStatusChanged,
		Key:        s.ID(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		logger.WarnContext(ctx, "failed to publish status change",
			"shipment", s.ID(), "status", payload.To, "error", err)
	}
}
