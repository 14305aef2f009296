package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/ports"
)

// OutboxRelay publishes audit events written alongside waitlist/claim state
// changes. A publish failure leaves the row pending for the next cycle; the
// originating operation is never rolled back.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "drop.engine.events"
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "drop_engine_outbox_list_failed",
			"module", "offers/drop-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload decode failed",
				"event", "drop_engine_outbox_decode_failed",
				"module", "offers/drop-engine",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			// An undecodable row will never publish; park it as sent so it
			// stops wedging the batch on every cycle.
			if markErr := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); markErr != nil {
				return markErr
			}
			continue
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "drop_engine_outbox_publish_failed",
				"module", "offers/drop-engine",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "drop_engine_outbox_mark_sent_failed",
				"module", "offers/drop-engine",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("outbox relay cycle completed",
			"event", "drop_engine_outbox_relay_completed",
			"module", "offers/drop-engine",
			"layer", "worker",
			"sent_count", len(pending),
		)
	}
	return nil
}
