package unit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	dropengine "dropspot/contexts/offers/drop-engine"
	dropmemory "dropspot/contexts/offers/drop-engine/adapters/memory"
	dropworkers "dropspot/contexts/offers/drop-engine/application/workers"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	"dropspot/contexts/offers/drop-engine/ports"
	httptransport "dropspot/contexts/offers/drop-engine/transport/http"
)

type stubPublisher struct {
	published []ports.EventEnvelope
	topics    []string
}

func (p *stubPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.published = append(p.published, event)
	return nil
}

func TestOutboxRelayPublishesAndDrains(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)
	store := module.Store

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.7128,
		Longitude: -74.006,
	}); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	publisher := &stubPublisher{}
	relay := dropworkers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		Topic:     "drop.engine.events",
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	for _, topic := range publisher.topics {
		if topic != "drop.engine.events" {
			t.Fatalf("unexpected topic %s", topic)
		}
	}

	types := map[string]bool{}
	for _, envelope := range publisher.published {
		types[envelope.EventType] = true
		if envelope.PartitionKey != "drop-1" {
			t.Fatalf("expected drop id partition key, got %s", envelope.PartitionKey)
		}
		var data struct {
			DropID string `json:"drop_id"`
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			t.Fatalf("decode envelope data failed: %v", err)
		}
		if data.DropID != "drop-1" || data.UserID != "user-a" {
			t.Fatalf("unexpected event data: %+v", data)
		}
	}
	if !types["drop.waitlist_joined"] || !types["drop.claim_attempted"] {
		t.Fatalf("expected joined and attempted events, got %v", types)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %d pending", len(pending))
	}

	// A second pass finds nothing new to publish.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected no republishing, got %d", len(publisher.published))
	}
}

func TestDropCompleterDeactivatesEndedDrops(t *testing.T) {
	now := time.Now().UTC()
	ended := activeDrop("drop-ended", 5)
	ended.StartTime = now.Add(-3 * time.Hour)
	ended.EndTime = now.Add(-time.Hour)
	running := activeDrop("drop-running", 5)

	store := dropmemory.NewStore([]entities.Drop{ended, running}, nil)
	completer := dropworkers.DropCompleter{
		Drops:     store,
		Clock:     store,
		BatchSize: 10,
	}
	if err := completer.RunOnce(context.Background()); err != nil {
		t.Fatalf("completer run failed: %v", err)
	}

	endedDrop, err := store.GetDrop(context.Background(), "drop-ended")
	if err != nil {
		t.Fatalf("get ended drop failed: %v", err)
	}
	if endedDrop.IsActive {
		t.Fatal("expected ended drop deactivated")
	}

	runningDrop, err := store.GetDrop(context.Background(), "drop-running")
	if err != nil {
		t.Fatalf("get running drop failed: %v", err)
	}
	if !runningDrop.IsActive {
		t.Fatal("expected running drop untouched")
	}
}

type stubOutbox struct {
	rows []ports.OutboxMessage
	sent map[string]time.Time
}

func (o *stubOutbox) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	pending := make([]ports.OutboxMessage, 0)
	for _, row := range o.rows {
		if _, ok := o.sent[row.OutboxID]; ok {
			continue
		}
		pending = append(pending, row)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (o *stubOutbox) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	o.sent[outboxID] = sentAt
	return nil
}

func TestOutboxRelayParksUndecodableRow(t *testing.T) {
	now := time.Now().UTC()
	good, err := json.Marshal(ports.EventEnvelope{
		EventID:       "evt-good",
		EventType:     "drop.waitlist_joined",
		OccurredAt:    now,
		SourceService: "drop-engine",
		SchemaVersion: 1,
		PartitionKey:  "drop-1",
		Data:          json.RawMessage(`{"drop_id":"drop-1","user_id":"user-a"}`),
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	outbox := &stubOutbox{
		rows: []ports.OutboxMessage{
			{OutboxID: "row-1", EventType: "drop.waitlist_joined", Payload: []byte("{broken"), CreatedAt: now},
			{OutboxID: "row-2", EventType: "drop.waitlist_joined", Payload: good, CreatedAt: now},
		},
		sent: make(map[string]time.Time),
	}

	publisher := &stubPublisher{}
	relay := dropworkers.OutboxRelay{
		Outbox:    outbox,
		Publisher: publisher,
		Topic:     "drop.engine.events",
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.published) != 1 || publisher.published[0].EventID != "evt-good" {
		t.Fatalf("expected only the decodable row published, got %d", len(publisher.published))
	}
	if _, ok := outbox.sent["row-1"]; !ok {
		t.Fatal("expected the undecodable row parked as sent")
	}
	if _, ok := outbox.sent["row-2"]; !ok {
		t.Fatal("expected the published row marked sent")
	}

	// A second cycle sees nothing pending; the broken row cannot wedge it.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected no republish, got %d events", len(publisher.published))
	}
}
