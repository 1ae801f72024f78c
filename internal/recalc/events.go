// Package recalc defines the eligibility recalculation event contract shared
// by producers (profile and scheme services) and the consumer worker.
package recalc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"yojana/internal/platform/kafka"
	id "yojana/pkg/domain"
)

// Trigger names what caused a recalculation request.
type Trigger string

const (
	TriggerDocumentUploaded Trigger = "document_uploaded"
	TriggerSchemeAdded      Trigger = "scheme_added"
)

// Event asks the worker to re-evaluate one subject against the catalog.
type Event struct {
	SubjectID   id.SubjectID `json:"subject_id"`
	Trigger     Trigger      `json:"trigger"`
	RequestedAt time.Time    `json:"requested_at"`
}

// Publisher emits recalculation events. A nil underlying producer disables
// publishing, which keeps single-process deployments working without Kafka.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher wraps a Kafka producer. producer may be nil.
func NewPublisher(producer *kafka.Producer, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// Publish emits one event keyed by subject so per-subject ordering holds.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.producer == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal recalc event: %w", err)
	}
	if err := p.producer.Publish(ctx, []byte(event.SubjectID.String()), payload); err != nil {
		return fmt.Errorf("publish recalc event: %w", err)
	}
	p.logger.DebugContext(ctx, "recalc event published",
		"subject_id", event.SubjectID.String(),
		"trigger", string(event.Trigger),
	)
	return nil
}
