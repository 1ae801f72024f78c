// Package worker consumes recalculation events and re-runs the eligibility
// engine for the affected subject.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"yojana/internal/eligibility"
	"yojana/internal/platform/kafka"
	"yojana/internal/recalc"
	id "yojana/pkg/domain"
)

// Evaluator is the engine operation the worker drives.
type Evaluator interface {
	Evaluate(ctx context.Context, subjectID id.SubjectID) (*eligibility.Report, error)
}

// Worker turns consumed recalculation events into engine runs. Malformed
// events are logged and skipped; an evaluation failure is logged and skipped
// too, since the next event or on-demand request will retry the subject.
type Worker struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// New creates a recalculation worker.
func New(evaluator Evaluator, logger *slog.Logger) *Worker {
	return &Worker{evaluator: evaluator, logger: logger}
}

// Handle processes one consumed message. It satisfies kafka.Handler and never
// returns an error: the consumer loop must not stop on bad input.
func (w *Worker) Handle(ctx context.Context, msg *kafka.Message) error {
	var event recalc.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.logger.WarnContext(ctx, "discarding malformed recalc event",
			"key", string(msg.Key),
			"error", err.Error(),
		)
		return nil
	}
	if event.SubjectID.IsNil() {
		w.logger.WarnContext(ctx, "discarding recalc event without subject",
			"trigger", string(event.Trigger),
		)
		return nil
	}

	if _, err := w.evaluator.Evaluate(ctx, event.SubjectID); err != nil {
		w.logger.ErrorContext(ctx, "recalculation failed",
			"subject_id", event.SubjectID.String(),
			"trigger", string(event.Trigger),
			"error", err.Error(),
		)
		return nil
	}

	w.logger.InfoContext(ctx, "recalculation completed",
		"subject_id", event.SubjectID.String(),
		"trigger", string(event.Trigger),
	)
	return nil
}

// Run consumes events until ctx is cancelled. consumer may be nil, in which
// case the worker is a no-op.
func (w *Worker) Run(ctx context.Context, consumer *kafka.Consumer) error {
	if consumer == nil {
		return nil
	}
	return consumer.Run(ctx, w.Handle)
}
