package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yojana/internal/eligibility"
	"yojana/internal/platform/kafka"
	"yojana/internal/recalc"
	id "yojana/pkg/domain"
)

type fakeEvaluator struct {
	evaluated []id.SubjectID
	err       error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, subjectID id.SubjectID) (*eligibility.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.evaluated = append(f.evaluated, subjectID)
	return &eligibility.Report{SubjectID: subjectID}, nil
}

func message(t *testing.T, event recalc.Event) *kafka.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return &kafka.Message{Key: []byte(event.SubjectID.String()), Value: payload}
}

func TestHandleEvaluatesSubject(t *testing.T) {
	evaluator := &fakeEvaluator{}
	w := New(evaluator, slog.New(slog.DiscardHandler))
	subjectID := id.NewSubjectID()

	err := w.Handle(context.Background(), message(t, recalc.Event{
		SubjectID:   subjectID,
		Trigger:     recalc.TriggerDocumentUploaded,
		RequestedAt: time.Now(),
	}))
	require.NoError(t, err)
	require.Len(t, evaluator.evaluated, 1)
	assert.Equal(t, subjectID, evaluator.evaluated[0])
}

func TestHandleSkipsMalformedEvent(t *testing.T) {
	evaluator := &fakeEvaluator{}
	w := New(evaluator, slog.New(slog.DiscardHandler))

	err := w.Handle(context.Background(), &kafka.Message{Value: []byte("{not json")})
	require.NoError(t, err)
	assert.Empty(t, evaluator.evaluated)
}

func TestHandleSkipsEventWithoutSubject(t *testing.T) {
	evaluator := &fakeEvaluator{}
	w := New(evaluator, slog.New(slog.DiscardHandler))

	err := w.Handle(context.Background(), &kafka.Message{Value: []byte(`{"trigger":"scheme_added"}`)})
	require.NoError(t, err)
	assert.Empty(t, evaluator.evaluated)
}

func TestHandleDoesNotStopOnEvaluationFailure(t *testing.T) {
	evaluator := &fakeEvaluator{err: errors.New("store down")}
	w := New(evaluator, slog.New(slog.DiscardHandler))

	err := w.Handle(context.Background(), message(t, recalc.Event{
		SubjectID: id.NewSubjectID(),
		Trigger:   recalc.TriggerSchemeAdded,
	}))
	assert.NoError(t, err)
}
