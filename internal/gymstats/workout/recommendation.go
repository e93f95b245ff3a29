package workout

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type Suggestion struct {
	Exercise       string                     `json:"exercise"`
	Slot           training.SetDefinition     `json:"slot"`
	Prior          *training.PriorResult      `json:"prior,omitempty"`
	Recommendation progression.Recommendation `json:"recommendation"`
}

// Recommend suggests a load for a slot of the active exercise. An empty kind
// selects the next pending slot.
func (m *Machine) Recommend(ctx context.Context, kind training.SetKind, order int) (_ Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.recommend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	m.mu.Lock()
	w, err := m.activeWorkout(ctx, m.owner(ctx))
	if err != nil {
		m.mu.Unlock()
		return Suggestion{}, err
	}
	if len(w.session.Occurrences) == 0 {
		m.mu.Unlock()
		return Suggestion{}, fmt.Errorf("%w: workout has no exercises", ErrInvalidSet)
	}
	session := w.session.Clone()
	occ := session.Occurrences[w.index]
	m.mu.Unlock()

	slot, err := pickSlot(occ, kind, order)
	if err != nil {
		return Suggestion{}, err
	}
	span.SetAttributes(
		attribute.String("exercise.id", occ.Ref.ID),
		attribute.String("slot.kind", string(slot.Kind)),
		attribute.Int("slot.order", slot.Order),
	)

	q := history.Query{
		ExerciseID: occ.Ref.ID,
		Version:    occ.Ref.Version,
		Kind:       slot.Kind,
		Order:      slot.Order,
		Before:     session.DateTime,
	}
	if m.identity != nil {
		q.UserID, _ = m.identity.UserID(ctx)
	}
	prior, err := m.history.FindPriorResult(ctx, q)
	if err != nil {
		return Suggestion{}, fmt.Errorf("history lookup: %w", err)
	}

	rec := progression.Recommend(progression.Input{
		Target: progression.Target{
			RepMin:   slot.RepMin,
			RepMax:   slot.RepMax,
			Kind:     slot.Kind,
			Category: occ.Category,
		},
		Prior:            prior,
		PresetWeight:     slot.PresetWeight,
		SessionTopWeight: topWeight(occ),
		Increment:        m.increment,
	})

	return Suggestion{
		Exercise:       occ.NameSnapshot,
		Slot:           slot,
		Prior:          prior,
		Recommendation: rec,
	}, nil
}

func pickSlot(occ training.ExerciseOccurrence, kind training.SetKind, order int) (training.SetDefinition, error) {
	if kind == "" {
		slot, ok := occ.NextSlot()
		if !ok {
			return training.SetDefinition{}, ErrOccurrenceComplete
		}
		return slot, nil
	}
	for _, sd := range occ.PlannedSets {
		if sd.Kind == kind && sd.Order == order {
			return sd, nil
		}
	}
	return training.SetDefinition{}, fmt.Errorf("%w: no %s set #%d in %s", ErrInvalidSet, kind, order, occ.NameSnapshot)
}

// topWeight is the heaviest TOP set logged today for the occurrence.
func topWeight(occ training.ExerciseOccurrence) float64 {
	top := 0.0
	for _, l := range occ.CompletedLogs {
		if l.Kind == training.KindTop && l.Weight != nil && *l.Weight > top {
			top = *l.Weight
		}
	}
	return top
}
