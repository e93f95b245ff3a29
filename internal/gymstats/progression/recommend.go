package progression

import (
	"fmt"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

const (
	// BackoffFraction is the share of today's top set used for backoff sets.
	BackoffFraction = 0.70

	CompoundStepPct  = 0.025
	IsolationStepPct = 0.0125
)

type Action string

const (
	ActionUp   Action = "UP"
	ActionHold Action = "HOLD"
	ActionDown Action = "DOWN"
)

type Target struct {
	RepMin   int
	RepMax   int
	Kind     training.SetKind
	Category training.Category
}

type Input struct {
	Target           Target
	Prior            *training.PriorResult
	PresetWeight     *float64
	SessionTopWeight float64
	// Increment defaults to DefaultIncrement.
	Increment float64
}

type Recommendation struct {
	Action             Action  `json:"action"`
	SuggestedWeight    float64 `json:"suggestedWeight"`
	DeltaFromReference float64 `json:"deltaFromReference"`
	ReferenceWeight    float64 `json:"referenceWeight"`
	Reason             string  `json:"reason"`
	Objective          string  `json:"objective"`
}

// StepPct returns the relative load change used for a category.
func StepPct(category training.Category) float64 {
	if category == training.CategoryIsolation {
		return IsolationStepPct
	}
	return CompoundStepPct
}

// Recommend computes the next load for a slot. It is a pure function of its input.
func Recommend(in Input) Recommendation {
	inc := in.Increment
	if inc <= 0 {
		inc = DefaultIncrement
	}
	t := in.Target

	history := usablePrior(in.Prior)
	reference := 0.0
	switch {
	case history:
		reference = *in.Prior.Weight
	case in.PresetWeight != nil:
		reference = *in.PresetWeight
	}

	if t.Kind == training.KindBackoff && in.SessionTopWeight > 0 {
		suggested := Quantize(in.SessionTopWeight*BackoffFraction, inc)
		return newRecommendation(
			actionFor(suggested-reference),
			suggested,
			reference,
			fmt.Sprintf("backoff at %.0f%% of today's top set (%s)", BackoffFraction*100, fmtWeight(in.SessionTopWeight)),
			fmt.Sprintf("%d-%d reps at %s", t.RepMin, t.RepMax, fmtWeight(suggested)),
		)
	}

	if !history {
		preset := 0.0
		if in.PresetWeight != nil {
			preset = *in.PresetWeight
		}
		suggested := Quantize(preset, inc)
		return newRecommendation(
			ActionHold,
			suggested,
			preset,
			"no history, using preset",
			fmt.Sprintf("establish a baseline in %d-%d reps", t.RepMin, t.RepMax),
		)
	}

	reps := in.Prior.Reps
	step := StepPct(t.Category)
	switch {
	case reps >= t.RepMax:
		suggested := Quantize(reference*(1+step), inc)
		if suggested <= reference {
			suggested = Quantize(reference+inc, inc)
		}
		return newRecommendation(
			ActionUp,
			suggested,
			reference,
			fmt.Sprintf("%d reps reached the top of %d-%d", reps, t.RepMin, t.RepMax),
			fmt.Sprintf("at least %d reps at the new weight", t.RepMin),
		)
	case reps < t.RepMin:
		suggested := Quantize(reference*(1-step), inc)
		if suggested >= reference {
			suggested = Quantize(reference-inc, inc)
		}
		return newRecommendation(
			ActionDown,
			suggested,
			reference,
			fmt.Sprintf("%d reps fell short of %d-%d", reps, t.RepMin, t.RepMax),
			fmt.Sprintf("get back to %d reps", t.RepMin),
		)
	default:
		return newRecommendation(
			ActionHold,
			reference,
			reference,
			fmt.Sprintf("%d reps within %d-%d", reps, t.RepMin, t.RepMax),
			"hold weight, add one rep",
		)
	}
}

// usablePrior reports whether p is a real working set. Sets without reps or
// without a positive load count as no history.
func usablePrior(p *training.PriorResult) bool {
	return p != nil && p.Reps > 0 && p.Weight != nil && *p.Weight > 0
}

func newRecommendation(action Action, suggested, reference float64, reason, objective string) Recommendation {
	return Recommendation{
		Action:             action,
		SuggestedWeight:    suggested,
		DeltaFromReference: round2(suggested - reference),
		ReferenceWeight:    reference,
		Reason:             reason,
		Objective:          objective,
	}
}

func actionFor(delta float64) Action {
	switch {
	case delta > 0.005:
		return ActionUp
	case delta < -0.005:
		return ActionDown
	default:
		return ActionHold
	}
}

func fmtWeight(w float64) string {
	return fmt.Sprintf("%g kg", round2(w))
}
