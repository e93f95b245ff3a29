package training

import (
	"time"

	"github.com/google/uuid"
)

// NewSession instantiates a routine for the given moment. Planned sets are
// copied, so later template edits never alter the session.
func NewSession(routine RoutineTemplate, now time.Time) Session {
	s := Session{
		SessionID:   uuid.NewString(),
		DateTime:    now,
		WorkoutName: routine.Name,
		Occurrences: make([]ExerciseOccurrence, 0, len(routine.Exercises)),
		UpdatedAt:   now,
	}
	for _, ex := range routine.Exercises {
		version := ex.Version
		if version < 1 {
			version = 1
		}
		planned := cloneSetDefinitions(ex.PlannedSets)
		if planned == nil {
			planned = []SetDefinition{}
		}
		s.Occurrences = append(s.Occurrences, ExerciseOccurrence{
			Ref:            ExerciseIdentity{ID: ex.ID, Version: version},
			NameSnapshot:   ex.Name,
			SchemeSnapshot: ex.SchemeText,
			Category:       ex.Category,
			Equipment:      ex.Equipment,
			PlannedSets:    planned,
			CompletedLogs:  []SetLog{},
			CompletedCount: 0,
			TotalPlanned:   len(planned),
		})
	}
	return s
}

type KPIs struct {
	Sets   int     `json:"sets"`
	Volume float64 `json:"volume"`
}

// KPIs sums logged sets and volume (weight x reps) over all occurrences.
func (s Session) KPIs() KPIs {
	var k KPIs
	for _, o := range s.Occurrences {
		for _, l := range o.CompletedLogs {
			k.Sets++
			if l.Weight != nil {
				k.Volume += *l.Weight * float64(l.Reps)
			}
		}
	}
	return k
}
