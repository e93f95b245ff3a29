package training

import (
	"fmt"
	"strings"
	"time"
)

type SetKind string

const (
	KindTop       SetKind = "TOP"
	KindBackoff   SetKind = "BOFF"
	KindPlain     SetKind = "SET"
	KindRestPause SetKind = "RP"
	KindDrop      SetKind = "DROP"
	KindApproach  SetKind = "APROX"
)

var kindAliases = map[string]SetKind{
	"TOP":     KindTop,
	"BOFF":    KindBackoff,
	"BACKOFF": KindBackoff,
	"SET":     KindPlain,
	"PLAIN":   KindPlain,
	"RP":      KindRestPause,
	"DROP":    KindDrop,
	"APROX":   KindApproach,
}

func (k SetKind) Valid() bool {
	switch k {
	case KindTop, KindBackoff, KindPlain, KindRestPause, KindDrop, KindApproach:
		return true
	}
	return false
}

// ParseSetKind accepts the canonical kind names plus BACKOFF and PLAIN, case-insensitive.
func ParseSetKind(s string) (SetKind, error) {
	if kind, ok := kindAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("unknown set kind: %q", s)
}

type Category string

const (
	CategoryCompound  Category = "compound"
	CategoryIsolation Category = "isolation"
)

func (c Category) Valid() bool {
	return c == CategoryCompound || c == CategoryIsolation
}

type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bw"
)

func (e Equipment) Valid() bool {
	switch e {
	case EquipmentBarbell, EquipmentDumbbell, EquipmentMachine, EquipmentCable, EquipmentBodyweight:
		return true
	}
	return false
}

// ExerciseIdentity joins results across sessions. ID survives renames,
// Version changes with the set structure.
type ExerciseIdentity struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
}

type SetDefinition struct {
	Kind         SetKind  `json:"kind"`
	Order        int      `json:"order"`
	RepMin       int      `json:"repMin"`
	RepMax       int      `json:"repMax"`
	PresetWeight *float64 `json:"presetWeight,omitempty"`
}

type SetLog struct {
	Kind        SetKind   `json:"kind"`
	Order       int       `json:"order"`
	Reps        int       `json:"reps"`
	Weight      *float64  `json:"weight,omitempty"`
	RIR         *int      `json:"rir,omitempty"`
	TechniqueOK *bool     `json:"techniqueOk,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExerciseOccurrence struct {
	Ref            ExerciseIdentity `json:"ref"`
	NameSnapshot   string           `json:"nameSnapshot"`
	SchemeSnapshot string           `json:"schemeSnapshot"`
	Category       Category         `json:"category"`
	Equipment      Equipment        `json:"equipment"`
	PlannedSets    []SetDefinition  `json:"plannedSets"`
	CompletedLogs  []SetLog         `json:"completedLogs"`
	CompletedCount int              `json:"completedCount"`
	TotalPlanned   int              `json:"totalPlanned"`
}

func (o *ExerciseOccurrence) Complete() bool {
	return o.CompletedCount >= o.TotalPlanned
}

// NextSlot returns the first planned set that has no log yet.
func (o *ExerciseOccurrence) NextSlot() (SetDefinition, bool) {
	if o.Complete() || o.CompletedCount >= len(o.PlannedSets) {
		return SetDefinition{}, false
	}
	return o.PlannedSets[o.CompletedCount], true
}

// LastLog returns the last logged entry for the (kind, order) slot.
func (o *ExerciseOccurrence) LastLog(kind SetKind, order int) (SetLog, bool) {
	for i := len(o.CompletedLogs) - 1; i >= 0; i-- {
		l := o.CompletedLogs[i]
		if l.Kind == kind && l.Order == order {
			return l, true
		}
	}
	return SetLog{}, false
}

type Session struct {
	SessionID   string               `json:"sessionId"`
	DateTime    time.Time            `json:"dateTime"`
	WorkoutName string               `json:"workoutName"`
	Occurrences []ExerciseOccurrence `json:"occurrences"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// Clone returns a deep copy, so callers can mutate it without touching shared state.
func (s Session) Clone() Session {
	c := s
	c.Occurrences = make([]ExerciseOccurrence, len(s.Occurrences))
	for i, o := range s.Occurrences {
		o.PlannedSets = cloneSetDefinitions(o.PlannedSets)
		o.CompletedLogs = append([]SetLog(nil), o.CompletedLogs...)
		c.Occurrences[i] = o
	}
	return c
}

// FindOccurrence returns the index of the occurrence for the given identity, or -1.
func (s *Session) FindOccurrence(ref ExerciseIdentity) int {
	for i := range s.Occurrences {
		if s.Occurrences[i].Ref == ref {
			return i
		}
	}
	return -1
}

type ExerciseTemplate struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	SchemeText  string          `json:"schemeText" yaml:"schemeText"`
	Version     int             `json:"version" yaml:"version"`
	Category    Category        `json:"category" yaml:"category"`
	Equipment   Equipment       `json:"equipment" yaml:"equipment"`
	PlannedSets []SetDefinition `json:"plannedSets" yaml:"plannedSets"`
}

func (e ExerciseTemplate) Identity() ExerciseIdentity {
	return ExerciseIdentity{ID: e.ID, Version: e.Version}
}

type RoutineTemplate struct {
	Name      string             `json:"name" yaml:"name"`
	Exercises []ExerciseTemplate `json:"exercises" yaml:"exercises"`
}

func (r RoutineTemplate) Clone() RoutineTemplate {
	c := r
	c.Exercises = make([]ExerciseTemplate, len(r.Exercises))
	for i, e := range r.Exercises {
		e.PlannedSets = cloneSetDefinitions(e.PlannedSets)
		c.Exercises[i] = e
	}
	return c
}

func cloneSetDefinitions(sets []SetDefinition) []SetDefinition {
	if sets == nil {
		return nil
	}
	out := make([]SetDefinition, len(sets))
	for i, sd := range sets {
		if sd.PresetWeight != nil {
			w := *sd.PresetWeight
			sd.PresetWeight = &w
		}
		out[i] = sd
	}
	return out
}

// PriorResult is the most relevant earlier result for a slot.
type PriorResult struct {
	Weight    *float64  `json:"weight,omitempty"`
	Reps      int       `json:"reps"`
	SessionID string    `json:"sessionId,omitempty"`
	DateTime  time.Time `json:"dateTime"`
	// Fuzzy is set when the result came from the name-pattern fallback.
	Fuzzy bool `json:"fuzzy,omitempty"`
}
