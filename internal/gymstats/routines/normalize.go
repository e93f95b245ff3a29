package routines

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

const (
	defaultRepMin = 8
	defaultRepMax = 12
)

var (
	numberedName = regexp.MustCompile(`^\d+\.\s`)
	slugInvalid  = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slugDashes   = regexp.MustCompile(`-{2,}`)
)

// Slug builds a stable exercise id from a display name.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NumberName prefixes name with its 1-based position unless it already starts with "N. ".
func NumberName(name string, position int) string {
	if numberedName.MatchString(name) {
		return name
	}
	return fmt.Sprintf("%d. %s", position, name)
}

// SchemeFor summarizes planned sets, e.g. "1xTOP 6-9, 2xBOFF 12-15".
func SchemeFor(sets []training.SetDefinition) string {
	var parts []string
	for i := 0; i < len(sets); {
		j := i
		for j < len(sets) && sets[j].Kind == sets[i].Kind && sets[j].RepMin == sets[i].RepMin && sets[j].RepMax == sets[i].RepMax {
			j++
		}
		parts = append(parts, fmt.Sprintf("%dx%s %d-%d", j-i, sets[i].Kind, sets[i].RepMin, sets[i].RepMax))
		i = j
	}
	return strings.Join(parts, ", ")
}

// NormalizeExercise fills defaults. The id is assigned once here and kept
// afterwards, since it is the join key of the exercise history.
func NormalizeExercise(ex training.ExerciseTemplate) (training.ExerciseTemplate, error) {
	var err error

	ex.Name = strings.TrimSpace(ex.Name)
	if ex.ID == "" {
		ex.ID = Slug(ex.Name)
		if ex.ID == "" {
			ex.ID = uuid.NewString()
		}
	}
	if ex.Name == "" {
		ex.Name = ex.ID
	}
	if ex.Version < 1 {
		ex.Version = 1
	}
	if ex.Category == "" {
		ex.Category = training.CategoryCompound
	} else if !ex.Category.Valid() {
		err = multierr.Append(err, fmt.Errorf("exercise %q: unknown category %q", ex.Name, ex.Category))
	}
	if ex.Equipment == "" {
		ex.Equipment = training.EquipmentBarbell
	} else if !ex.Equipment.Valid() {
		err = multierr.Append(err, fmt.Errorf("exercise %q: unknown equipment %q", ex.Name, ex.Equipment))
	}

	sets := make([]training.SetDefinition, 0, len(ex.PlannedSets))
	for i, sd := range ex.PlannedSets {
		if sd.Kind == "" {
			sd.Kind = training.KindPlain
		} else if kind, kindErr := training.ParseSetKind(string(sd.Kind)); kindErr != nil {
			err = multierr.Append(err, fmt.Errorf("exercise %q set %d: %w", ex.Name, i+1, kindErr))
		} else {
			sd.Kind = kind
		}
		if sd.Order < 1 {
			sd.Order = i + 1
		}
		if sd.RepMin == 0 {
			sd.RepMin = defaultRepMin
		}
		if sd.RepMax == 0 {
			sd.RepMax = defaultRepMax
		}
		if sd.RepMax < sd.RepMin {
			err = multierr.Append(err, fmt.Errorf("exercise %q set %d: repMax %d below repMin %d", ex.Name, i+1, sd.RepMax, sd.RepMin))
		}
		if sd.PresetWeight != nil && *sd.PresetWeight < 0 {
			err = multierr.Append(err, fmt.Errorf("exercise %q set %d: negative preset weight", ex.Name, i+1))
		}
		sets = append(sets, sd)
	}
	ex.PlannedSets = sets

	if strings.TrimSpace(ex.SchemeText) == "" {
		ex.SchemeText = SchemeFor(ex.PlannedSets)
	}

	return ex, err
}

// NormalizeRoutine fills defaults of every exercise.
func NormalizeRoutine(r training.RoutineTemplate) (training.RoutineTemplate, error) {
	var err error
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		err = multierr.Append(err, fmt.Errorf("routine name empty"))
	}

	exercises := make([]training.ExerciseTemplate, 0, len(r.Exercises))
	for _, ex := range r.Exercises {
		normalized, exErr := NormalizeExercise(ex)
		if exErr != nil {
			err = multierr.Append(err, fmt.Errorf("routine %q: %w", r.Name, exErr))
		}
		exercises = append(exercises, normalized)
	}
	r.Exercises = exercises

	return r, err
}
