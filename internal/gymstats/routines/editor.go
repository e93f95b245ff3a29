package routines

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

const NewRoutineBaseName = "New routine"

var (
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSetNotFound      = errors.New("set not found")
	ErrDuplicateName    = errors.New("routine name already taken")
)

// The editor functions never modify their input list.

func AddRoutine(list []training.RoutineTemplate) ([]training.RoutineTemplate, training.RoutineTemplate) {
	names := make(map[string]bool, len(list))
	for _, t := range list {
		names[t.Name] = true
	}
	name := NewRoutineBaseName
	for i := 2; names[name]; i++ {
		name = fmt.Sprintf("%s %d", NewRoutineBaseName, i)
	}

	added := training.RoutineTemplate{Name: name, Exercises: []training.ExerciseTemplate{}}
	return append(cloneList(list), added), added
}

// RenameRoutine keeps the routine position.
func RenameRoutine(list []training.RoutineTemplate, oldName, newName string) ([]training.RoutineTemplate, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errors.New("routine name empty")
	}
	idx := indexOf(list, oldName)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, oldName)
	}
	if newName != oldName && indexOf(list, newName) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, newName)
	}

	out := cloneList(list)
	out[idx].Name = newName
	return out, nil
}

func DeleteRoutine(list []training.RoutineTemplate, name string) ([]training.RoutineTemplate, error) {
	idx := indexOf(list, name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, name)
	}
	out := cloneList(list)
	return append(out[:idx], out[idx+1:]...), nil
}

// AddExercise appends an exercise with a random id and three plain 8-12 sets.
func AddExercise(list []training.RoutineTemplate, routine, exerciseName string) ([]training.RoutineTemplate, training.ExerciseTemplate, error) {
	idx := indexOf(list, routine)
	if idx < 0 {
		return nil, training.ExerciseTemplate{}, fmt.Errorf("%w: %s", ErrRoutineNotFound, routine)
	}
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		exerciseName = "New exercise"
	}

	ex := training.ExerciseTemplate{
		ID:        uuid.NewString(),
		Name:      exerciseName,
		Version:   1,
		Category:  training.CategoryCompound,
		Equipment: training.EquipmentBarbell,
	}
	for order := 1; order <= 3; order++ {
		ex.PlannedSets = append(ex.PlannedSets, training.SetDefinition{
			Kind:   training.KindPlain,
			Order:  order,
			RepMin: defaultRepMin,
			RepMax: defaultRepMax,
		})
	}
	ex.SchemeText = SchemeFor(ex.PlannedSets)

	out := cloneList(list)
	out[idx].Exercises = append(out[idx].Exercises, ex)
	return out, ex, nil
}

func DeleteExercise(list []training.RoutineTemplate, routine, exerciseID string) ([]training.RoutineTemplate, error) {
	out, ri, ei, err := locateExercise(list, routine, exerciseID)
	if err != nil {
		return nil, err
	}
	exercises := out[ri].Exercises
	out[ri].Exercises = append(exercises[:ei], exercises[ei+1:]...)
	return out, nil
}

// AddSet appends a set after the last order and bumps the exercise version.
func AddSet(list []training.RoutineTemplate, routine, exerciseID string, kind training.SetKind) ([]training.RoutineTemplate, error) {
	if kind == "" {
		kind = training.KindPlain
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown set kind: %q", kind)
	}
	out, ri, ei, err := locateExercise(list, routine, exerciseID)
	if err != nil {
		return nil, err
	}

	ex := &out[ri].Exercises[ei]
	nextOrder := 1
	if n := len(ex.PlannedSets); n > 0 {
		nextOrder = ex.PlannedSets[n-1].Order + 1
	}
	ex.PlannedSets = append(ex.PlannedSets, training.SetDefinition{
		Kind:   kind,
		Order:  nextOrder,
		RepMin: defaultRepMin,
		RepMax: defaultRepMax,
	})
	structureChanged(ex)
	return out, nil
}

// DeleteSet removes the set at index, renumbers orders and bumps the exercise version.
func DeleteSet(list []training.RoutineTemplate, routine, exerciseID string, index int) ([]training.RoutineTemplate, error) {
	out, ri, ei, err := locateExercise(list, routine, exerciseID)
	if err != nil {
		return nil, err
	}

	ex := &out[ri].Exercises[ei]
	if index < 0 || index >= len(ex.PlannedSets) {
		return nil, fmt.Errorf("%w: index %d", ErrSetNotFound, index)
	}
	ex.PlannedSets = append(ex.PlannedSets[:index], ex.PlannedSets[index+1:]...)
	for i := range ex.PlannedSets {
		ex.PlannedSets[i].Order = i + 1
	}
	structureChanged(ex)
	return out, nil
}

func structureChanged(ex *training.ExerciseTemplate) {
	if ex.Version < 1 {
		ex.Version = 1
	}
	ex.Version++
	ex.SchemeText = SchemeFor(ex.PlannedSets)
}

func locateExercise(list []training.RoutineTemplate, routine, exerciseID string) ([]training.RoutineTemplate, int, int, error) {
	ri := indexOf(list, routine)
	if ri < 0 {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrRoutineNotFound, routine)
	}
	for ei, ex := range list[ri].Exercises {
		if ex.ID == exerciseID {
			return cloneList(list), ri, ei, nil
		}
	}
	return nil, 0, 0, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
}

func indexOf(list []training.RoutineTemplate, name string) int {
	for i, t := range list {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func cloneList(list []training.RoutineTemplate) []training.RoutineTemplate {
	out := make([]training.RoutineTemplate, len(list))
	for i, t := range list {
		out[i] = t.Clone()
	}
	return out
}
