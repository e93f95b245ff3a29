package routines

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

var ErrInvalidImport = errors.New("invalid routine import")

//go:embed schema.json
var importSchemaJSON []byte

var importSchema = mustLoadSchema(importSchemaJSON)

func mustLoadSchema(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("load import schema: %s", err))
	}
	return schema
}

// importedSet and friends accept the field aliases found in older exports.
type importedSet struct {
	Kind         string   `json:"kind"`
	Type         string   `json:"type"`
	Order        int      `json:"order"`
	RepMin       *int     `json:"repMin"`
	RepsMin      *int     `json:"repsMin"`
	RepMax       *int     `json:"repMax"`
	RepsMax      *int     `json:"repsMax"`
	PresetWeight *float64 `json:"presetWeight"`
}

type importedExercise struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	SchemeText  string        `json:"schemeText"`
	Scheme      string        `json:"scheme"`
	Version     int           `json:"version"`
	Category    string        `json:"category"`
	Equipment   string        `json:"equipment"`
	PlannedSets []importedSet `json:"plannedSets"`
	Sets        []importedSet `json:"sets"`
}

type importedRoutine struct {
	Name      string             `json:"name"`
	Exercises []importedExercise `json:"exercises"`
}

// ParseImport validates raw (JSON or YAML, one routine or a list) and returns
// fully populated templates. Imported names without a "N. " prefix are numbered
// by arrival order. Any violation rejects the whole payload.
func ParseImport(raw []byte) ([]training.RoutineTemplate, error) {
	doc, err := toJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	result, err := importSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	if !result.Valid() {
		var schemaErr error
		for _, desc := range result.Errors() {
			schemaErr = multierr.Append(schemaErr, errors.New(desc.String()))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, schemaErr)
	}

	var incoming []importedRoutine
	if trimmed := bytes.TrimSpace(doc); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(doc, &incoming)
	} else {
		var single importedRoutine
		err = json.Unmarshal(doc, &single)
		incoming = []importedRoutine{single}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	var normErr error
	templates := make([]training.RoutineTemplate, 0, len(incoming))
	for i, in := range incoming {
		tmpl, err := NormalizeRoutine(in.toTemplate())
		if err != nil {
			normErr = multierr.Append(normErr, err)
			continue
		}
		tmpl.Name = NumberName(tmpl.Name, i+1)
		templates = append(templates, tmpl)
	}
	if normErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, normErr)
	}

	return templates, nil
}

func toJSON(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if !json.Valid(trimmed) {
			return nil, errors.New("malformed JSON")
		}
		return trimmed, nil
	}

	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("malformed YAML: %w", err)
	}
	return json.Marshal(doc)
}

func (r importedRoutine) toTemplate() training.RoutineTemplate {
	tmpl := training.RoutineTemplate{
		Name:      r.Name,
		Exercises: make([]training.ExerciseTemplate, 0, len(r.Exercises)),
	}
	for _, ex := range r.Exercises {
		tmpl.Exercises = append(tmpl.Exercises, ex.toTemplate())
	}
	return tmpl
}

func (e importedExercise) toTemplate() training.ExerciseTemplate {
	ex := training.ExerciseTemplate{
		ID:         firstNonEmpty(e.ID, e.Slug),
		Name:       e.Name,
		SchemeText: firstNonEmpty(e.SchemeText, e.Scheme),
		Version:    e.Version,
		Category:   training.Category(e.Category),
		Equipment:  training.Equipment(e.Equipment),
	}
	sets := e.PlannedSets
	if len(sets) == 0 {
		sets = e.Sets
	}
	for _, s := range sets {
		sd := training.SetDefinition{
			Kind:         training.SetKind(firstNonEmpty(s.Kind, s.Type)),
			Order:        s.Order,
			PresetWeight: s.PresetWeight,
		}
		if v := firstInt(s.RepMin, s.RepsMin); v != nil {
			sd.RepMin = *v
		}
		if v := firstInt(s.RepMax, s.RepsMax); v != nil {
			sd.RepMax = *v
		}
		ex.PlannedSets = append(ex.PlannedSets, sd)
	}
	return ex
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
