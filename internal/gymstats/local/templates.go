package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

// SaveTemplates replaces the owner's template list, keeping its order.
func (s *Store) SaveTemplates(ctx context.Context, owner string, templates []training.RoutineTemplate) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_templates WHERE owner = ?`, owner); err != nil {
		return fmt.Errorf("clear templates: %w", err)
	}

	for i, tmpl := range templates {
		if tmpl.Name == "" {
			return errors.New("template name empty")
		}
		payload, err := json.Marshal(tmpl)
		if err != nil {
			return fmt.Errorf("marshal template %q: %w", tmpl.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO routine_templates (owner, name, position, payload) VALUES (?, ?, ?, ?)`,
			owner, tmpl.Name, i, string(payload),
		); err != nil {
			return fmt.Errorf("insert template %q: %w", tmpl.Name, err)
		}
	}

	return tx.Commit()
}

func (s *Store) LoadTemplates(ctx context.Context, owner string) ([]training.RoutineTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM routine_templates WHERE owner = ? ORDER BY position`, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	defer rows.Close()

	templates := []training.RoutineTemplate{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		var tmpl training.RoutineTemplate
		if err := json.Unmarshal([]byte(payload), &tmpl); err != nil {
			return nil, fmt.Errorf("unmarshal template: %w", err)
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}
