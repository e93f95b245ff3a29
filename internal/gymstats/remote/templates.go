package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

func (r *Repo) ListTemplates(ctx context.Context, userID string) (_ []training.RoutineTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT payload FROM routine_templates
		WHERE user_id = $1
		ORDER BY position, name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []training.RoutineTemplate{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		var tmpl training.RoutineTemplate
		if err := json.Unmarshal(payload, &tmpl); err != nil {
			return nil, fmt.Errorf("unmarshal template: %w", err)
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("templates.count", len(templates)))
	return templates, nil
}

// SaveTemplates upserts every template keyed by (user, name). Templates of the
// user missing from the list are left alone; removal goes through DeleteTemplates.
func (r *Repo) SaveTemplates(ctx context.Context, userID string, templates []training.RoutineTemplate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.templates.save")
	span.SetAttributes(attribute.Int("templates.count", len(templates)))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	batch := &pgx.Batch{}
	for i, tmpl := range templates {
		payload, marshalErr := json.Marshal(tmpl)
		if marshalErr != nil {
			return fmt.Errorf("marshal template %q: %w", tmpl.Name, marshalErr)
		}
		batch.Queue(`
			INSERT INTO routine_templates (user_id, name, position, payload, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (user_id, name) DO UPDATE SET
				position   = EXCLUDED.position,
				payload    = EXCLUDED.payload,
				updated_at = EXCLUDED.updated_at
		`, userID, tmpl.Name, i, payload)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := r.db.SendBatch(ctx, batch)
	for _, tmpl := range templates {
		if _, execErr := results.Exec(); execErr != nil {
			_ = results.Close()
			return fmt.Errorf("upsert template %q: %w", tmpl.Name, execErr)
		}
	}
	return results.Close()
}

// DeleteTemplates removes the named templates of the user.
func (r *Repo) DeleteTemplates(ctx context.Context, userID string, names []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.templates.delete")
	span.SetAttributes(attribute.Int("templates.count", len(names)))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(names) == 0 {
		return nil
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM routine_templates
		WHERE user_id = $1 AND name = ANY($2)
	`, userID, names)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int64("templates.deleted", tag.RowsAffected()))
	return nil
}
