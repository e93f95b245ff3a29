package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

// UpsertSession blindly writes the whole session keyed by session id and
// rebuilds its set_logs projection. A session id already stored for another
// user is rejected with ErrSessionOwnedByOther and nothing is written.
func (r *Repo) UpsertSession(ctx context.Context, userID string, session training.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.sessions.upsert")
	span.SetAttributes(attribute.String("session.id", session.SessionID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, date_iso, workout_name, updated_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO UPDATE SET
			date_iso     = EXCLUDED.date_iso,
			workout_name = EXCLUDED.workout_name,
			updated_at   = EXCLUDED.updated_at,
			payload      = EXCLUDED.payload
		WHERE sessions.user_id = EXCLUDED.user_id
	`,
		session.SessionID, userID, session.DateTime, session.WorkoutName, session.UpdatedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", session.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("%w: %s", ErrSessionOwnedByOther, session.SessionID)
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM set_logs WHERE session_id = $1`, session.SessionID); err != nil {
		return fmt.Errorf("clear set logs: %w", err)
	}

	batch := &pgx.Batch{}
	for _, occ := range session.Occurrences {
		for _, l := range occ.CompletedLogs {
			createdAt := l.CreatedAt
			if createdAt.IsZero() {
				createdAt = session.DateTime
			}
			batch.Queue(`
				INSERT INTO set_logs
					(session_id, user_id, exercise_id, exercise_version, exercise_name, kind, set_order, weight, reps, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`,
				session.SessionID, userID, occ.Ref.ID, occ.Ref.Version, occ.NameSnapshot,
				string(l.Kind), l.Order, l.Weight, l.Reps, createdAt,
			)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, execErr := results.Exec(); execErr != nil {
			_ = results.Close()
			err = fmt.Errorf("insert set log: %w", execErr)
			return err
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return nil
}

// ListSessions returns the user's sessions, most recent first.
func (r *Repo) ListSessions(ctx context.Context, userID string) (_ []training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT payload FROM sessions
		WHERE user_id = $1
		ORDER BY date_iso DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []training.Session{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		var session training.Session
		if err := json.Unmarshal(payload, &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))
	return sessions, nil
}

// FindPriorByNamePattern returns the latest set log before the cutoff whose exercise id
// or name matches the ILIKE pattern. Results are advisory.
func (r *Repo) FindPriorByNamePattern(
	ctx context.Context,
	userID, pattern string,
	kind training.SetKind,
	order int,
	before time.Time,
) (_ *training.PriorResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.setlogs.findByPattern")
	span.SetAttributes(attribute.String("pattern", pattern))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		weight    *float64
		reps      int
		sessionID string
		dateTime  time.Time
	)
	err = r.db.QueryRow(ctx, `
		SELECT sl.weight, sl.reps, sl.session_id, s.date_iso
		FROM set_logs sl
			JOIN sessions s ON s.session_id = sl.session_id
		WHERE sl.user_id = $1
			AND (sl.exercise_id ILIKE $2 OR sl.exercise_name ILIKE $2)
			AND sl.kind = $3
			AND sl.set_order = $4
			AND s.date_iso < $5
		ORDER BY s.date_iso DESC, sl.created_at DESC, sl.id DESC
		LIMIT 1
	`, userID, pattern, string(kind), order, before).Scan(&weight, &reps, &sessionID, &dateTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &training.PriorResult{
		Weight:    weight,
		Reps:      reps,
		SessionID: sessionID,
		DateTime:  dateTime,
	}, nil
}
