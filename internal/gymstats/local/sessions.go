package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

const upsertSessionSQL = `
	INSERT INTO sessions (owner, session_id, date_time, workout_name, updated_at, payload)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(owner, session_id) DO UPDATE SET
		date_time    = excluded.date_time,
		workout_name = excluded.workout_name,
		updated_at   = excluded.updated_at,
		payload      = excluded.payload
`

// UpsertSession writes the whole session, replacing the owner's record with the same id.
func (s *Store) UpsertSession(ctx context.Context, owner string, session training.Session) error {
	return s.UpsertSessions(ctx, owner, []training.Session{session})
}

// UpsertSessions writes all sessions of owner in one transaction.
func (s *Store) UpsertSessions(ctx context.Context, owner string, sessions []training.Session) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, session := range sessions {
		if session.SessionID == "" {
			return errors.New("session id empty")
		}
		payload, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session %s: %w", session.SessionID, err)
		}
		if _, err := tx.ExecContext(ctx, upsertSessionSQL,
			owner,
			session.SessionID,
			session.DateTime.UnixMilli(),
			session.WorkoutName,
			session.UpdatedAt.UnixMilli(),
			string(payload),
		); err != nil {
			return fmt.Errorf("upsert session %s: %w", session.SessionID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetSession(ctx context.Context, owner, sessionID string) (training.Session, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM sessions WHERE owner = ? AND session_id = ?`, owner, sessionID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return training.Session{}, ErrNotFound
	}
	if err != nil {
		return training.Session{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	var session training.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return training.Session{}, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return session, nil
}

// ListSessions returns the owner's sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context, owner string) ([]training.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM sessions WHERE owner = ? ORDER BY date_time DESC, session_id`, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []training.Session{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var session training.Session
		if err := json.Unmarshal([]byte(payload), &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
