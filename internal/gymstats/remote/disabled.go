package remote

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

// Disabled stands in for the remote ledger in local-only mode.
type Disabled struct{}

func (Disabled) UpsertSession(context.Context, string, training.Session) error {
	return ErrUnavailable
}

func (Disabled) ListSessions(context.Context, string) ([]training.Session, error) {
	return nil, ErrUnavailable
}

func (Disabled) ListTemplates(context.Context, string) ([]training.RoutineTemplate, error) {
	return nil, ErrUnavailable
}

func (Disabled) SaveTemplates(context.Context, string, []training.RoutineTemplate) error {
	return ErrUnavailable
}

func (Disabled) DeleteTemplates(context.Context, string, []string) error {
	return ErrUnavailable
}

func (Disabled) FindPriorByNamePattern(context.Context, string, string, training.SetKind, int, time.Time) (*training.PriorResult, error) {
	return nil, ErrUnavailable
}
