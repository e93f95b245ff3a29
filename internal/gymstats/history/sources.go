package history

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=history_test

// SessionSource lists every known session for the current identity.
type SessionSource interface {
	ListSessions(ctx context.Context) ([]training.Session, error)
}

// FuzzySource searches remote set logs by an exercise id LIKE pattern.
type FuzzySource interface {
	FindPriorByNamePattern(ctx context.Context, userID, pattern string, kind training.SetKind, order int, before time.Time) (*training.PriorResult, error)
}
