package workout

import (
	"context"

	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/training"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workout

type SessionLedger interface {
	UpsertSession(ctx context.Context, session training.Session) (training.Session, error)
	GetSession(ctx context.Context, sessionID string) (training.Session, error)
}

type TemplateSource interface {
	Get(ctx context.Context, name string) (training.RoutineTemplate, error)
}

type HistorySource interface {
	FindPriorResult(ctx context.Context, q history.Query) (*training.PriorResult, error)
}

// StateStore keeps the active workout pointer across restarts.
type StateStore interface {
	PutValue(ctx context.Context, key string, value []byte) error
	GetValue(ctx context.Context, key string) ([]byte, error)
	DeleteValue(ctx context.Context, key string) error
}

type IdentityProvider interface {
	UserID(ctx context.Context) (string, bool)
}

// RestListener is notified after every recorded set.
type RestListener interface {
	RestStarted(ctx context.Context, event RestEvent)
}
