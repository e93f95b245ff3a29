package ledger

import (
	"context"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=ledger

// LocalStore keeps sessions partitioned by owner ("" is anonymous).
type LocalStore interface {
	UpsertSession(ctx context.Context, owner string, session training.Session) error
	UpsertSessions(ctx context.Context, owner string, sessions []training.Session) error
	GetSession(ctx context.Context, owner, sessionID string) (training.Session, error)
	ListSessions(ctx context.Context, owner string) ([]training.Session, error)
}

type RemoteStore interface {
	UpsertSession(ctx context.Context, userID string, session training.Session) error
	ListSessions(ctx context.Context, userID string) ([]training.Session, error)
}

// IdentityProvider returns the current user id, if any.
type IdentityProvider interface {
	UserID(ctx context.Context) (string, bool)
}
