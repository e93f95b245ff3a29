package routines

import (
	"context"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=routines

// LocalStore keeps template lists partitioned by owner ("" is anonymous).
type LocalStore interface {
	LoadTemplates(ctx context.Context, owner string) ([]training.RoutineTemplate, error)
	SaveTemplates(ctx context.Context, owner string, templates []training.RoutineTemplate) error
}

// RemoteStore upserts templates by (user, name); removal is explicit.
type RemoteStore interface {
	ListTemplates(ctx context.Context, userID string) ([]training.RoutineTemplate, error)
	SaveTemplates(ctx context.Context, userID string, templates []training.RoutineTemplate) error
	DeleteTemplates(ctx context.Context, userID string, names []string) error
}

type IdentityProvider interface {
	UserID(ctx context.Context) (string, bool)
}
