package rest

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=rest

type Clock interface {
	Now() time.Time
}

// KVStore persists the running deadlines, so they survive restarts.
type KVStore interface {
	PutValue(ctx context.Context, key string, value []byte) error
	ListValues(ctx context.Context, prefix string) (map[string][]byte, error)
	DeleteValue(ctx context.Context, key string) error
}

// Notifier delivers the end-of-rest side effects.
type Notifier interface {
	Vibrate(ctx context.Context)
	NotifyRestEnd(ctx context.Context, expiry Expiry)
}

type IdentityProvider interface {
	UserID(ctx context.Context) (string, bool)
}

// Advancer moves a workout past a rested exercise when it is still the active one.
type Advancer interface {
	AdvanceFrom(ctx context.Context, owner, sessionID string, fromIndex int) (bool, error)
}
