package auth

import "context"

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// ContextIdentity reads the user id put into the request context by the auth middleware.
type ContextIdentity struct{}

func (ContextIdentity) UserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}

// StaticIdentity always reports the same user. An empty id means local-only.
type StaticIdentity string

func (s StaticIdentity) UserID(context.Context) (string, bool) {
	return string(s), s != ""
}
