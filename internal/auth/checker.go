package auth

import "context"

var _ Checker = (*IdentityChecker)(nil)
var _ Checker = (*StaticChecker)(nil)

type Checker interface {
	// Identify returns the user id a token was issued for.
	Identify(ctx context.Context, token string) (string, bool, error)
}
