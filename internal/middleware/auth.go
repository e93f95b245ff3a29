package middleware

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

const TokenHeader = "X-LIFTLOG-TOKEN"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=middleware_test

type identityChecker interface {
	Identify(ctx context.Context, token string) (string, bool, error)
}

type IdentityMiddlewareHandler struct {
	checker identityChecker
}

func NewIdentityMiddlewareHandler(checker identityChecker) *IdentityMiddlewareHandler {
	return &IdentityMiddlewareHandler{
		checker: checker,
	}
}

// IdentityCheck resolves the request token to a user id and stores it in the
// request context. Requests without a token run in local-only mode, an unknown
// token is rejected. When the token store is down the request is served
// without identity.
func (h *IdentityMiddlewareHandler) IdentityCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.identity")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			token := r.Header.Get(TokenHeader)
			if token == "" {
				span.SetStatus(codes.Ok, "anonymous")
				next.ServeHTTP(w, r)
				return
			}

			userID, ok, err := h.checker.Identify(ctx, token)
			if err != nil {
				log.Errorf("[identity check failed] => %s: %s", r.URL.Path, err)
				span.RecordError(err)
				span.SetStatus(codes.Error, "identify-err")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				log.Tracef("[invalid token] [identity middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
