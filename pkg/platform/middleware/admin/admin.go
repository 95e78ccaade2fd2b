// Package admin guards the administrator API with a shared token.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/requestcontext"
)

const (
	HeaderToken = "X-Admin-Token"
	HeaderActor = "X-Admin-Actor"

	defaultActor   = "admin"
	maxActorLength = 64
)

// Verifier checks a presented admin token.
type Verifier interface {
	Verify(token string) bool
}

// StaticToken compares against a plaintext token in constant time.
type StaticToken string

func (t StaticToken) Verify(token string) bool {
	if t == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1
}

// HashedToken verifies against a bcrypt hash so the deployment never holds
// the plaintext token.
type HashedToken []byte

func (h HashedToken) Verify(token string) bool {
	if len(h) == 0 || token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(h, []byte(token)) == nil
}

// NewVerifier prefers the bcrypt hash when one is configured.
func NewVerifier(token, hash string) Verifier {
	if hash != "" {
		return HashedToken(hash)
	}
	return StaticToken(token)
}

// RequireAdminToken rejects requests without a valid X-Admin-Token and
// records the acting administrator (X-Admin-Actor, default "admin") for audit.
func RequireAdminToken(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !verifier.Verify(r.Header.Get(HeaderToken)) {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", request.GetRequestID(ctx),
					"client_ip", requestcontext.ClientIP(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}

			actor := strings.TrimSpace(r.Header.Get(HeaderActor))
			if actor == "" || len(actor) > maxActorLength {
				actor = defaultActor
			}
			ctx = requestcontext.WithAdminActor(ctx, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
