// Package auth resolves the voter session from the signed session cookie.
//
// Every voter request carries a session, even before sign-in: a missing or
// invalid cookie gets a fresh session ID and a new cookie. Identity is never
// taken from the cookie; the state machine owns it.
package auth

import (
	"log/slog"
	"net/http"
	"time"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/requestcontext"
)

// CookieName is the voter session cookie.
const CookieName = "ballot_session"

// SessionClaims is what the middleware needs from a verified token.
type SessionClaims struct {
	SessionID id.SessionID
	ExpiresAt time.Time
}

// TokenValidator verifies a session token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// TokenIssuer signs a token for a session.
type TokenIssuer interface {
	IssueToken(sessionID id.SessionID) (token string, expiresAt time.Time, err error)
}

type SessionTokens interface {
	TokenValidator
	TokenIssuer
}

// CookieOptions controls the Set-Cookie attributes.
type CookieOptions struct {
	Secure bool
	Path   string
}

// VoterSession attaches the session ID to the request context, issuing a new
// session when the cookie is missing, expired or forged.
func VoterSession(tokens SessionTokens, cookie CookieOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
				claims, err := tokens.ValidateToken(c.Value)
				if err == nil {
					ctx = requestcontext.WithSessionID(ctx, claims.SessionID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				logger.InfoContext(ctx, "voter session cookie rejected, issuing new session",
					"error", err,
					"request_id", requestID,
				)
			}

			sessionID := id.NewSessionID()
			token, expiresAt, err := tokens.IssueToken(sessionID)
			if err != nil {
				logger.ErrorContext(ctx, "failed to issue voter session token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "session unavailable"))
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     cookie.Path,
				Expires:  expiresAt,
				HttpOnly: true,
				Secure:   cookie.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			ctx = requestcontext.WithSessionID(ctx, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that reach a voter handler without a
// session in context. It guards handlers mounted outside VoterSession.
func RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if requestcontext.SessionID(ctx).IsNil() {
				logger.WarnContext(ctx, "voter request without session",
					"request_id", request.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "voter session required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
