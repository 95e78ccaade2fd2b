package jwttoken

import (
	"time"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	authmw "ballotbox/pkg/platform/middleware/auth"
)

// ToMiddlewareClaims converts token claims to the middleware's view. The
// embedded session ID must parse as a UUID.
func ToMiddlewareClaims(claims *SessionClaims) (*authmw.SessionClaims, error) {
	sessionID, err := id.ParseSessionID(claims.SessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid session token claims")
	}
	out := &authmw.SessionClaims{SessionID: sessionID}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// JWTServiceAdapter satisfies authmw.SessionTokens.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims)
}

func (a *JWTServiceAdapter) IssueToken(sessionID id.SessionID) (string, time.Time, error) {
	return a.service.GenerateSessionToken(sessionID)
}
