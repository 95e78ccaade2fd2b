// Package jwttoken signs and verifies the voter session cookie. The cookie
// only carries the session ID; all session state stays server-side.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/clock"
)

const defaultIssuer = "ballotbox"

// SessionClaims is the payload of a voter session token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256 session tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	clock      clock.Clock
}

type Option func(*JWTService)

func WithIssuer(issuer string) Option {
	return func(s *JWTService) {
		s.issuer = issuer
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *JWTService) {
		s.clock = c
	}
}

func NewJWTService(signingKey string, ttl time.Duration, opts ...Option) (*JWTService, error) {
	if len(signingKey) < 16 {
		return nil, errors.New("session signing key must be at least 16 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("session token ttl must be positive")
	}
	s := &JWTService{
		signingKey: []byte(signingKey),
		issuer:     defaultIssuer,
		ttl:        ttl,
		clock:      clock.Real(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL is how long an issued token stays valid.
func (s *JWTService) TTL() time.Duration { return s.ttl }

// GenerateSessionToken signs a token for sessionID.
func (s *JWTService) GenerateSessionToken(sessionID id.SessionID) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, issuer and expiry.
func (s *JWTService) ValidateToken(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token claims")
	}
	return claims, nil
}
