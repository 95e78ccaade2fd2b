package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain-errors codes.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrConflict: a unique record already exists (e.g. a ledger entry for a voter)
//   - ErrExpired: session or token has expired
//   - ErrInvalidState: stored record violates its invariants
//   - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
