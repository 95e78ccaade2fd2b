package service

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"time"

	id "ballotbox/pkg/domain"
)

// crockford is the Crockford base32 alphabet (no I, L, O, U).
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const confirmationSuffixLen = 10

var confirmationPattern = regexp.MustCompile(`^VT-[0-9]{4}-[0-9A-HJKMNP-TV-Z]{10}$`)

// NewConfirmationCode returns VT-<year>-<10 Crockford base32 chars>. 256 is a
// multiple of 32, so masking each random byte keeps the alphabet uniform.
func NewConfirmationCode(now time.Time) (id.ConfirmationCode, error) {
	buf := make([]byte, confirmationSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = crockford[b&31]
	}
	return id.ConfirmationCode(fmt.Sprintf("VT-%04d-%s", now.Year(), buf)), nil
}

// IsConfirmationCode reports whether code has the issued format.
func IsConfirmationCode(code id.ConfirmationCode) bool {
	return confirmationPattern.MatchString(string(code))
}
