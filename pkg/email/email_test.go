package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"sarah.johnson@university.edu", true},
		{"a+tag@dept.university.edu", true},
		{"missing-at.university.edu", false},
		{"no-domain-dot@university", false},
		{"space in@university.edu", false},
		{"@university.edu", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.addr))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sarah@university.edu", Normalize("  Sarah@University.EDU "))
}
