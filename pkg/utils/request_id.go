package utils

import (
	"github.com/google/uuid"
)

// MaxRequestIDLength bounds caller supplied request ids before they reach logs.
const MaxRequestIDLength = 64

var newUUIDv7 = uuid.NewV7

// NewRequestID returns a time-ordered id, falling back to a random v4 when the clock source fails.
func NewRequestID() string {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ValidRequestID reports whether an inbound id is safe to echo and log.
// Only ASCII letters, digits, '-', '_' and '.' are accepted.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}
