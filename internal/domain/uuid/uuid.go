// Package uuid wraps github.com/google/uuid behind a string-based domain type.
package uuid

import (
	"github.com/google/uuid"
)

// UUID is the identifier type used across the domain.
type UUID string

// NewUUID generates a new random UUID.
func NewUUID() UUID {
	return UUID(uuid.New().String())
}

// ParseUUID parses s into a UUID.
func ParseUUID(s string) (UUID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return UUID(s), nil
}

// NewSuffix returns a short random suffix usable inside composite IDs.
// Task IDs combine a millisecond timestamp with this suffix so that rapid
// successive creations in the same millisecond never collide.
func NewSuffix() string {
	const suffixLen = 8
	return uuid.New().String()[:suffixLen]
}

// String returns the string representation.
func (u UUID) String() string {
	return string(u)
}

// IsZero reports whether the UUID is empty.
func (u UUID) IsZero() bool {
	return u == ""
}
