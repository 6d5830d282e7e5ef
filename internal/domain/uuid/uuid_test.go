package uuid_test

import (
	"testing"

	"github.com/okodanev/deskhub/internal/domain/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := uuid.NewUUID()

	require.False(t, id.IsZero())

	parsed, err := uuid.ParseUUID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	assert.NotEqual(t, id, uuid.NewUUID())
}

func TestParseUUID_Invalid(t *testing.T) {
	_, err := uuid.ParseUUID("not-a-uuid")

	require.Error(t, err)
}

func TestNewSuffix(t *testing.T) {
	suffix := uuid.NewSuffix()

	assert.Len(t, suffix, 8)
	assert.NotEqual(t, suffix, uuid.NewSuffix())
}

func TestUUID_IsZero(t *testing.T) {
	assert.True(t, uuid.UUID("").IsZero())
	assert.False(t, uuid.UUID("abc").IsZero())
}
