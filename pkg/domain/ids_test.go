package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "govos/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSessionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseScenarioID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseSessionID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, SessionID(validUUID), id)
		assert.False(t, id.IsNil())
	})
}

func TestIDsMarshalAsStrings(t *testing.T) {
	raw := uuid.MustParse("eeee0000-0000-0000-0000-000000000001")
	out, err := json.Marshal(struct {
		Session SessionID `json:"session"`
	}{Session: SessionID(raw)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"session":"eeee0000-0000-0000-0000-000000000001"}`, string(out))
}
