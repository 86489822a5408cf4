package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSession_Expired(t *testing.T) {
	live := Session{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.Expired())

	dead := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, dead.Expired())
}

func TestSessionPayload_RoundTrip(t *testing.T) {
	raw, err := json.Marshal(SessionPayload{UserID: "user-123"})
	require.NoError(t, err)

	session := Session{Payload: datatypes.JSON(raw)}

	var payload SessionPayload
	require.NoError(t, json.Unmarshal(session.Payload, &payload))
	assert.Equal(t, "user-123", payload.UserID)
}

// Extra keys in the payload blob belong to the auth collaborator and must not
// break our read of userId.
func TestSessionPayload_IgnoresUnknownKeys(t *testing.T) {
	blob := []byte(`{"userId":"user-123","issuer":"auth0","scopes":["read"]}`)

	var payload SessionPayload
	require.NoError(t, json.Unmarshal(blob, &payload))
	assert.Equal(t, "user-123", payload.UserID)
}
