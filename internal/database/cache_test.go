package database

import (
	"testing"
	"time"

	. "healthdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Repositories run against a nil cache client in tests and when the cache
// tier is down; every operation must degrade to a miss or no-op.
func TestCacheBuilder_NilClient(t *testing.T) {
	builder := NewCacheBuilder(nil, "user:123")

	var user User
	found, err := builder.Get(&user)
	assert.False(t, found)
	assert.NoError(t, err)

	assert.NoError(t, builder.WithStruct(&User{ID: "123"}).WithTTL(time.Minute).Set())
	assert.NoError(t, builder.Delete())
}

func TestCacheBuilder_Chaining(t *testing.T) {
	builder := NewCacheBuilder(nil, "metric:latest:123")

	require.Same(t, builder, builder.WithStruct(&HealthMetric{}))
	require.Same(t, builder, builder.WithTTL(15*time.Minute))
}
