package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))
}

func TestActor(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "system", Actor(ctx))

	ctx = WithActor(ctx, "jane@example.com")
	assert.Equal(t, "jane@example.com", Actor(ctx))
}

func TestNow(t *testing.T) {
	t.Run("defaults to wall clock in UTC", func(t *testing.T) {
		got := Now(context.Background())
		assert.WithinDuration(t, time.Now().UTC(), got, time.Second)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("pinned time wins", func(t *testing.T) {
		pinned := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
		ctx := WithTime(context.Background(), pinned)
		assert.Equal(t, pinned, Now(ctx))
	})
}
