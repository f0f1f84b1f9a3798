package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &SessionStore{client: client}, mr
}

func TestSessionStore_SaveExistsRevoke(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := domain.Session{ID: "s-1", UserID: "uid-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	ok, err := store.Exists(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, ok)

	val, err := mr.Get("session:s-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", val)

	require.NoError(t, store.Revoke(ctx, "s-1"))
	ok, err = store.Exists(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoking twice is harmless.
	assert.NoError(t, store.Revoke(ctx, "s-1"))
}

func TestSessionStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "s-2", UserID: "uid-2", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	ok, err := store.Exists(ctx, "s-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_RejectsExpiredSession(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), domain.Session{ID: "s-3", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
