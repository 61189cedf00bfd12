package repository

import (
	"context"
	"testing"

	"chirp/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByIDCached(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	u := createTestUser(t, db, "cached")

	first, err := repo.GetByIDCached(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, first.Username)
	assert.True(t, mr.Exists(cache.UserKey(u.ID)))

	// A direct row change is invisible while the cache entry lives.
	require.NoError(t, db.Model(u).Update("bio", "changed behind the cache").Error)

	stale, err := repo.GetByIDCached(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, stale.Bio)

	// Update goes through the repository and invalidates the entry.
	fresh, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	fresh.Bio = "updated properly"
	require.NoError(t, repo.Update(ctx, fresh))
	assert.False(t, mr.Exists(cache.UserKey(u.ID)))

	reloaded, err := repo.GetByIDCached(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated properly", reloaded.Bio)
}
