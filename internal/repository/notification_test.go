package repository

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	n1 := &models.Notification{FromID: alice.ID, ToID: bob.ID, Type: models.NotificationTypeLike}
	n2 := &models.Notification{FromID: alice.ID, ToID: bob.ID, Type: models.NotificationTypeLike}
	require.NoError(t, repo.Create(ctx, n1))
	require.NoError(t, repo.Create(ctx, n2))

	t.Run("list is scoped to the recipient and preloads sender", func(t *testing.T) {
		list, err := repo.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, alice.Username, list[0].From.Username)
		assert.False(t, list[0].Read)

		other, err := repo.ListForUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("mark all read", func(t *testing.T) {
		require.NoError(t, repo.MarkAllRead(ctx, bob.ID))

		list, err := repo.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		for _, n := range list {
			assert.True(t, n.Read)
		}
	})

	t.Run("delete one", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, n1.ID))

		_, err := repo.GetByID(ctx, n1.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("delete all for recipient", func(t *testing.T) {
		require.NoError(t, repo.DeleteAllFor(ctx, bob.ID))

		list, err := repo.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
