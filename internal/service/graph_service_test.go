package service

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphService_FollowUnfollow(t *testing.T) {
	env := newTestEnv(t)
	svc := env.graphService()
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	t.Run("self follow is rejected", func(t *testing.T) {
		_, err := svc.FollowUnfollow(ctx, alice.ID, alice.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInvalidOperation, appErr.Code)
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		_, err := svc.FollowUnfollow(ctx, alice.ID, 99999)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("toggle on then off", func(t *testing.T) {
		action, err := svc.FollowUnfollow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, ActionFollowed, action)

		following, err := env.follows.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, following)

		// One-directional: bob does not follow alice back.
		reverse, err := env.follows.IsFollowing(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, reverse)

		action, err = svc.FollowUnfollow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, ActionUnfollowed, action)

		following, err = env.follows.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("follow does not create a notification", func(t *testing.T) {
		_, err := svc.FollowUnfollow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		list, err := env.notifications.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestGraphService_LikeUnlike(t *testing.T) {
	env := newTestEnv(t)
	svc := env.graphService()
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, bob.ID, "a post")

	t.Run("unknown post is rejected", func(t *testing.T) {
		_, err := svc.LikeUnlike(ctx, alice.ID, 99999)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("like records state and notifies the author", func(t *testing.T) {
		action, err := svc.LikeUnlike(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, ActionLiked, action)

		liked, err := env.likes.IsLiked(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		list, err := env.notifications.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, alice.ID, list[0].FromID)
		assert.Equal(t, post.ID, list[0].PostID)
		assert.Equal(t, models.NotificationTypeLike, list[0].Type)
	})

	t.Run("unlike removes the like but keeps the notification", func(t *testing.T) {
		action, err := svc.LikeUnlike(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, ActionUnliked, action)

		liked, err := env.likes.IsLiked(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		list, err := env.notifications.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("re-like notifies again", func(t *testing.T) {
		_, err := svc.LikeUnlike(ctx, alice.ID, post.ID)
		require.NoError(t, err)

		list, err := env.notifications.ListForUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("self like notifies the author about themself", func(t *testing.T) {
		ownPost := env.createPost(t, alice.ID, "my own post")

		action, err := svc.LikeUnlike(ctx, alice.ID, ownPost.ID)
		require.NoError(t, err)
		assert.Equal(t, ActionLiked, action)

		list, err := env.notifications.ListForUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, alice.ID, list[0].FromID)
	})
}

func TestGraphService_Feed(t *testing.T) {
	env := newTestEnv(t)
	svc := env.graphService()
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	bobPost := env.createPost(t, bob.ID, "bob's post")
	env.createPost(t, carol.ID, "carol's post")

	t.Run("empty when following nobody", func(t *testing.T) {
		feed, err := svc.Feed(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	t.Run("contains only followed authors", func(t *testing.T) {
		_, err := svc.FollowUnfollow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		feed, err := svc.Feed(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, bobPost.ID, feed[0].ID)
	})
}
