package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedFollowOperations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, "ana")
	require.NoError(t, err)
	feed, err := db.CreateFeed(ctx, "Blog", "http://x/feed", user.ID)
	require.NoError(t, err)

	t.Run("create follow returns joined names", func(t *testing.T) {
		follow, err := db.CreateFeedFollow(ctx, feed.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana", follow.UserName)
		assert.Equal(t, "Blog", follow.FeedName)
		assert.Equal(t, "http://x/feed", follow.FeedURL)
	})

	t.Run("duplicate pair rejected", func(t *testing.T) {
		_, err := db.CreateFeedFollow(ctx, feed.ID, user.ID)
		assert.ErrorIs(t, err, ErrConstraint)
	})

	t.Run("list follows for user", func(t *testing.T) {
		follows, err := db.GetFeedFollowsForUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, follows, 1)
		assert.Equal(t, "ana", follows[0].UserName)
		assert.Equal(t, "Blog", follows[0].FeedName)

		// another user's list stays empty
		other, err := db.CreateUser(ctx, "bob")
		require.NoError(t, err)
		follows, err = db.GetFeedFollowsForUser(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, follows)
	})

	t.Run("unfollow", func(t *testing.T) {
		require.NoError(t, db.DeleteFeedFollow(ctx, "ana", "http://x/feed"))

		follows, err := db.GetFeedFollowsForUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, follows)
	})

	t.Run("unfollow without a follow is a no-op", func(t *testing.T) {
		require.NoError(t, db.DeleteFeedFollow(ctx, "ana", "http://x/feed"))
	})

	t.Run("unfollow validates user and feed", func(t *testing.T) {
		err := db.DeleteFeedFollow(ctx, "nobody", "http://x/feed")
		assert.ErrorIs(t, err, ErrNotFound)

		err = db.DeleteFeedFollow(ctx, "ana", "http://nope/feed")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting feed owner cascades to follows", func(t *testing.T) {
		_, err := db.CreateFeedFollow(ctx, feed.ID, user.ID)
		require.NoError(t, err)

		require.NoError(t, db.DeleteAllUsers(ctx))

		follows, err := db.GetFeedFollowsForUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, follows)
	})
}
