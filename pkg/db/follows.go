package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateFeedFollow inserts a follow linking userID to feedID and returns it
// joined with the feed and user names for display. The joins run after the
// insert as separate lookups, not inside the same transaction; the follow
// itself is committed by the insert alone. Returns ErrConstraint if the user
// already follows the feed.
func (db *DB) CreateFeedFollow(ctx context.Context, feedID, userID string) (*FeedFollowWithNames, error) {
	now := time.Now().UTC()
	follow := &FeedFollow{
		ID:        uuid.New().String(),
		FeedID:    feedID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO feed_follows (id, feed_id, user_id, created_at, updated_at)
		VALUES (:id, :feed_id, :user_id, :created_at, :updated_at)
	`
	if _, err := db.conn.NamedExecContext(ctx, query, follow); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("already following feed: %w", ErrConstraint)
		}
		return nil, fmt.Errorf("insert feed follow: %w", err)
	}

	feed, err := db.GetFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FeedFollowWithNames{
		FeedFollow: *follow,
		FeedName:   feed.Name,
		FeedURL:    feed.URL,
		UserName:   user.Name,
	}, nil
}

// DeleteFeedFollow removes the follow linking the named user to the feed at
// url. Both must exist (ErrNotFound otherwise); deleting a pair that is not
// followed is a no-op.
func (db *DB) DeleteFeedFollow(ctx context.Context, userName, feedURL string) error {
	user, err := db.GetUserByName(ctx, userName)
	if err != nil {
		return err
	}
	feed, err := db.GetFeedByURL(ctx, feedURL)
	if err != nil {
		return err
	}

	query := `DELETE FROM feed_follows WHERE user_id = ? AND feed_id = ?`
	if _, err := db.conn.ExecContext(ctx, query, user.ID, feed.ID); err != nil {
		return fmt.Errorf("delete feed follow: %w", err)
	}
	return nil
}

// GetFeedFollowsForUser retrieves the user's follows joined with feed and
// user names, in creation order
func (db *DB) GetFeedFollowsForUser(ctx context.Context, userID string) ([]FeedFollowWithNames, error) {
	var follows []FeedFollowWithNames
	query := `
		SELECT ff.*, f.name AS feed_name, f.url AS feed_url, u.name AS user_name
		FROM feed_follows ff
		JOIN feeds f ON ff.feed_id = f.id
		JOIN users u ON ff.user_id = u.id
		WHERE ff.user_id = ?
		ORDER BY ff.created_at
	`
	err := db.conn.SelectContext(ctx, &follows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get feed follows: %w", err)
	}
	return follows, nil
}
