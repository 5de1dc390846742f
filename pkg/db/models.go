package db

import "time"

// User represents a registered account
type User struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Feed represents a named pointer to a remote feed URL, owned by a user
type Feed struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FeedFollow records that a user tracks a feed. The (user_id, feed_id) pair
// is unique.
type FeedFollow struct {
	ID        string    `db:"id"`
	FeedID    string    `db:"feed_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FeedWithUser is a feed joined with its owner's name, for listings
type FeedWithUser struct {
	Feed
	UserName string `db:"user_name"`
}

// FeedFollowWithNames is a follow joined with the feed and user it links,
// assembled at query time for display
type FeedFollowWithNames struct {
	FeedFollow
	FeedName string `db:"feed_name"`
	FeedURL  string `db:"feed_url"`
	UserName string `db:"user_name"`
}
