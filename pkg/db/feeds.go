package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateFeed inserts a new feed owned by userID. Feed names are unique across
// all users; returns ErrAlreadyExists on a name collision.
func (db *DB) CreateFeed(ctx context.Context, name, url, userID string) (*Feed, error) {
	if _, err := db.GetFeedByName(ctx, name); err == nil {
		return nil, fmt.Errorf("feed %q: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	feed := &Feed{
		ID:        uuid.New().String(),
		Name:      name,
		URL:       url,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO feeds (id, name, url, user_id, created_at, updated_at)
		VALUES (:id, :name, :url, :user_id, :created_at, :updated_at)
	`
	if _, err := db.conn.NamedExecContext(ctx, query, feed); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("feed %q: %w", name, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("insert feed: %w", err)
	}

	return feed, nil
}

// GetFeedByName retrieves a feed by name. Returns ErrNotFound on miss.
func (db *DB) GetFeedByName(ctx context.Context, name string) (*Feed, error) {
	var feed Feed
	query := `SELECT * FROM feeds WHERE name = ?`
	err := db.conn.GetContext(ctx, &feed, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("feed %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("get feed by name: %w", err)
	}
	return &feed, nil
}

// GetFeedByURL retrieves a feed by URL. Returns ErrNotFound on miss.
func (db *DB) GetFeedByURL(ctx context.Context, url string) (*Feed, error) {
	var feed Feed
	query := `SELECT * FROM feeds WHERE url = ?`
	err := db.conn.GetContext(ctx, &feed, query, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("feed %s: %w", url, ErrNotFound)
		}
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return &feed, nil
}

// GetFeed retrieves a feed by id. Returns ErrNotFound on miss.
func (db *DB) GetFeed(ctx context.Context, id string) (*Feed, error) {
	var feed Feed
	query := `SELECT * FROM feeds WHERE id = ?`
	err := db.conn.GetContext(ctx, &feed, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("feed %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return &feed, nil
}

// GetFeedsWithUsers retrieves all feeds joined with their owner's name, in
// creation order
func (db *DB) GetFeedsWithUsers(ctx context.Context) ([]FeedWithUser, error) {
	var feeds []FeedWithUser
	query := `
		SELECT f.*, u.name AS user_name
		FROM feeds f
		JOIN users u ON f.user_id = u.id
		ORDER BY f.created_at
	`
	err := db.conn.SelectContext(ctx, &feeds, query)
	if err != nil {
		return nil, fmt.Errorf("get feeds with users: %w", err)
	}
	return feeds, nil
}
