package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateUser inserts a new user with the given name. Returns ErrAlreadyExists
// if the name is taken.
func (db *DB) CreateUser(ctx context.Context, name string) (*User, error) {
	if _, err := db.GetUserByName(ctx, name); err == nil {
		return nil, fmt.Errorf("user %q: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO users (id, name, created_at, updated_at)
		VALUES (:id, :name, :created_at, :updated_at)
	`
	if _, err := db.conn.NamedExecContext(ctx, query, user); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", name, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetUserByName retrieves a user by name. Returns ErrNotFound on miss.
func (db *DB) GetUserByName(ctx context.Context, name string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE name = ?`
	err := db.conn.GetContext(ctx, &user, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("get user by name: %w", err)
	}
	return &user, nil
}

// GetUser retrieves a user by id. Returns ErrNotFound on miss.
func (db *DB) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE id = ?`
	err := db.conn.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUsers retrieves all users in creation order
func (db *DB) GetUsers(ctx context.Context) ([]User, error) {
	var users []User
	query := `SELECT * FROM users ORDER BY created_at`
	err := db.conn.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

// DeleteAllUsers removes every user. Owned feeds and follows go with them
// via cascade.
func (db *DB) DeleteAllUsers(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
