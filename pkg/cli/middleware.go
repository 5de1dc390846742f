package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/edgardcham/gator/pkg/db"
)

// ErrNotLoggedIn indicates the config names no active user, or names one that
// no longer exists
var ErrNotLoggedIn = errors.New("no user logged in")

// LoggedInHandler is a handler that additionally receives the resolved
// active user
type LoggedInHandler func(ctx context.Context, s *State, cmd Command, user *db.User) error

// RequireLogin wraps handler so it only runs with a resolved active user.
// The active user name comes from the config loaded for this invocation; a
// name that no longer resolves (e.g. after a reset) is treated the same as
// no login. The returned Handler has the ordinary shape, so the registry
// treats wrapped and unwrapped commands identically.
func RequireLogin(handler LoggedInHandler) Handler {
	return func(ctx context.Context, s *State, cmd Command) error {
		if s.Cfg.CurrentUserName == "" {
			return ErrNotLoggedIn
		}
		user, err := s.DB.GetUserByName(ctx, s.Cfg.CurrentUserName)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("%w: user %q not registered", ErrNotLoggedIn, s.Cfg.CurrentUserName)
			}
			return err
		}
		return handler(ctx, s, cmd, user)
	}
}
