package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to the registered handler", func(t *testing.T) {
		r := NewRegistry()
		var got Command
		r.Register("hello", func(_ context.Context, _ *State, cmd Command) error {
			got = cmd
			return nil
		})

		err := r.Run(ctx, nil, Command{Name: "hello", Args: []string{"a", "b"}})
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Name)
		assert.Equal(t, []string{"a", "b"}, got.Args)
	})

	t.Run("unknown command", func(t *testing.T) {
		r := NewRegistry()
		err := r.Run(ctx, nil, Command{Name: "nope"})
		assert.ErrorIs(t, err, ErrUnknownCommand)
	})

	t.Run("handler failures pass through unchanged", func(t *testing.T) {
		r := NewRegistry()
		boom := errors.New("boom")
		r.Register("fail", func(context.Context, *State, Command) error { return boom })

		err := r.Run(ctx, nil, Command{Name: "fail"})
		assert.Equal(t, boom, err)
	})

	t.Run("last registration wins", func(t *testing.T) {
		r := NewRegistry()
		r.Register("cmd", func(context.Context, *State, Command) error { return errors.New("first") })
		r.Register("cmd", func(context.Context, *State, Command) error { return nil })

		assert.NoError(t, r.Run(ctx, nil, Command{Name: "cmd"}))
	})
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	for _, name := range []string{"login", "register", "reset", "users", "agg",
		"addfeed", "feeds", "follow", "following", "unfollow"} {
		assert.Contains(t, r.handlers, name)
	}
}
