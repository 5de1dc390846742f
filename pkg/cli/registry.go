package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/edgardcham/gator/pkg/config"
	"github.com/edgardcham/gator/pkg/db"
	"github.com/edgardcham/gator/pkg/feed"
)

// ErrUnknownCommand is returned by Run for a command name with no handler
var ErrUnknownCommand = errors.New("unknown command")

// FeedFetcher fetches and parses a remote feed document
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*feed.Feed, error)
}

// State carries everything a handler needs for one invocation: the loaded
// config and where to persist it, the stores, the fetcher and the output
// stream for user-visible text.
type State struct {
	Cfg     *config.Config
	CfgPath string
	DB      *db.DB
	Fetcher FeedFetcher
	Out     io.Writer
}

// Command is a parsed invocation: the command name plus its raw arguments
type Command struct {
	Name string
	Args []string
}

// Handler executes one command against the state
type Handler func(ctx context.Context, s *State, cmd Command) error

// Registry maps command names to handlers
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register maps name to handler. Registering the same name again overwrites
// the previous handler; registration happens only at startup.
func (r *Registry) Register(name string, handler Handler) {
	r.handlers[name] = handler
}

// Run resolves and executes the named command. Handler outcomes pass through
// unchanged; this is the single place failures cross into the caller.
func (r *Registry) Run(ctx context.Context, s *State, cmd Command) error {
	handler, ok := r.handlers[cmd.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
	}
	return handler(ctx, s, cmd)
}

// NewDefaultRegistry creates the registry with the full command surface
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("login", HandlerLogin)
	r.Register("register", HandlerRegister)
	r.Register("reset", HandlerReset)
	r.Register("users", HandlerUsers)
	r.Register("agg", HandlerAgg)
	r.Register("addfeed", RequireLogin(HandlerAddFeed))
	r.Register("feeds", HandlerFeeds)
	r.Register("follow", RequireLogin(HandlerFollow))
	r.Register("following", RequireLogin(HandlerFollowing))
	r.Register("unfollow", RequireLogin(HandlerUnfollow))
	return r
}

// DefaultFetchTimeout bounds a single feed fetch
const DefaultFetchTimeout = 30 * time.Second
