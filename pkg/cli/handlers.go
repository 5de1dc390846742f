package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/edgardcham/gator/pkg/db"
)

// HandlerLogin sets an existing user as the active one and persists the choice
func HandlerLogin(ctx context.Context, s *State, cmd Command) error {
	if len(cmd.Args) == 0 {
		return errors.New("no username provided")
	}
	name := cmd.Args[0]

	if _, err := s.DB.GetUserByName(ctx, name); err != nil {
		return err
	}
	if err := s.Cfg.SetUser(name, s.CfgPath); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "Logged in as %s\n", name)
	return nil
}

// HandlerRegister creates a new user and logs them in
func HandlerRegister(ctx context.Context, s *State, cmd Command) error {
	if len(cmd.Args) == 0 {
		return errors.New("no username provided")
	}
	name := cmd.Args[0]

	if _, err := s.DB.CreateUser(ctx, name); err != nil {
		return err
	}
	if err := s.Cfg.SetUser(name, s.CfgPath); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "Registered user %s and logged in\n", name)
	return nil
}

// HandlerReset wipes all users; feeds and follows cascade away with them.
// Maintenance command for dev and test setups.
func HandlerReset(ctx context.Context, s *State, _ Command) error {
	if err := s.DB.DeleteAllUsers(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Users table reset")
	return nil
}

// HandlerUsers lists all users, marking the active one
func HandlerUsers(ctx context.Context, s *State, _ Command) error {
	users, err := s.DB.GetUsers(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if user.Name == s.Cfg.CurrentUserName {
			fmt.Fprintf(s.Out, "* %s (current)\n", user.Name)
			continue
		}
		fmt.Fprintf(s.Out, "* %s\n", user.Name)
	}
	return nil
}

// HandlerAgg fetches a feed URL once and prints the parsed channel
func HandlerAgg(ctx context.Context, s *State, cmd Command) error {
	if len(cmd.Args) == 0 {
		return errors.New("no feed URL provided")
	}
	feedURL := cmd.Args[0]

	fetched, err := s.Fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%s\n%s\n%s\n", fetched.Title, fetched.Link, fetched.Description)
	for _, item := range fetched.Items {
		fmt.Fprintf(s.Out, "- %s (%s)\n", item.Title, item.Link)
	}
	return nil
}

// HandlerAddFeed creates a feed owned by the active user and follows it on
// their behalf
func HandlerAddFeed(ctx context.Context, s *State, cmd Command, user *db.User) error {
	if len(cmd.Args) == 0 {
		return errors.New("no feed name and URL provided")
	}
	if len(cmd.Args) == 1 {
		return errors.New("no URL provided")
	}
	name, feedURL := cmd.Args[0], cmd.Args[1]

	created, err := s.DB.CreateFeed(ctx, name, feedURL, user.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "%s - %s - %s\n", user.Name, created.Name, created.URL)

	follow, err := s.DB.CreateFeedFollow(ctx, created.ID, user.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "%s is now following %s\n", follow.UserName, follow.FeedName)
	return nil
}

// HandlerFeeds lists every feed with its owner
func HandlerFeeds(ctx context.Context, s *State, _ Command) error {
	feeds, err := s.DB.GetFeedsWithUsers(ctx)
	if err != nil {
		return err
	}
	for _, f := range feeds {
		fmt.Fprintf(s.Out, "%s - %s - %s\n", f.Name, f.URL, f.UserName)
	}
	return nil
}

// HandlerFollow subscribes the active user to an existing feed by URL
func HandlerFollow(ctx context.Context, s *State, cmd Command, user *db.User) error {
	if len(cmd.Args) == 0 {
		return errors.New("no URL provided")
	}
	feedURL := cmd.Args[0]

	feed, err := s.DB.GetFeedByURL(ctx, feedURL)
	if err != nil {
		return err
	}

	follow, err := s.DB.CreateFeedFollow(ctx, feed.ID, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%s is now following %s\n", follow.UserName, follow.FeedName)
	return nil
}

// HandlerUnfollow drops the active user's follow of the feed at the given
// URL. Unfollowing a feed that is not followed succeeds quietly.
func HandlerUnfollow(ctx context.Context, s *State, cmd Command, user *db.User) error {
	if len(cmd.Args) == 0 {
		return errors.New("no URL provided")
	}
	feedURL := cmd.Args[0]

	if err := s.DB.DeleteFeedFollow(ctx, user.Name, feedURL); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%s unfollowed %s\n", user.Name, feedURL)
	return nil
}

// HandlerFollowing lists the feeds the active user follows
func HandlerFollowing(ctx context.Context, s *State, _ Command, user *db.User) error {
	follows, err := s.DB.GetFeedFollowsForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, follow := range follows {
		fmt.Fprintf(s.Out, "%s - %s - %s\n", follow.UserName, follow.FeedName, follow.FeedURL)
	}
	return nil
}
