package cmd

import (
	"context"
	"errors"
	"fmt"

	"threadline/internal/cmd/flags"
	"threadline/internal/core"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var ErrTokenRequired = errors.New("a token is required, pass --token or set THREADLINE_TOKEN")

var loginCmd = &cli.Command{
	Name:  "login",
	Usage: "Store a bearer token and the profile it belongs to",
	Flags: []cli.Flag{
		flags.Token,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&loginScreen{token: c.String("token")}))
	},
}

var logoutCmd = &cli.Command{
	Name:  "logout",
	Usage: "Drop the stored session",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&logoutScreen{}))
	},
}

var whoamiCmd = &cli.Command{
	Name:  "whoami",
	Usage: "Show the stored session",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&whoamiScreen{}))
	},
}

type loginScreen struct {
	API      core.API
	Sessions core.SessionStore

	token string
}

// Run stores the token, then validates it by fetching the profile it belongs
// to. An invalid token is dropped again so later calls short-circuit into
// the "please log in" path instead of hitting the API with garbage.
func (s *loginScreen) Run(ctx context.Context) error {
	if s.token == "" {
		return ErrTokenRequired
	}

	if err := s.Sessions.Save(core.Session{Token: s.token}); err != nil {
		return err
	}

	me, err := s.API.Me(ctx)
	if err != nil {
		_ = s.Sessions.Clear()
		return fmt.Errorf("token rejected: %w", err)
	}

	if err := s.Sessions.Save(core.Session{User: me, Token: s.token}); err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s)\n", me.Name, me.ID)
	return nil
}

type logoutScreen struct {
	Sessions core.SessionStore
}

func (s *logoutScreen) Run(_ context.Context) error {
	if err := s.Sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

type whoamiScreen struct {
	Sessions core.SessionStore
}

func (s *whoamiScreen) Run(_ context.Context) error {
	session, ok := s.Sessions.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", session.User.Name, session.User.ID)
	return nil
}
