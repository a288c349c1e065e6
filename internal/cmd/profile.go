package cmd

import (
	"context"
	"errors"
	"fmt"

	"threadline/internal/core"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var ErrUserIDRequired = errors.New("a user id argument is required")

var profileCmd = &cli.Command{
	Name:      "profile",
	Usage:     "Show a user profile",
	ArgsUsage: "<userID>",
	Action: func(ctx context.Context, c *cli.Command) error {
		userID := c.Args().First()
		if userID == "" {
			return ErrUserIDRequired
		}
		return run(ctx, c, pal.Provide(&profileScreen{userID: userID}))
	},
}

type profileScreen struct {
	API core.API

	userID string
}

func (s *profileScreen) Run(ctx context.Context) error {
	profile, err := s.API.Profile(ctx, s.userID)
	if err != nil {
		notify(err)
		return nil
	}

	fmt.Printf("%s (%s)\n", profile.Name, profile.ID)
	if profile.Headline != "" {
		fmt.Println(profile.Headline)
	}
	fmt.Printf("member since %s\n", profile.CreatedAt.Format("2006-01-02"))
	return nil
}
