package cmd

import (
	"context"
	"fmt"

	"threadline/internal/cmd/flags"
	"threadline/internal/config"
	"threadline/internal/core"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var feedCmd = &cli.Command{
	Name:  "feed",
	Usage: "List recent posts",
	Flags: []cli.Flag{
		flags.Limit,
		flags.Offset,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&feedScreen{}))
	},
}

type feedScreen struct {
	API    core.API
	Config *config.Config
}

func (s *feedScreen) Run(ctx context.Context) error {
	posts, err := s.API.Feed(ctx, s.Config.Limit, s.Config.Offset)
	if err != nil {
		notify(err)
		return nil
	}

	for _, post := range posts {
		liked := " "
		if post.Liked {
			liked = "*"
		}
		fmt.Printf("%s %s  %s: %s  (%d comments, %d likes)\n",
			liked, post.ID, post.Author.Name, firstLine(post.Content), post.CommentsCount, post.LikesCount)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + "…"
		}
		if i > 80 {
			return s[:i] + "…"
		}
	}
	return s
}
