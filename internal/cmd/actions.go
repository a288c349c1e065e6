package cmd

import (
	"context"
	"errors"
	"fmt"

	"threadline/internal/core"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var (
	ErrPostIDRequired = errors.New("a post id argument is required")
	ErrBadReportArgs  = errors.New("usage: report <userID> <post|comment> <targetID> <reason>")
)

var likeCmd = &cli.Command{
	Name:      "like",
	Usage:     "Like a post",
	ArgsUsage: "<postID>",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		if postID == "" {
			return ErrPostIDRequired
		}
		return run(ctx, c, pal.Provide(&likeScreen{postID: postID}))
	},
}

var unlikeCmd = &cli.Command{
	Name:      "unlike",
	Usage:     "Remove a like from a post",
	ArgsUsage: "<postID>",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		if postID == "" {
			return ErrPostIDRequired
		}
		return run(ctx, c, pal.Provide(&likeScreen{postID: postID, unlike: true}))
	},
}

var reportCmd = &cli.Command{
	Name:      "report",
	Usage:     "Report a post or comment",
	ArgsUsage: "<userID> <post|comment> <targetID> <reason>",
	Action: func(ctx context.Context, c *cli.Command) error {
		args := c.Args().Slice()
		if len(args) < 4 {
			return ErrBadReportArgs
		}

		target := core.TargetType(args[1])
		if target != core.TargetPost && target != core.TargetComment {
			return ErrBadReportArgs
		}

		return run(ctx, c, pal.Provide(&reportScreen{
			targetUserID: args[0],
			target:       target,
			targetID:     args[2],
			reason:       args[3],
		}))
	},
}

type likeScreen struct {
	API core.API

	postID string
	unlike bool
}

func (s *likeScreen) Run(ctx context.Context) error {
	var err error
	if s.unlike {
		err = s.API.UnlikePost(ctx, s.postID)
	} else {
		err = s.API.LikePost(ctx, s.postID)
	}
	if err != nil {
		notify(err)
		return nil
	}

	fmt.Println("done")
	return nil
}

type reportScreen struct {
	API      core.API
	Sessions core.SessionStore

	targetUserID string
	target       core.TargetType
	targetID     string
	reason       string
}

func (s *reportScreen) Run(ctx context.Context) error {
	session, ok := s.Sessions.Current()
	if !ok {
		notify(core.ErrNotAuthenticated)
		return nil
	}
	// Self-reports never reach the network.
	if session.User.ID == s.targetUserID {
		notify(core.ErrSelfReport)
		return nil
	}

	if err := s.API.Report(ctx, s.targetUserID, s.target, s.targetID, s.reason); err != nil {
		notify(err)
		return nil
	}

	fmt.Println("report submitted")
	return nil
}
