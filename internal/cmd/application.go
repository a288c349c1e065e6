package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"threadline/internal/cmd/flags"
	"threadline/internal/config"
	"threadline/internal/core"
	"threadline/internal/session"
	"threadline/internal/social"
	"threadline/internal/thread"
	"threadline/pkg/clicfg"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "threadline",
	Usage:   "Terminal client for the social network API, built around comment threads",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
	},
	Commands: []*cli.Command{
		loginCmd,
		logoutCmd,
		whoamiCmd,
		feedCmd,
		profileCmd,
		threadCmd,
		likeCmd,
		unlikeCmd,
		reportCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run assembles the service container every screen shares: config, session
// store, API client and the thread synchronizer service.
func run(ctx context.Context, c *cli.Command, services ...pal.ServiceDef) error {
	cfg := config.Config{}
	if err := clicfg.ParseFlags(c, &cfg); err != nil {
		return err
	}

	services = append(services,
		pal.Provide(&cfg),
		pal.Provide(&core.Config{}),
		pal.Provide[core.SessionStore](&session.Store{}),
		pal.Provide[core.API](&social.Client{}),
		pal.Provide(&thread.Service{}),
	)

	return pal.New(services...).
		InjectSlog().
		InitTimeout(2*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}
