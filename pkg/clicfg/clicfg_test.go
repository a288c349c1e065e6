package clicfg_test

import (
	"context"
	"errors"
	"testing"

	"threadline/pkg/clicfg"

	"github.com/urfave/cli/v3"
)

type flagConfig struct {
	Name    string `flag:"name"`
	Count   int    `flag:"count"`
	Verbose bool   `flag:"verbose"`
	Skipped string
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	var got flagConfig

	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.IntFlag{Name: "count"},
			&cli.BoolFlag{Name: "verbose"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, &got)
		},
	}

	err := cmd.Run(t.Context(), []string{"test", "--name", "alice", "--count", "3", "--verbose"})
	if err != nil {
		t.Fatal(err)
	}

	if got.Name != "alice" || got.Count != 3 || !got.Verbose {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.Skipped != "" {
		t.Fatalf("untagged field was set: %q", got.Skipped)
	}
}

func TestParseFlagsRejectsNonPointer(t *testing.T) {
	t.Parallel()

	err := clicfg.ParseFlags(&cli.Command{}, flagConfig{})
	if !errors.Is(err, clicfg.ErrCannotParseFlags) {
		t.Fatalf("expected ErrCannotParseFlags, got %v", err)
	}
}
