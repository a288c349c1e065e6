package flags

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "warn",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var Token = &cli.StringFlag{
	Name:    "token",
	Aliases: []string{"t"},
	Usage:   "Bearer token issued by the API",
	Sources: cli.EnvVars("THREADLINE_TOKEN"),
}

var Limit = &cli.IntFlag{
	Name:  "limit",
	Usage: "Page size",
	Value: 20,
}

var Offset = &cli.IntFlag{
	Name:  "offset",
	Usage: "Page offset",
	Value: 0,
}

var Dump = &cli.BoolFlag{
	Name:  "dump",
	Usage: "Pretty-print the loaded tree and exit",
}

var Yes = &cli.BoolFlag{
	Name:    "yes",
	Aliases: []string{"y"},
	Usage:   "Skip confirmation prompts",
}
