package config

// Config carries the CLI flag values shared across screens. Environment
// configuration (API URL, session path) lives in core.Config.
type Config struct {
	LogLevel string `flag:"log-level"`
	Limit    int    `flag:"limit"`
	Offset   int    `flag:"offset"`
	Dump     bool   `flag:"dump"`
	Yes      bool   `flag:"yes"`
}
