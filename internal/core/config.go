package core

import (
	"context"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Base URL of the collaborator REST API.
	APIURL string `envconfig:"API_URL" default:"http://localhost:8080"`

	// Path of the session file. Empty means the user config dir.
	SessionPath string `envconfig:"SESSION_PATH"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// Page size for comment and feed listings.
	PageSize int `envconfig:"PAGE_SIZE" default:"20"`
}

func (c *Config) Init(_ context.Context) error {
	return envconfig.Process("threadline", c)
}
