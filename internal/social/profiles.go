package social

import (
	"context"
	"fmt"

	"threadline/internal/core"
)

func (c *Client) Me(ctx context.Context) (core.Author, error) {
	res, err := c.r(ctx).
		Get("/api/profile/me")
	if err != nil {
		return core.Author{}, err
	}

	return decodeOne[core.Author](res.Bytes())
}

func (c *Client) Profile(ctx context.Context, userID string) (core.Profile, error) {
	res, err := c.r(ctx).
		Get(fmt.Sprintf("/api/profiles/%s", userID))
	if err != nil {
		return core.Profile{}, err
	}

	return decodeOne[core.Profile](res.Bytes())
}
