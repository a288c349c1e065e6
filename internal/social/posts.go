package social

import (
	"context"
	"fmt"
	"strconv"

	"threadline/internal/core"
)

func (c *Client) Feed(ctx context.Context, limit, offset int) ([]core.Post, error) {
	res, err := c.r(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("offset", strconv.Itoa(offset)).
		Get("/api/posts")
	if err != nil {
		return nil, err
	}

	return decodeOne[[]core.Post](res.Bytes())
}

func (c *Client) LikePost(ctx context.Context, postID string) error {
	_, err := c.r(ctx).
		Post(fmt.Sprintf("/api/post-actions/%s/like", postID))
	return err
}

func (c *Client) UnlikePost(ctx context.Context, postID string) error {
	_, err := c.r(ctx).
		Delete(fmt.Sprintf("/api/post-actions/%s/like", postID))
	return err
}
