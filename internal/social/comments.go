package social

import (
	"context"
	"fmt"
	"strconv"

	"threadline/internal/core"
)

func commentsPath(kind core.EntityKind, entityID string) string {
	return fmt.Sprintf("/api/%s-comments/%s", kind, entityID)
}

func (c *Client) ListComments(ctx context.Context, kind core.EntityKind, entityID string, limit, offset int) (core.CommentPage, error) {
	res, err := c.r(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("offset", strconv.Itoa(offset)).
		Get(commentsPath(kind, entityID))
	if err != nil {
		return core.CommentPage{}, err
	}

	return decodeComments(res.Bytes())
}

func (c *Client) ListReplies(ctx context.Context, commentID string, limit int) ([]core.Reply, error) {
	res, err := c.r(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get(fmt.Sprintf("/api/comments/%s/replies", commentID))
	if err != nil {
		return nil, err
	}

	return decodeReplies(res.Bytes())
}

func (c *Client) CreateComment(ctx context.Context, kind core.EntityKind, entityID, content string) (core.Comment, error) {
	res, err := c.r(ctx).
		SetBody(map[string]string{"content": content}).
		Post(commentsPath(kind, entityID))
	if err != nil {
		return core.Comment{}, err
	}

	return decodeOne[core.Comment](res.Bytes())
}

func (c *Client) CreateReply(ctx context.Context, commentID, content string, replyTo *core.Author) (core.Reply, error) {
	body := map[string]any{"content": content}
	if replyTo != nil {
		body["replyTo"] = replyTo.ID
	}

	res, err := c.r(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/api/comments/%s/replies", commentID))
	if err != nil {
		return core.Reply{}, err
	}

	return decodeOne[core.Reply](res.Bytes())
}

// UpdateComment covers replies too, the API exposes a single endpoint.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) error {
	_, err := c.r(ctx).
		SetBody(map[string]string{"content": content}).
		Put(fmt.Sprintf("/api/comments/%s", commentID))
	return err
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	_, err := c.r(ctx).
		Delete(fmt.Sprintf("/api/comments/%s", commentID))
	return err
}
