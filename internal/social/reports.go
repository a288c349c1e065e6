package social

import (
	"context"
	"fmt"

	"threadline/internal/core"
)

func (c *Client) Report(ctx context.Context, targetUserID string, target core.TargetType, targetID, reason string) error {
	_, err := c.r(ctx).
		SetBody(map[string]string{"reason": reason}).
		Post(fmt.Sprintf("/api/reports/%s/%s/%s", targetUserID, target, targetID))
	return err
}
