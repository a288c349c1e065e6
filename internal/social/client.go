package social

import (
	"context"
	"encoding/json"

	"threadline/internal/core"

	"github.com/google/uuid"
	"resty.dev/v3"
)

// Client is the typed boundary to the collaborator REST API. Envelope
// unwrapping, bearer auth and status-code mapping all happen here, so the
// rest of the code sees exactly one contract.
type Client struct {
	Config   *core.Config
	Sessions core.SessionStore

	client *resty.Client
}

func (c *Client) Init(_ context.Context) error {
	c.client = resty.NewWithTransportSettings(DefaultConfig.TransportSettings)
	c.client.SetBaseURL(c.Config.APIURL)
	c.client.SetTimeout(c.Config.RequestTimeout)

	c.client.AddRequestMiddleware(c.authMiddleware)
	c.client.AddResponseMiddleware(errorMiddleware)

	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// authMiddleware short-circuits every call when no token is cached: the
// caller gets a "please log in" error without a network round trip.
func (c *Client) authMiddleware(_ *resty.Client, req *resty.Request) error {
	token := c.Sessions.Token()
	if token == "" {
		return core.ErrNotAuthenticated
	}

	req.SetAuthToken(token)
	req.SetHeader("X-Request-ID", uuid.NewString())
	return nil
}

// errorMiddleware turns HTTP rejections into the error taxonomy. The server
// message, when present, is carried through verbatim.
func errorMiddleware(_ *resty.Client, res *resty.Response) error {
	if res.StatusCode() < 400 {
		return nil
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(res.Bytes(), &body)

	message := body.Message
	if message == "" {
		message = body.Error
	}

	var sentinel error
	switch res.StatusCode() {
	case 401:
		sentinel = core.ErrNotAuthenticated
	case 403:
		sentinel = core.ErrForbidden
	case 404:
		sentinel = core.ErrNotFound
	case 409:
		sentinel = core.ErrDuplicate
	}

	return core.NewAPIError(res.StatusCode(), message, sentinel)
}
