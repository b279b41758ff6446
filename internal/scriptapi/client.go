// Package scriptapi calls the spreadsheet web app that owns the marketplace
// tables.
package scriptapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"go.uber.org/zap"
)

var ErrNoEndpoint = errors.New("script url is not configured")

// Client posts action requests to the script. The script host answers a
// POST with a redirect to the rendered result, which is fetched with GET.
type Client struct {
	endpoint *url.URL
	timeout  time.Duration
	log      *zap.Logger
}

func New(endpoint string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("script url: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{endpoint: u, timeout: timeout, log: log}, nil
}

func (c *Client) Call(ctx context.Context, resource envelope.Resource, req envelope.Request) (envelope.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return envelope.Envelope{}, err
	}
	target := *c.endpoint
	q := target.Query()
	q.Set("table", string(resource))
	target.RawQuery = q.Encode()

	start := time.Now()
	code, body, location, err := c.do(fiber.Post(target.String()).JSON(req))
	if err != nil {
		return envelope.Envelope{}, err
	}
	if code >= fiber.StatusMultipleChoices && code < fiber.StatusBadRequest && location != "" {
		next, err := target.Parse(location)
		if err != nil {
			return envelope.Envelope{}, fmt.Errorf("script redirect: %w", err)
		}
		code, body, _, err = c.do(fiber.Get(next.String()))
		if err != nil {
			return envelope.Envelope{}, err
		}
	}
	c.log.Debug("script call",
		zap.String("table", string(resource)),
		zap.String("action", string(req.Action)),
		zap.Int("status", code),
		zap.Duration("latency", time.Since(start)))
	return envelope.Parse(code, body)
}

func (c *Client) do(a *fiber.Agent) (int, []byte, string, error) {
	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	a.SetResponse(resp)
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return 0, nil, "", fmt.Errorf("script: %w", errors.Join(errs...))
	}
	return code, body, string(resp.Header.Peek(fiber.HeaderLocation)), nil
}
