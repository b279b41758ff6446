package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/session"
)

// RelayTransport calls the relay's /api routes over HTTP, sending the
// session token on data routes.
type RelayTransport struct {
	baseURL string
	session *session.Session
	timeout time.Duration
}

func NewRelayTransport(baseURL string, sess *session.Session, timeout time.Duration) *RelayTransport {
	return &RelayTransport{baseURL: baseURL, session: sess, timeout: timeout}
}

// Route is the relay path serving resource and action.
func Route(resource envelope.Resource, action envelope.Action) string {
	if resource == envelope.Auth {
		return "/api/auth/" + string(action)
	}
	return "/api/" + string(resource)
}

func (t *RelayTransport) Call(ctx context.Context, resource envelope.Resource, req envelope.Request) (envelope.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return envelope.Envelope{}, err
	}
	a := fiber.Post(t.baseURL + Route(resource, req.Action))
	a.JSON(req)
	if t.timeout > 0 {
		a.Timeout(t.timeout)
	}
	if tok := t.session.Token(); tok != "" && resource != envelope.Auth {
		a.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return envelope.Envelope{}, fmt.Errorf("relay: %w", errors.Join(errs...))
	}
	return envelope.Parse(code, body)
}
