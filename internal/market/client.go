// Package market is the client data layer: it reads and writes products and
// orders through a backend caller, caches reads per signed-in user, and
// invalidates them after successful writes.
package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/form"
	"github.com/wichananm65/upj-marketplace/internal/query"
	"github.com/wichananm65/upj-marketplace/internal/record"
	"github.com/wichananm65/upj-marketplace/internal/session"
	"go.uber.org/zap"
)

var (
	ErrNoSession = errors.New("not signed in")
	// ErrStatusNotAllowed is returned for order status targets a seller
	// cannot request.
	ErrStatusNotAllowed = errors.New("order status cannot be requested by a seller")
)

type Client struct {
	caller  envelope.Caller
	session *session.Session
	cache   *query.Cache
	log     *zap.Logger
	now     func() time.Time
}

func New(caller envelope.Caller, sess *session.Session, cache *query.Cache, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		caller:  caller,
		session: sess,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) key(email string, resource envelope.Resource) query.Key {
	return query.Scoped(email, string(resource))
}

// call performs one backend action and turns failure envelopes into errors.
func (c *Client) call(ctx context.Context, resource envelope.Resource, req envelope.Request) (envelope.Envelope, error) {
	env, err := c.caller.Call(ctx, resource, req)
	if err != nil {
		c.log.Warn("backend call failed",
			zap.String("resource", string(resource)),
			zap.String("action", string(req.Action)),
			zap.Error(err))
		return envelope.Envelope{}, fmt.Errorf("%s %s: %w", req.Action, resource, err)
	}
	if err := env.Err(); err != nil {
		c.log.Info("backend rejected request",
			zap.String("resource", string(resource)),
			zap.String("action", string(req.Action)),
			zap.String("error", env.Error))
		return env, err
	}
	return env, nil
}

func (c *Client) requireEmail() (string, error) {
	email := c.session.Email()
	if email == "" {
		return "", ErrNoSession
	}
	return email, nil
}

func (c *Client) read(ctx context.Context, resource envelope.Resource) ([]byte, bool, error) {
	email := c.session.Email()
	if email == "" {
		return nil, false, nil
	}
	b, err := c.cache.Read(ctx, c.key(email, resource), func(ctx context.Context) ([]byte, error) {
		env, err := c.call(ctx, resource, envelope.Request{Email: email, Action: envelope.ActionRead})
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	})
	return b, true, err
}

// Products returns every product record. Without a session it returns an
// empty list and makes no call.
func (c *Client) Products(ctx context.Context) ([]record.Product, error) {
	b, ok, err := c.read(ctx, envelope.Products)
	if err != nil || !ok {
		return []record.Product{}, err
	}
	products, err := record.DecodeProducts(b)
	if err != nil {
		return []record.Product{}, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Orders returns every order record visible to the signed-in user.
func (c *Client) Orders(ctx context.Context) ([]record.Order, error) {
	b, ok, err := c.read(ctx, envelope.Orders)
	if err != nil || !ok {
		return []record.Order{}, err
	}
	orders, err := record.DecodeOrders(b)
	if err != nil {
		return []record.Order{}, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (c *Client) write(ctx context.Context, resource envelope.Resource, req envelope.Request, invalidate ...envelope.Resource) error {
	keys := make([]query.Key, 0, len(invalidate))
	for _, r := range invalidate {
		keys = append(keys, c.key(req.Email, r))
	}
	return c.cache.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.call(ctx, resource, req)
		return err
	}, keys...)
}

func (c *Client) CreateProduct(ctx context.Context, f form.ProductForm) error {
	email, err := c.requireEmail()
	if err != nil {
		return err
	}
	req, err := f.CreateRequest(email)
	if err != nil {
		return err
	}
	return c.write(ctx, envelope.Products, req, envelope.Products)
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, f form.ProductForm) error {
	email, err := c.requireEmail()
	if err != nil {
		return err
	}
	req, err := f.UpdateRequest(email, productID)
	if err != nil {
		return err
	}
	return c.write(ctx, envelope.Products, req, envelope.Products)
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	email, err := c.requireEmail()
	if err != nil {
		return err
	}
	return c.write(ctx, envelope.Products, form.DeleteRequest(email, productID), envelope.Products)
}

// PlaceOrder submits an order. Both keys are invalidated because the backend
// decrements the product's stock.
func (c *Client) PlaceOrder(ctx context.Context, f form.OrderForm) error {
	email, err := c.requireEmail()
	if err != nil {
		return err
	}
	req, err := f.Request(email)
	if err != nil {
		return err
	}
	return c.write(ctx, envelope.Orders, req, envelope.Orders, envelope.Products)
}

// ProcessOrder asks the backend to move a pending order to confirmed or
// rejected.
func (c *Client) ProcessOrder(ctx context.Context, orderID string, status record.OrderStatus) error {
	email, err := c.requireEmail()
	if err != nil {
		return err
	}
	if !record.CanTransition(record.OrderPending, status) {
		return fmt.Errorf("%w: %s", ErrStatusNotAllowed, status)
	}
	return c.write(ctx, envelope.Orders, form.StatusRequest(email, orderID, status), envelope.Orders)
}

// Refresh drops the signed-in user's cached reads so the next read refetches
// them. Writes by other users are only seen after a refresh.
func (c *Client) Refresh(ctx context.Context) error {
	email := c.session.Email()
	if email == "" {
		return nil
	}
	return c.cache.Invalidate(ctx, c.key(email, envelope.Products), c.key(email, envelope.Orders))
}
