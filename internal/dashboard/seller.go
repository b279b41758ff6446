package dashboard

import (
	"context"
	"fmt"

	"github.com/wichananm65/upj-marketplace/internal/form"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/market"
	"github.com/wichananm65/upj-marketplace/internal/record"
	"github.com/wichananm65/upj-marketplace/internal/view"
)

type Seller struct {
	client *market.Client
	owns   identity.Matcher
}

func NewSeller(client *market.Client, owns identity.Matcher) *Seller {
	if owns == nil {
		owns = identity.Exact
	}
	return &Seller{client: client, owns: owns}
}

// Overview is the seller's own listings, incoming orders and figures.
type Overview struct {
	Products []record.Product
	Orders   []view.Line
	Stats    view.SellerStats
}

func (s *Seller) Overview(ctx context.Context) (Overview, error) {
	products, err := s.client.Products(ctx)
	if err != nil {
		return Overview{}, err
	}
	orders, err := s.client.Orders(ctx)
	if err != nil {
		return Overview{}, err
	}
	email := s.client.Session().Email()
	own := view.Owned(products, email, s.owns)
	incoming := view.SellerOrders(orders, email, s.owns)
	return Overview{
		Products: own,
		Orders:   view.NewIndex(products).Lines(incoming),
		Stats:    view.Stats(own, incoming),
	}, nil
}

// Product returns one of the seller's own listings.
func (s *Seller) Product(ctx context.Context, productID string) (record.Product, error) {
	products, err := s.client.Products(ctx)
	if err != nil {
		return record.Product{}, err
	}
	p, ok := view.NewIndex(products).Resolve(productID)
	if !ok {
		return record.Product{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if !s.owns(p.Owner, s.client.Session().Email()) {
		return record.Product{}, fmt.Errorf("product %s: %w", productID, ErrForbidden)
	}
	return p, nil
}

func (s *Seller) CreateProduct(ctx context.Context, f form.ProductForm) error {
	return s.client.CreateProduct(ctx, f)
}

func (s *Seller) UpdateProduct(ctx context.Context, productID string, f form.ProductForm) error {
	if _, err := s.Product(ctx, productID); err != nil {
		return err
	}
	return s.client.UpdateProduct(ctx, productID, f)
}

func (s *Seller) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := s.Product(ctx, productID); err != nil {
		return err
	}
	return s.client.DeleteProduct(ctx, productID)
}

func (s *Seller) Confirm(ctx context.Context, orderID string) error {
	return s.process(ctx, orderID, record.OrderConfirmed)
}

func (s *Seller) Reject(ctx context.Context, orderID string) error {
	return s.process(ctx, orderID, record.OrderRejected)
}

// process only forwards requests for pending orders addressed to the
// signed-in seller.
func (s *Seller) process(ctx context.Context, orderID string, to record.OrderStatus) error {
	orders, err := s.client.Orders(ctx)
	if err != nil {
		return err
	}
	email := s.client.Session().Email()
	for _, o := range orders {
		if o.ID != orderID {
			continue
		}
		if !s.owns(o.Seller, email) {
			return fmt.Errorf("order %s: %w", orderID, ErrForbidden)
		}
		if !record.CanTransition(o.Status, to) {
			return fmt.Errorf("order %s %s -> %s: %w", orderID, o.Status, to, record.ErrInvalidTransition)
		}
		return s.client.ProcessOrder(ctx, orderID, to)
	}
	return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
}
