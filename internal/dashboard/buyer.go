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

type Buyer struct {
	client *market.Client
	owns   identity.Matcher
}

func NewBuyer(client *market.Client, owns identity.Matcher) *Buyer {
	if owns == nil {
		owns = identity.Exact
	}
	return &Buyer{client: client, owns: owns}
}

// Catalog is the buyer's product listing.
type Catalog struct {
	Products   []record.Product
	Categories []string
	// Available counts listings before search and category filters.
	Available int
}

func (b *Buyer) Catalog(ctx context.Context, f view.CatalogFilter) (Catalog, error) {
	products, err := b.client.Products(ctx)
	if err != nil {
		return Catalog{}, err
	}
	email := b.client.Session().Email()
	listed := view.BuyerCatalog(products, f, email, b.owns)
	for i := range listed {
		listed[i].ImageURL = record.ThumbnailURL(listed[i].ImageURL)
	}
	return Catalog{
		Products:   listed,
		Categories: view.Categories(products),
		Available:  len(view.BuyerCatalog(products, view.CatalogFilter{}, email, b.owns)),
	}, nil
}

// Orders lists the buyer's own orders with their products resolved.
func (b *Buyer) Orders(ctx context.Context) ([]view.Line, error) {
	orders, err := b.client.Orders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := b.client.Products(ctx)
	if err != nil {
		return nil, err
	}
	mine := view.BuyerOrders(orders, b.client.Session().Email(), b.owns)
	return view.NewIndex(products).Lines(mine), nil
}

// Order places an order for quantity units of productID.
func (b *Buyer) Order(ctx context.Context, productID string, quantity int) error {
	products, err := b.client.Products(ctx)
	if err != nil {
		return err
	}
	p, ok := view.NewIndex(products).Resolve(productID)
	if !ok {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	f := form.NewOrderForm(p)
	f.Quantity = quantity
	return b.client.PlaceOrder(ctx, f)
}
