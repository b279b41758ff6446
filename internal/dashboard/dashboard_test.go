package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/market"
	"github.com/wichananm65/upj-marketplace/internal/query"
	"github.com/wichananm65/upj-marketplace/internal/record"
	"github.com/wichananm65/upj-marketplace/internal/session"
	"github.com/wichananm65/upj-marketplace/internal/view"
)

type backend struct {
	products []record.Product
	orders   []record.Order
	writes   []envelope.Request
}

func (b *backend) Call(_ context.Context, resource envelope.Resource, req envelope.Request) (envelope.Envelope, error) {
	if req.Action != envelope.ActionRead {
		b.writes = append(b.writes, req)
		return envelope.OK(nil)
	}
	var rows [][]any
	switch resource {
	case envelope.Products:
		for _, p := range b.products {
			rows = append(rows, p.Record())
		}
	case envelope.Orders:
		for _, o := range b.orders {
			rows = append(rows, o.Record())
		}
	}
	return envelope.OK(rows)
}

func newClient(b *backend, email string) *market.Client {
	sess := session.New()
	sess.Login(session.User{UserID: email, Email: email}, "")
	return market.New(b, sess, query.New(query.NewMemoryStore()), nil)
}

func fixture() *backend {
	return &backend{
		products: []record.Product{
			{ID: "p1", Owner: "s@x.com", Name: "Nasi Kuning", Price: 20000, Stock: 4, Category: "Nasi Kotak", Status: record.StatusActive},
			{ID: "p2", Owner: "b@x.com", Name: "Kue Lapis", Price: 3000, Stock: 9, Category: "Kue & Dessert", Status: record.StatusActive},
			{ID: "p3", Owner: "s@x.com", Name: "Es Teh", Price: 5000, Stock: 0, Category: "Minuman", Status: record.StatusInactive},
		},
		orders: []record.Order{
			{ID: "o1", Buyer: "b@x.com", Seller: "s@x.com", ProductID: "p1", Quantity: 2, TotalPrice: 40000, Status: record.OrderPending},
			{ID: "o2", Buyer: "b@x.com", Seller: "s@x.com", ProductID: "gone", Quantity: 1, TotalPrice: 1000, Status: record.OrderConfirmed},
		},
	}
}

func TestBuyerCatalog_ExcludesOwnAndInactive(t *testing.T) {
	buyer := NewBuyer(newClient(fixture(), "b@x.com"), nil)

	c, err := buyer.Catalog(context.Background(), view.CatalogFilter{Category: "Minuman"})
	require.NoError(t, err)
	assert.Empty(t, c.Products)
	assert.Equal(t, 1, c.Available)
	assert.Equal(t, []string{"Kue & Dessert", "Minuman", "Nasi Kotak"}, c.Categories)
}

func TestBuyerOrders_ResolvesProducts(t *testing.T) {
	buyer := NewBuyer(newClient(fixture(), "b@x.com"), nil)

	lines, err := buyer.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Nasi Kuning", lines[0].ProductName())
	assert.Equal(t, view.ProductNotFound, lines[1].ProductName())
}

func TestBuyerOrder(t *testing.T) {
	b := fixture()
	buyer := NewBuyer(newClient(b, "b@x.com"), nil)

	assert.ErrorIs(t, buyer.Order(context.Background(), "missing", 1), ErrNotFound)
	assert.Error(t, buyer.Order(context.Background(), "p1", 5), "exceeds stock")
	assert.Empty(t, b.writes)

	require.NoError(t, buyer.Order(context.Background(), "p1", 2))
	require.Len(t, b.writes, 1)
	assert.Equal(t, envelope.ActionCreate, b.writes[0].Action)
}

func TestSellerOverview(t *testing.T) {
	seller := NewSeller(newClient(fixture(), "s@x.com"), nil)

	o, err := seller.Overview(context.Background())
	require.NoError(t, err)
	assert.Len(t, o.Products, 2)
	assert.Len(t, o.Orders, 2)
	assert.Equal(t, 2, o.Stats.TotalProducts)
	assert.Equal(t, 1, o.Stats.ActiveProducts)
	assert.Equal(t, 1, o.Stats.PendingOrders)
}

func TestSellerProcess(t *testing.T) {
	b := fixture()
	seller := NewSeller(newClient(b, "s@x.com"), nil)
	ctx := context.Background()

	assert.ErrorIs(t, seller.Confirm(ctx, "o2"), record.ErrInvalidTransition)
	assert.ErrorIs(t, seller.Reject(ctx, "nope"), ErrNotFound)
	assert.Empty(t, b.writes)

	require.NoError(t, seller.Confirm(ctx, "o1"))
	require.Len(t, b.writes, 1)
	assert.Equal(t, "o1", b.writes[0].OrderID)
	assert.Equal(t, string(record.OrderConfirmed), b.writes[0].OrderStatus)
}

func TestSellerForbidden(t *testing.T) {
	b := fixture()
	other := NewSeller(newClient(b, "o@x.com"), nil)
	ctx := context.Background()

	assert.ErrorIs(t, other.Confirm(ctx, "o1"), ErrForbidden)
	assert.ErrorIs(t, other.DeleteProduct(ctx, "p1"), ErrForbidden)
	assert.Empty(t, b.writes)
}
