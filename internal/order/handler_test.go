package order

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/product"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

type fixture struct {
	handler  *Handler
	products *product.InMemoryRepository
}

func setup() fixture {
	products := product.NewInMemoryRepository([]record.Product{
		{ID: "p1", Owner: "legacy-s", Name: "Lemper", Price: 4000, Stock: 5, Category: "Snack Box", Status: record.StatusActive},
		{ID: "p2", Owner: "s@x.com", Name: "Es Teh", Price: 5000, Stock: 5, Category: "Minuman", Status: record.StatusInactive},
	})
	svc := NewService(NewInMemoryRepository(nil), products, identity.Aliases{"s@x.com": {"legacy-s"}}, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return fixture{handler: NewHandler(svc), products: products}
}

func place(t *testing.T, h *Handler, buyer string, data envelope.OrderData) envelope.Envelope {
	t.Helper()
	req, err := envelope.Request{Email: buyer, Action: envelope.ActionCreate}.WithData(data)
	require.NoError(t, err)
	env, err := h.Handle(req)
	require.NoError(t, err)
	return env
}

func TestCreateOrder_SnapshotsTotalAndReservesStock(t *testing.T) {
	f := setup()

	env := place(t, f.handler, "b@x.com", envelope.OrderData{ProductID: "p1", SellerID: "legacy-s", Quantity: 3, TotalPrice: 1})
	require.True(t, env.Success, env.Error)

	var fields []any
	require.NoError(t, env.Decode(&fields))
	o := record.DecodeOrder(fields)
	assert.Equal(t, "b@x.com", o.Buyer)
	assert.Equal(t, "legacy-s", o.Seller)
	assert.Equal(t, 12000.0, o.TotalPrice)
	assert.Equal(t, record.OrderPending, o.Status)
	assert.Equal(t, "2024-06-01T12:00:00Z", fields[7])

	p, err := f.products.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

func TestCreateOrder_Rejections(t *testing.T) {
	f := setup()

	cases := []struct {
		buyer string
		data  envelope.OrderData
		want  string
	}{
		{"b@x.com", envelope.OrderData{ProductID: "p1", Quantity: 0}, "Jumlah minimal 1"},
		{"b@x.com", envelope.OrderData{ProductID: "nope", Quantity: 1}, "Produk tidak ditemukan"},
		{"b@x.com", envelope.OrderData{ProductID: "p2", Quantity: 1}, "Produk tidak tersedia"},
		{"s@x.com", envelope.OrderData{ProductID: "p1", Quantity: 1}, "Tidak dapat memesan produk sendiri"},
		{"b@x.com", envelope.OrderData{ProductID: "p1", SellerID: "x@x.com", Quantity: 1}, "Penjual tidak sesuai dengan produk"},
		{"b@x.com", envelope.OrderData{ProductID: "p1", Quantity: 6}, "Stok tidak mencukupi"},
	}
	for _, tc := range cases {
		env := place(t, f.handler, tc.buyer, tc.data)
		assert.False(t, env.Success)
		assert.Equal(t, tc.want, env.Error)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := setup()
	env := place(t, f.handler, "b@x.com", envelope.OrderData{ProductID: "p1", Quantity: 2})
	require.True(t, env.Success)
	var fields []any
	require.NoError(t, env.Decode(&fields))
	id := record.DecodeOrder(fields).ID

	update := func(actor, status string) envelope.Envelope {
		env, err := f.handler.Handle(envelope.Request{Email: actor, Action: envelope.ActionUpdate, OrderID: id, OrderStatus: status})
		require.NoError(t, err)
		return env
	}

	assert.Equal(t, "Pesanan bukan untuk Anda", update("b@x.com", "confirmed").Error)
	assert.Equal(t, "Status pesanan tidak dapat diubah", update("s@x.com", "completed").Error)

	env = update("s@x.com", "rejected")
	require.True(t, env.Success, env.Error)
	assert.Equal(t, "Status pesanan tidak dapat diubah", update("s@x.com", "confirmed").Error)

	p, err := f.products.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock, "rejection returns stock")
}

func TestListForBuyerAndSeller(t *testing.T) {
	f := setup()
	require.True(t, place(t, f.handler, "b@x.com", envelope.OrderData{ProductID: "p1", Quantity: 1}).Success)

	for _, who := range []string{"b@x.com", "s@x.com"} {
		env, err := f.handler.Handle(envelope.Request{Email: who, Action: envelope.ActionRead})
		require.NoError(t, err)
		orders, err := record.DecodeOrders(env.Data)
		require.NoError(t, err)
		assert.Len(t, orders, 1, who)
	}

	env, err := f.handler.Handle(envelope.Request{Email: "other@x.com", Action: envelope.ActionRead})
	require.NoError(t, err)
	orders, err := record.DecodeOrders(env.Data)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// barrierRepository holds every GetByID until n callers have read the order.
type barrierRepository struct {
	*InMemoryRepository
	wg *sync.WaitGroup
}

func (r barrierRepository) GetByID(id string) (record.Order, error) {
	o, err := r.InMemoryRepository.GetByID(id)
	r.wg.Done()
	r.wg.Wait()
	return o, err
}

func TestUpdateStatus_ConcurrentDecisionsOnlyOneLands(t *testing.T) {
	products := product.NewInMemoryRepository([]record.Product{
		{ID: "p1", Owner: "s@x.com", Name: "Lemper", Price: 4000, Stock: 3, Status: record.StatusActive},
	})
	orders := NewInMemoryRepository([]record.Order{
		{ID: "o1", Buyer: "b@x.com", Seller: "s@x.com", ProductID: "p1", Quantity: 2, TotalPrice: 8000, Status: record.OrderPending},
	})
	var wg sync.WaitGroup
	wg.Add(2)
	svc := NewService(barrierRepository{InMemoryRepository: orders, wg: &wg}, products, nil, nil)

	errs := make([]error, 2)
	var done sync.WaitGroup
	for i, to := range []record.OrderStatus{record.OrderRejected, record.OrderConfirmed} {
		done.Add(1)
		go func(i int, to record.OrderStatus) {
			defer done.Done()
			_, errs[i] = svc.UpdateStatus("s@x.com", "o1", to)
		}(i, to)
	}
	done.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, record.ErrInvalidTransition)
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	o, err := orders.GetByID("o1")
	require.NoError(t, err)
	p, err := products.GetByID("p1")
	require.NoError(t, err)
	if o.Status == record.OrderRejected {
		assert.Equal(t, 5, p.Stock)
	} else {
		assert.Equal(t, record.OrderConfirmed, o.Status)
		assert.Equal(t, 3, p.Stock)
	}
}
