package order

import (
	"sync"

	"github.com/google/uuid"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

type Repository interface {
	// ListFor returns orders where any of identities is buyer or seller.
	ListFor(identities []string) ([]record.Order, error)
	GetByID(id string) (record.Order, error)
	Create(o record.Order) (record.Order, error)
	// UpdateStatus moves the order from one status to another. It fails with
	// record.ErrInvalidTransition when the order is no longer in from.
	UpdateStatus(id string, from, to record.OrderStatus) (record.Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []record.Order
}

func NewInMemoryRepository(seed []record.Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]record.Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) ListFor(identities []string) ([]record.Order, error) {
	want := make(map[string]bool, len(identities))
	for _, id := range identities {
		want[id] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]record.Order, 0)
	for _, o := range r.orders {
		if want[o.Buyer] || want[o.Seller] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (record.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return record.Order{}, ErrNotFound
}

func (r *InMemoryRepository) Create(o record.Order) (record.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) UpdateStatus(id string, from, to record.OrderStatus) (record.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		if r.orders[i].Status != from {
			return record.Order{}, record.ErrInvalidTransition
		}
		r.orders[i].Status = to
		return r.orders[i], nil
	}
	return record.Order{}, ErrNotFound
}
