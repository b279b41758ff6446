package product

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrForbidden         = errors.New("product belongs to another seller")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	List() []record.Product
	GetByID(id string) (record.Product, error)
	Create(p record.Product) (record.Product, error)
	Update(id string, p record.Product) (record.Product, error)
	Delete(id string) error
	// AdjustStock adds delta to the stock, refusing to go below zero.
	AdjustStock(id string, delta int) (record.Product, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []record.Product
}

func NewInMemoryRepository(seed []record.Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]record.Product, 0, len(seed)),
	}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List() []record.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]record.Product, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) GetByID(id string) (record.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return record.Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p record.Product) (record.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, p record.Product) (record.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return record.Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) AdjustStock(id string, delta int) (record.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID != id {
			continue
		}
		if r.storage[i].Stock+delta < 0 {
			return record.Product{}, ErrInsufficientStock
		}
		r.storage[i].Stock += delta
		return r.storage[i], nil
	}
	return record.Product{}, ErrNotFound
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
