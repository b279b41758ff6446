package order

import (
	"errors"

	"github.com/wichananm65/upj-marketplace/internal/record"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrForbidden     = errors.New("order belongs to another seller")
	ErrUnavailable   = errors.New("product is not available")
	ErrOwnProduct    = errors.New("cannot order own product")
	ErrBadQuantity   = errors.New("quantity must be at least 1")
	ErrSellerChanged = errors.New("seller does not match product owner")
)

// Catalog is the product access an order needs.
type Catalog interface {
	GetByID(id string) (record.Product, error)
	AdjustStock(id string, delta int) (record.Product, error)
}
