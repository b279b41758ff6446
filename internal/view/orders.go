package view

import (
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

// ProductNotFound labels an order line whose product no longer resolves.
const ProductNotFound = "Produk tidak ditemukan"

// SellerOrders lists orders addressed to viewer as seller.
func SellerOrders(orders []record.Order, viewer string, owns identity.Matcher) []record.Order {
	out := make([]record.Order, 0)
	for _, o := range orders {
		if owns(o.Seller, viewer) {
			out = append(out, o)
		}
	}
	return out
}

// BuyerOrders lists orders placed by viewer.
func BuyerOrders(orders []record.Order, viewer string, owns identity.Matcher) []record.Order {
	out := make([]record.Order, 0)
	for _, o := range orders {
		if owns(o.Buyer, viewer) {
			out = append(out, o)
		}
	}
	return out
}

type Index map[string]record.Product

func NewIndex(products []record.Product) Index {
	idx := make(Index, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

func (idx Index) Resolve(id string) (record.Product, bool) {
	p, ok := idx[id]
	return p, ok
}

// Line pairs an order with its product, when the product still exists.
type Line struct {
	Order   record.Order
	Product *record.Product
}

func (l Line) ProductName() string {
	if l.Product == nil {
		return ProductNotFound
	}
	return l.Product.Name
}

func (idx Index) Lines(orders []record.Order) []Line {
	out := make([]Line, 0, len(orders))
	for _, o := range orders {
		l := Line{Order: o}
		if p, ok := idx.Resolve(o.ProductID); ok {
			l.Product = &p
		}
		out = append(out, l)
	}
	return out
}
