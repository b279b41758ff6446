package view

import "github.com/wichananm65/upj-marketplace/internal/record"

// SellerStats summarises a seller's own products and incoming orders.
type SellerStats struct {
	TotalProducts   int     `json:"totalProducts"`
	ActiveProducts  int     `json:"activeProducts"`
	OutOfStock      int     `json:"outOfStock"`
	InventoryValue  float64 `json:"totalValue"`
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	ConfirmedOrders int     `json:"confirmedOrders"`
	CompletedOrders int     `json:"completedOrders"`
	RejectedOrders  int     `json:"rejectedOrders"`
	Revenue         float64 `json:"revenue"`
}

// Stats expects products and orders already narrowed to one seller.
func Stats(products []record.Product, orders []record.Order) SellerStats {
	var s SellerStats
	s.TotalProducts = len(products)
	for _, p := range products {
		if p.Active() {
			s.ActiveProducts++
		}
		if p.Stock == 0 {
			s.OutOfStock++
		}
		s.InventoryValue += p.Value()
	}
	s.TotalOrders = len(orders)
	for _, o := range orders {
		switch o.Status {
		case record.OrderPending:
			s.PendingOrders++
		case record.OrderConfirmed:
			s.ConfirmedOrders++
		case record.OrderCompleted:
			s.CompletedOrders++
			s.Revenue += o.TotalPrice
		case record.OrderRejected:
			s.RejectedOrders++
		}
	}
	return s
}
