package record

import "errors"

// OrderStatus is the lifecycle state stored at position 6 of an order record.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderRejected  OrderStatus = "rejected"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending: {
		OrderConfirmed: true,
		OrderRejected:  true,
	},
	OrderConfirmed: {
		OrderCompleted: true,
	},
	OrderCompleted: {},
	OrderRejected:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

func CanTransition(from, to OrderStatus) bool {
	next, ok := validNext[from]
	if !ok {
		return false
	}
	return next[to]
}

// Label is the Indonesian display text used on dashboards.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Menunggu Konfirmasi"
	case OrderConfirmed:
		return "Dikonfirmasi"
	case OrderCompleted:
		return "Selesai"
	case OrderRejected:
		return "Ditolak"
	default:
		return string(s)
	}
}
