package record

import "time"

// Order is the typed view of a positional order record:
//
//	[id, buyer, seller, productId, quantity, totalPrice, status, createdAt]
type Order struct {
	ID         string      `json:"id"`
	Buyer      string      `json:"buyer"`
	Seller     string      `json:"seller"`
	ProductID  string      `json:"productId"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Record encodes the order back into its positional form. Timestamps are
// written as RFC 3339 strings and a zero timestamp as an empty string.
func (o Order) Record() []any {
	created := ""
	if !o.CreatedAt.IsZero() {
		created = o.CreatedAt.UTC().Format(time.RFC3339)
	}
	return []any{
		o.ID,
		o.Buyer,
		o.Seller,
		o.ProductID,
		o.Quantity,
		o.TotalPrice,
		string(o.Status),
		created,
	}
}

func DecodeOrder(fields []any) Order {
	r := row(fields)
	return Order{
		ID:         r.str(0),
		Buyer:      r.str(1),
		Seller:     r.str(2),
		ProductID:  r.str(3),
		Quantity:   r.int(4),
		TotalPrice: r.float(5),
		Status:     OrderStatus(r.str(6)),
		CreatedAt:  r.time(7),
	}
}
