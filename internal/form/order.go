package form

import (
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

// OrderForm is the input of the order dialog for one product.
type OrderForm struct {
	Product  record.Product `json:"-" validate:"-"`
	Quantity int            `json:"quantity" validate:"min=1"`
}

func NewOrderForm(p record.Product) OrderForm {
	return OrderForm{Product: p, Quantity: 1}
}

// Total is the snapshot price of the order.
func (f OrderForm) Total() float64 {
	return f.Product.Price * float64(f.Quantity)
}

// Validate checks the quantity against the listing and refuses orders on
// inactive, unidentified, or the buyer's own listings.
func (f OrderForm) Validate(buyer string) error {
	errs := FieldErrors{}
	if err := validate.Struct(f); err != nil {
		errs = fieldErrors(err)
	}
	if _, ok := errs["quantity"]; !ok && f.Quantity > f.Product.Stock {
		errs["quantity"] = "melebihi stok tersedia"
	}
	switch {
	case f.Product.ID == "":
		errs["product_id"] = "wajib diisi"
	case !f.Product.Active():
		errs["product_id"] = "produk tidak tersedia"
	case buyer != "" && f.Product.Owner == buyer:
		errs["product_id"] = "tidak dapat memesan produk sendiri"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Request validates the form and builds the order create.
func (f OrderForm) Request(buyer string) (envelope.Request, error) {
	if err := f.Validate(buyer); err != nil {
		return envelope.Request{}, err
	}
	return envelope.Request{Email: buyer, Action: envelope.ActionCreate}.WithData(envelope.OrderData{
		ProductID:  f.Product.ID,
		SellerID:   f.Product.Owner,
		Quantity:   f.Quantity,
		TotalPrice: f.Total(),
	})
}

// StatusRequest builds an order status update.
func StatusRequest(seller, orderID string, status record.OrderStatus) envelope.Request {
	return envelope.Request{
		Email:       seller,
		Action:      envelope.ActionUpdate,
		OrderID:     orderID,
		OrderStatus: string(status),
	}
}
