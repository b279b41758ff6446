package order

import (
	"encoding/json"
	"errors"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/product"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

// Handler answers actions on the orders table.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Handle(req envelope.Request) (envelope.Envelope, error) {
	switch req.Action {
	case envelope.ActionRead:
		return h.list(req)
	case envelope.ActionCreate:
		return h.create(req)
	case envelope.ActionUpdate:
		return h.updateStatus(req)
	default:
		return envelope.Fail("Aksi tidak dikenal"), nil
	}
}

func (h *Handler) list(req envelope.Request) (envelope.Envelope, error) {
	orders, err := h.service.List(req.Email)
	if err != nil {
		return envelope.Envelope{}, err
	}
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, o.Record())
	}
	return envelope.OK(rows)
}

func (h *Handler) create(req envelope.Request) (envelope.Envelope, error) {
	var in envelope.OrderData
	if err := json.Unmarshal(req.Data, &in); err != nil {
		return envelope.Fail("Data pesanan tidak valid"), nil
	}
	o, err := h.service.Create(req.Email, in)
	if err != nil {
		return failure(err)
	}
	return envelope.OK(o.Record())
}

func (h *Handler) updateStatus(req envelope.Request) (envelope.Envelope, error) {
	if req.OrderID == "" || req.OrderStatus == "" {
		return envelope.Fail("order_id dan order_status wajib diisi"), nil
	}
	o, err := h.service.UpdateStatus(req.Email, req.OrderID, record.OrderStatus(req.OrderStatus))
	if err != nil {
		return failure(err)
	}
	return envelope.OK(o.Record())
}

func failure(err error) (envelope.Envelope, error) {
	switch {
	case errors.Is(err, ErrNotFound):
		return envelope.Fail("Pesanan tidak ditemukan"), nil
	case errors.Is(err, ErrForbidden):
		return envelope.Fail("Pesanan bukan untuk Anda"), nil
	case errors.Is(err, ErrUnavailable):
		return envelope.Fail("Produk tidak tersedia"), nil
	case errors.Is(err, ErrOwnProduct):
		return envelope.Fail("Tidak dapat memesan produk sendiri"), nil
	case errors.Is(err, ErrBadQuantity):
		return envelope.Fail("Jumlah minimal 1"), nil
	case errors.Is(err, ErrSellerChanged):
		return envelope.Fail("Penjual tidak sesuai dengan produk"), nil
	case errors.Is(err, record.ErrInvalidTransition):
		return envelope.Fail("Status pesanan tidak dapat diubah"), nil
	case errors.Is(err, product.ErrNotFound):
		return envelope.Fail("Produk tidak ditemukan"), nil
	case errors.Is(err, product.ErrInsufficientStock):
		return envelope.Fail("Stok tidak mencukupi"), nil
	default:
		return envelope.Envelope{}, err
	}
}
