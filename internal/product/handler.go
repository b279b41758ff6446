package product

import (
	"encoding/json"
	"errors"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

// Handler answers actions on the products table.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Handle(req envelope.Request) (envelope.Envelope, error) {
	switch req.Action {
	case envelope.ActionRead:
		return h.list()
	case envelope.ActionCreate:
		return h.create(req)
	case envelope.ActionUpdate:
		return h.update(req)
	case envelope.ActionDelete:
		return h.delete(req)
	default:
		return envelope.Fail("Aksi tidak dikenal"), nil
	}
}

func (h *Handler) list() (envelope.Envelope, error) {
	products := h.service.List()
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, p.Record())
	}
	return envelope.OK(rows)
}

func (h *Handler) create(req envelope.Request) (envelope.Envelope, error) {
	var in envelope.ProductData
	if err := json.Unmarshal(req.Data, &in); err != nil {
		return envelope.Fail("Data produk tidak valid"), nil
	}
	p, err := h.service.Create(req.Email, in)
	if err != nil {
		return failure(err)
	}
	return envelope.OK(p.Record())
}

func (h *Handler) update(req envelope.Request) (envelope.Envelope, error) {
	if req.ProductID == "" {
		return envelope.Fail("product_id wajib diisi"), nil
	}
	var in envelope.ProductData
	if err := json.Unmarshal(req.Data, &in); err != nil {
		return envelope.Fail("Data produk tidak valid"), nil
	}
	p, err := h.service.Update(req.Email, req.ProductID, in)
	if err != nil {
		return failure(err)
	}
	return envelope.OK(p.Record())
}

func (h *Handler) delete(req envelope.Request) (envelope.Envelope, error) {
	if req.ProductID == "" {
		return envelope.Fail("product_id wajib diisi"), nil
	}
	if err := h.service.Delete(req.Email, req.ProductID); err != nil {
		return failure(err)
	}
	return envelope.OK(nil)
}

// failure turns domain errors into failure envelopes; anything else is
// returned as an error.
func failure(err error) (envelope.Envelope, error) {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		return envelope.Fail(verr.Error()), nil
	case errors.Is(err, ErrNotFound):
		return envelope.Fail("Produk tidak ditemukan"), nil
	case errors.Is(err, ErrForbidden):
		return envelope.Fail("Produk bukan milik Anda"), nil
	default:
		return envelope.Envelope{}, err
	}
}
