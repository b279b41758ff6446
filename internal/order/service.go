package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/record"
	"go.uber.org/zap"
)

// Service provides business logic for orders.
type Service struct {
	repo    Repository
	catalog Catalog
	aliases identity.Aliases
	log     *zap.Logger
	now     func() time.Time
}

func NewService(r Repository, catalog Catalog, aliases identity.Aliases, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: r, catalog: catalog, aliases: aliases, log: log, now: time.Now}
}

// List returns the orders actor takes part in, as buyer or seller.
func (s *Service) List(actor string) ([]record.Order, error) {
	return s.repo.ListFor(s.aliases.Identities(actor))
}

// Create places an order. The total is recomputed from the current price and
// the product's stock is reserved.
func (s *Service) Create(buyer string, in envelope.OrderData) (record.Order, error) {
	if in.Quantity < 1 {
		return record.Order{}, ErrBadQuantity
	}
	p, err := s.catalog.GetByID(in.ProductID)
	if err != nil {
		return record.Order{}, err
	}
	if !p.Active() {
		return record.Order{}, ErrUnavailable
	}
	if s.aliases.Matcher()(p.Owner, buyer) {
		return record.Order{}, ErrOwnProduct
	}
	if in.SellerID != "" && in.SellerID != p.Owner {
		return record.Order{}, ErrSellerChanged
	}
	if _, err := s.catalog.AdjustStock(p.ID, -in.Quantity); err != nil {
		return record.Order{}, err
	}

	o := record.Order{
		Buyer:      buyer,
		Seller:     p.Owner,
		ProductID:  p.ID,
		Quantity:   in.Quantity,
		TotalPrice: p.Price * float64(in.Quantity),
		Status:     record.OrderPending,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
	}
	if in.TotalPrice != o.TotalPrice {
		s.log.Info("order total recomputed",
			zap.Float64("submitted", in.TotalPrice),
			zap.Float64("total", o.TotalPrice))
	}
	created, err := s.repo.Create(o)
	if err != nil {
		s.restock(p.ID, in.Quantity)
		return record.Order{}, err
	}
	return created, nil
}

// UpdateStatus moves an order along its lifecycle on behalf of its seller.
// The write only lands if the status is unchanged since it was read. A
// rejected order returns its quantity to stock.
func (s *Service) UpdateStatus(actor, id string, to record.OrderStatus) (record.Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return record.Order{}, err
	}
	if !s.aliases.Matcher()(o.Seller, actor) {
		return record.Order{}, ErrForbidden
	}
	if !record.CanTransition(o.Status, to) {
		return record.Order{}, fmt.Errorf("%w: %s -> %s", record.ErrInvalidTransition, o.Status, to)
	}
	updated, err := s.repo.UpdateStatus(id, o.Status, to)
	if err != nil {
		if errors.Is(err, record.ErrInvalidTransition) {
			return record.Order{}, fmt.Errorf("%w: %s changed concurrently", err, id)
		}
		return record.Order{}, err
	}
	if to == record.OrderRejected {
		s.restock(o.ProductID, o.Quantity)
	}
	return updated, nil
}

func (s *Service) restock(productID string, quantity int) {
	if _, err := s.catalog.AdjustStock(productID, quantity); err != nil {
		s.log.Warn("restock failed", zap.String("product_id", productID), zap.Error(err))
	}
}
