package product

import (
	"strings"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

type Service struct {
	repo Repository
	owns identity.Matcher
}

func NewService(repo Repository, owns identity.Matcher) *Service {
	if owns == nil {
		owns = identity.Exact
	}
	return &Service{repo: repo, owns: owns}
}

func (s *Service) List() []record.Product {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (record.Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) AdjustStock(id string, delta int) (record.Product, error) {
	return s.repo.AdjustStock(id, delta)
}

// Create lists a new product owned by owner.
func (s *Service) Create(owner string, in envelope.ProductData) (record.Product, error) {
	if errs := validateProductPayload(in); errs != nil {
		return record.Product{}, errs
	}
	p := fromPayload(record.Product{Owner: owner}, in)
	return s.repo.Create(p)
}

// Update replaces the editable fields of a product owned by actor. Without a
// new image the current one is kept.
func (s *Service) Update(actor, id string, in envelope.ProductData) (record.Product, error) {
	if errs := validateProductPayload(in); errs != nil {
		return record.Product{}, errs
	}
	existing, err := s.ownedBy(actor, id)
	if err != nil {
		return record.Product{}, err
	}
	return s.repo.Update(id, fromPayload(existing, in))
}

func (s *Service) Delete(actor, id string) error {
	if _, err := s.ownedBy(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) ownedBy(actor, id string) (record.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return record.Product{}, err
	}
	if !s.owns(p.Owner, actor) {
		return record.Product{}, ErrForbidden
	}
	return p, nil
}

func fromPayload(base record.Product, in envelope.ProductData) record.Product {
	base.Name = strings.TrimSpace(in.ProductName)
	base.Description = strings.TrimSpace(in.Description)
	base.Price = in.Price
	base.Stock = in.Stock
	base.Category = in.Category
	base.Status = record.ProductStatus(in.Status)
	if in.ImageData != "" {
		base.ImageURL = imageURL(in)
	}
	return base
}
