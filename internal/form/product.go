package form

import (
	"errors"
	"strings"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

// ProductForm is the input of the product create and edit dialog.
type ProductForm struct {
	Name        string               `json:"product_name" validate:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" validate:"gte=0"`
	Stock       int                  `json:"stock" validate:"gte=0"`
	Category    string               `json:"category" validate:"category"`
	Status      record.ProductStatus `json:"status" validate:"oneof=0 1"`
	Image       *ImageUpload         `json:"-" validate:"-"`
}

// NewProductForm returns an empty form for a new, active listing.
func NewProductForm() ProductForm {
	return ProductForm{Status: record.StatusActive}
}

// EditProductForm prefills the form from an existing listing. The image is
// left unset so the current one is kept unless replaced.
func EditProductForm(p record.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Status:      p.Status,
	}
}

func (f ProductForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	errs := FieldErrors{}
	if err := validate.Struct(f); err != nil {
		errs = fieldErrors(err)
	}
	if f.Image != nil {
		if err := f.Image.Validate(); err != nil {
			errs["imageData"] = errMessage(err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f ProductForm) data() envelope.ProductData {
	d := envelope.ProductData{
		ProductName: strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       f.Price,
		Stock:       f.Stock,
		Category:    f.Category,
		Status:      int(f.Status),
	}
	if f.Image != nil {
		d.ImageData = f.Image.Encoded()
		d.MimeType = f.Image.Type()
		d.FileName = f.Image.FileName
	}
	return d
}

// CreateRequest validates the form and builds a product create.
func (f ProductForm) CreateRequest(email string) (envelope.Request, error) {
	if err := f.Validate(); err != nil {
		return envelope.Request{}, err
	}
	return envelope.Request{Email: email, Action: envelope.ActionCreate}.WithData(f.data())
}

// UpdateRequest validates the form and builds an update of productID.
func (f ProductForm) UpdateRequest(email, productID string) (envelope.Request, error) {
	if productID == "" {
		return envelope.Request{}, FieldErrors{"product_id": "wajib diisi"}
	}
	if err := f.Validate(); err != nil {
		return envelope.Request{}, err
	}
	return envelope.Request{Email: email, Action: envelope.ActionUpdate, ProductID: productID}.WithData(f.data())
}

// DeleteRequest builds a product delete.
func DeleteRequest(email, productID string) envelope.Request {
	return envelope.Request{Email: email, Action: envelope.ActionDelete, ProductID: productID}
}

func errMessage(err error) string {
	switch {
	case errors.Is(err, ErrImageTooLarge):
		return ErrImageTooLarge.Error()
	case errors.Is(err, ErrNotImage):
		return ErrNotImage.Error()
	default:
		return err.Error()
	}
}
