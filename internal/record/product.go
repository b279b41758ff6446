package record

// ProductStatus is the listing flag stored at position 8 of a product record.
type ProductStatus int

const (
	StatusInactive ProductStatus = 0
	StatusActive   ProductStatus = 1
)

// Product is the typed view of a positional product record:
//
//	[id, owner, name, imageUrl, description, price, stock, category, status]
type Product struct {
	ID          string        `json:"id"`
	Owner       string        `json:"owner"`
	Name        string        `json:"name"`
	ImageURL    string        `json:"imageUrl"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Category    string        `json:"category"`
	Status      ProductStatus `json:"status"`
}

func (p Product) Active() bool {
	return p.Status == StatusActive
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// Value is the inventory value of the listing (price x stock).
func (p Product) Value() float64 {
	return p.Price * float64(p.Stock)
}

// Record encodes the product back into its positional form.
func (p Product) Record() []any {
	return []any{
		p.ID,
		p.Owner,
		p.Name,
		p.ImageURL,
		p.Description,
		p.Price,
		p.Stock,
		p.Category,
		int(p.Status),
	}
}

// DecodeProduct reads a positional product record. Missing trailing fields
// decode as zero values and scalars that cannot be coerced become zero.
func DecodeProduct(fields []any) Product {
	r := row(fields)
	return Product{
		ID:          r.str(0),
		Owner:       r.str(1),
		Name:        r.str(2),
		ImageURL:    r.str(3),
		Description: r.str(4),
		Price:       r.float(5),
		Stock:       r.int(6),
		Category:    r.str(7),
		Status:      ProductStatus(r.int(8)),
	}
}
