package category

// Item is one product category offered to sellers.
type Item struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}

// Names lists the catering categories in display order.
var Names = []string{
	"Nasi Kotak",
	"Snack Box",
	"Prasmanan",
	"Kue & Dessert",
	"Minuman",
	"Paket Lengkap",
	"Makanan Tradisional",
	"Makanan Modern",
}

// Valid reports whether name is one of the fixed categories.
func Valid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
