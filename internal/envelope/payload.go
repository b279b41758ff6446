package envelope

// ProductData is the data field of a product create or update.
type ProductData struct {
	ProductName string  `json:"product_name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Status      int     `json:"status"`

	// Image replacement, base64 without a data URL prefix.
	ImageData string `json:"imageData,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	FileName  string `json:"fileName,omitempty"`
}

// OrderData is the data field of an order create.
type OrderData struct {
	ProductID  string  `json:"product_id"`
	SellerID   string  `json:"seller_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}
