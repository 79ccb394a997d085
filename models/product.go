package models

// Product is a catalog item owned by the dairy backend; read-only here.
type Product struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category"`
	PricePerDay  float64  `json:"pricePerDay"`
	Availability bool     `json:"availability"`
	Quantity     int      `json:"quantity"` // units in stock
	Images       []string `json:"images,omitempty"`
}

// ProductInput is the admin-side payload for creating or updating a product.
type ProductInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category"`
	PricePerDay  float64  `json:"pricePerDay"`
	Availability bool     `json:"availability"`
	Quantity     int      `json:"quantity"`
	Images       []string `json:"images,omitempty"`
}
