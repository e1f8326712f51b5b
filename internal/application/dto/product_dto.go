package dto

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductDTO producto en respuestas.
type ProductDTO struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// CreateSubproductRequest body para POST /api/products/:id/subproducts.
type CreateSubproductRequest struct {
	Name string `json:"name"`
}

// SubproductDTO subproducto en respuestas.
type SubproductDTO struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}
