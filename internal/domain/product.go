package domain

import "github.com/shopspring/decimal"

// Product represents a sellable item type
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Barcode      string          `json:"barcode"`
	Manufacturer string          `json:"manufacturer"`
}

// ProductOptions holds the optional fields used to build a Product.
// Omitted fields keep their zero value.
type ProductOptions struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	Barcode      string
	Manufacturer string
}

// NewProduct creates a new product from the given options
func NewProduct(opts ProductOptions) *Product {
	return &Product{
		ID:           opts.ID,
		Name:         opts.Name,
		Price:        opts.Price,
		Barcode:      opts.Barcode,
		Manufacturer: opts.Manufacturer,
	}
}

// Equal reports whether both products hold the same field values.
// Prices are compared numerically, so 1.5 and 1.50 are equal.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID &&
		p.Name == other.Name &&
		p.Price.Equal(other.Price) &&
		p.Barcode == other.Barcode &&
		p.Manufacturer == other.Manufacturer
}
