package domain

// Lot represents a batch of a Product with a count of items.
// The Product is shared with the caller and never copied by the store.
type Lot struct {
	ID        int64    `json:"id"`
	Product   *Product `json:"product"`
	ItemCount int      `json:"itemCount"`
}

// LotOptions holds the optional fields used to build a Lot
type LotOptions struct {
	ID        int64
	Product   *Product
	ItemCount int
}

// NewLot creates a new lot from the given options
func NewLot(opts LotOptions) *Lot {
	return &Lot{
		ID:        opts.ID,
		Product:   opts.Product,
		ItemCount: opts.ItemCount,
	}
}

// Equal reports whether both lots hold the same field values, comparing the
// referenced products by value rather than by pointer.
func (l *Lot) Equal(other *Lot) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.ID == other.ID &&
		l.ItemCount == other.ItemCount &&
		l.Product.Equal(other.Product)
}
