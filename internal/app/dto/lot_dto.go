package dto

import (
	"github.com/mrops-br/lots-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductPayload represents a product embedded in lot requests and responses
type ProductPayload struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Barcode      string          `json:"barcode"`
	Manufacturer string          `json:"manufacturer"`
}

// LotRequest represents the body of save, update and delete requests
type LotRequest struct {
	ID        int64           `json:"id"`
	Product   *ProductPayload `json:"product"`
	ItemCount int             `json:"itemCount"`
}

// LotResponse represents the lot response
type LotResponse struct {
	ID        int64           `json:"id"`
	Product   *ProductPayload `json:"product"`
	ItemCount int             `json:"itemCount"`
}

// SizeResponse reports how many lots are stored
type SizeResponse struct {
	Size int `json:"size"`
}

// ToLot converts a LotRequest into a domain Lot
func ToLot(req *LotRequest) *domain.Lot {
	var product *domain.Product
	if req.Product != nil {
		product = domain.NewProduct(domain.ProductOptions{
			ID:           req.Product.ID,
			Name:         req.Product.Name,
			Price:        req.Product.Price,
			Barcode:      req.Product.Barcode,
			Manufacturer: req.Product.Manufacturer,
		})
	}

	return domain.NewLot(domain.LotOptions{
		ID:        req.ID,
		Product:   product,
		ItemCount: req.ItemCount,
	})
}

// ToLotResponse converts a domain Lot to LotResponse
func ToLotResponse(l *domain.Lot) *LotResponse {
	resp := &LotResponse{
		ID:        l.ID,
		ItemCount: l.ItemCount,
	}
	if l.Product != nil {
		resp.Product = &ProductPayload{
			ID:           l.Product.ID,
			Name:         l.Product.Name,
			Price:        l.Product.Price,
			Barcode:      l.Product.Barcode,
			Manufacturer: l.Product.Manufacturer,
		}
	}
	return resp
}

// ToLotResponseList converts a list of domain Lots to LotResponse list
func ToLotResponseList(lots []*domain.Lot) []*LotResponse {
	responses := make([]*LotResponse, len(lots))
	for i, l := range lots {
		responses[i] = ToLotResponse(l)
	}
	return responses
}
