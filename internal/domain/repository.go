package domain

import (
	"context"
	"errors"
)

var (
	ErrPositionOutOfRange = errors.New("lot position out of range")
)

// LotRepository defines the contract for lot storage.
//
// Lots are kept in insertion order. Find addresses that order by position,
// not by Lot.ID, and Update appends instead of replacing an entry with the
// same ID. Duplicate IDs are accepted as distinct entries.
type LotRepository interface {
	Save(ctx context.Context, lot *Lot) *Lot
	Find(ctx context.Context, position int) (*Lot, error)
	FindAll(ctx context.Context) []*Lot
	Update(ctx context.Context, lot *Lot)
	Delete(ctx context.Context, lot *Lot)
	DeleteAll(ctx context.Context)
	Len(ctx context.Context) int
}
