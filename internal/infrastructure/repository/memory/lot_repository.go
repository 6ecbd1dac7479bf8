package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mrops-br/lots-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LotRepository is an in-memory implementation of domain.LotRepository
// backed by an ordered slice.
type LotRepository struct {
	mu     sync.RWMutex
	lots   []*domain.Lot
	tracer trace.Tracer
	logger *slog.Logger
}

var _ domain.LotRepository = (*LotRepository)(nil)

// NewLotRepository creates a new, empty in-memory lot repository
func NewLotRepository(tracer trace.Tracer, logger *slog.Logger) *LotRepository {
	return &LotRepository{
		lots:   make([]*domain.Lot, 0),
		tracer: tracer,
		logger: logger,
	}
}

// Save appends the lot and returns it unchanged
func (r *LotRepository) Save(ctx context.Context, lot *domain.Lot) *domain.Lot {
	ctx, span := r.tracer.Start(ctx, "LotRepository.Save")
	defer span.End()

	size := r.append(lot)

	span.SetAttributes(lotAttributes(lot)...)
	span.SetAttributes(attribute.Int("lot.count", size))

	r.logger.InfoContext(ctx, "Lot saved in repository",
		slog.Int64("lot_id", lotID(lot)),
		slog.Int("position", size-1),
	)

	span.SetStatus(codes.Ok, "Lot saved successfully")
	return lot
}

// Find returns the lot stored at the given zero-based position
func (r *LotRepository) Find(ctx context.Context, position int) (*domain.Lot, error) {
	ctx, span := r.tracer.Start(ctx, "LotRepository.Find")
	defer span.End()

	span.SetAttributes(attribute.Int("lot.position", position))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if position < 0 || position >= len(r.lots) {
		err := fmt.Errorf("%w: position %d, size %d", domain.ErrPositionOutOfRange, position, len(r.lots))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lot position out of range")
		r.logger.WarnContext(ctx, "Lot position out of range",
			slog.Int("position", position),
			slog.Int("count", len(r.lots)),
		)
		return nil, err
	}

	lot := r.lots[position]

	r.logger.DebugContext(ctx, "Lot found in repository",
		slog.Int("position", position),
		slog.Int64("lot_id", lotID(lot)),
	)

	span.SetStatus(codes.Ok, "Lot found")
	return lot, nil
}

// FindAll returns a copy of the stored lots in insertion order
func (r *LotRepository) FindAll(ctx context.Context) []*domain.Lot {
	ctx, span := r.tracer.Start(ctx, "LotRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	lots := make([]*domain.Lot, len(r.lots))
	copy(lots, r.lots)

	span.SetAttributes(attribute.Int("lot.count", len(lots)))

	r.logger.InfoContext(ctx, "Lots retrieved from repository",
		slog.Int("count", len(lots)),
	)

	span.SetStatus(codes.Ok, "Lots retrieved successfully")
	return lots
}

// Update appends the lot to the end of the collection. Entries sharing the
// lot's ID are left in place.
func (r *LotRepository) Update(ctx context.Context, lot *domain.Lot) {
	ctx, span := r.tracer.Start(ctx, "LotRepository.Update")
	defer span.End()

	size := r.append(lot)

	span.SetAttributes(lotAttributes(lot)...)
	span.SetAttributes(attribute.Int("lot.count", size))

	r.logger.InfoContext(ctx, "Lot updated in repository",
		slog.Int64("lot_id", lotID(lot)),
		slog.Int("position", size-1),
	)

	span.SetStatus(codes.Ok, "Lot updated successfully")
}

// Delete removes the first lot equal in value to the given one.
// Nothing happens when no entry matches.
func (r *LotRepository) Delete(ctx context.Context, lot *domain.Lot) {
	ctx, span := r.tracer.Start(ctx, "LotRepository.Delete")
	defer span.End()

	span.SetAttributes(lotAttributes(lot)...)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.lots {
		if !stored.Equal(lot) {
			continue
		}
		r.lots = slices.Delete(r.lots, i, i+1)

		span.SetAttributes(attribute.Int("lot.position", i))
		r.logger.InfoContext(ctx, "Lot deleted from repository",
			slog.Int("position", i),
			slog.Int("count", len(r.lots)),
		)
		span.SetStatus(codes.Ok, "Lot deleted successfully")
		return
	}

	r.logger.DebugContext(ctx, "No matching lot to delete",
		slog.Int("count", len(r.lots)),
	)
	span.SetStatus(codes.Ok, "No matching lot")
}

// DeleteAll empties the repository
func (r *LotRepository) DeleteAll(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "LotRepository.DeleteAll")
	defer span.End()

	r.mu.Lock()
	removed := len(r.lots)
	r.lots = make([]*domain.Lot, 0)
	r.mu.Unlock()

	span.SetAttributes(attribute.Int("lot.removed", removed))

	r.logger.InfoContext(ctx, "All lots deleted from repository",
		slog.Int("removed", removed),
	)

	span.SetStatus(codes.Ok, "Lots deleted successfully")
}

// Len returns the number of stored lots
func (r *LotRepository) Len(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.lots)
}

func (r *LotRepository) append(lot *domain.Lot) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lots = append(r.lots, lot)
	return len(r.lots)
}

// lotID returns 0 for a nil lot
func lotID(lot *domain.Lot) int64 {
	if lot == nil {
		return 0
	}
	return lot.ID
}

func lotAttributes(lot *domain.Lot) []attribute.KeyValue {
	if lot == nil {
		return nil
	}
	attrs := []attribute.KeyValue{
		attribute.Int64("lot.id", lot.ID),
		attribute.Int("lot.item_count", lot.ItemCount),
	}
	if lot.Product != nil {
		attrs = append(attrs, attribute.Int64("product.id", lot.Product.ID))
	}
	return attrs
}
