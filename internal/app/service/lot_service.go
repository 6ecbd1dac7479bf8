package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/lots-api/internal/app/dto"
	"github.com/mrops-br/lots-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// LotService handles lot use cases
type LotService struct {
	repo            domain.LotRepository
	tracer          trace.Tracer
	logger          *slog.Logger
	lotSavedCounter metric.Int64Counter
	lotOperations   metric.Int64Counter
}

// NewLotService creates a new lot service
func NewLotService(
	repo domain.LotRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *LotService {
	lotSavedCounter, err := meter.Int64Counter(
		"lots.saved.total",
		metric.WithDescription("Total number of lots saved"),
	)
	if err != nil {
		logger.Warn("Failed to create lots.saved.total counter", slog.String("error", err.Error()))
		lotSavedCounter = noop.Int64Counter{}
	}

	lotOperations, err := meter.Int64Counter(
		"lots.operations",
		metric.WithDescription("Total number of lot operations"),
	)
	if err != nil {
		logger.Warn("Failed to create lots.operations counter", slog.String("error", err.Error()))
		lotOperations = noop.Int64Counter{}
	}

	return &LotService{
		repo:            repo,
		tracer:          tracer,
		logger:          logger,
		lotSavedCounter: lotSavedCounter,
		lotOperations:   lotOperations,
	}
}

// SaveLot stores a new lot and echoes it back
func (s *LotService) SaveLot(ctx context.Context, req *dto.LotRequest) *dto.LotResponse {
	ctx, span := s.tracer.Start(ctx, "LotService.SaveLot")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("lot.id", req.ID),
		attribute.Int("lot.item_count", req.ItemCount),
	)

	s.logger.InfoContext(ctx, "Saving lot",
		slog.Int64("lot_id", req.ID),
		slog.Int("item_count", req.ItemCount),
	)

	saved := s.repo.Save(ctx, dto.ToLot(req))

	s.lotSavedCounter.Add(ctx, 1)
	s.recordOperation(ctx, "save", "success")

	s.logger.InfoContext(ctx, "Lot saved successfully",
		slog.Int64("lot_id", saved.ID),
	)

	span.SetStatus(codes.Ok, "Lot saved successfully")
	return dto.ToLotResponse(saved)
}

// GetLot retrieves the lot stored at the given position
func (s *LotService) GetLot(ctx context.Context, position int) (*dto.LotResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LotService.GetLot")
	defer span.End()

	span.SetAttributes(attribute.Int("lot.position", position))

	s.logger.InfoContext(ctx, "Getting lot by position",
		slog.Int("position", position),
	)

	lot, err := s.repo.Find(ctx, position)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lot not found")
		s.logger.WarnContext(ctx, "Lot not found",
			slog.Int("position", position),
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "find", "not_found")
		return nil, err
	}

	s.recordOperation(ctx, "find", "success")

	s.logger.InfoContext(ctx, "Lot retrieved successfully",
		slog.Int("position", position),
		slog.Int64("lot_id", lot.ID),
	)

	span.SetStatus(codes.Ok, "Lot retrieved successfully")
	return dto.ToLotResponse(lot), nil
}

// ListLots retrieves all lots in insertion order
func (s *LotService) ListLots(ctx context.Context) []*dto.LotResponse {
	ctx, span := s.tracer.Start(ctx, "LotService.ListLots")
	defer span.End()

	s.logger.InfoContext(ctx, "Listing all lots")

	lots := s.repo.FindAll(ctx)

	span.SetAttributes(attribute.Int("lot.count", len(lots)))
	s.recordOperation(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Lots listed successfully",
		slog.Int("count", len(lots)),
	)

	span.SetStatus(codes.Ok, "Lots listed successfully")
	return dto.ToLotResponseList(lots)
}

// UpdateLot appends the lot and returns the resulting number of stored lots
func (s *LotService) UpdateLot(ctx context.Context, req *dto.LotRequest) *dto.SizeResponse {
	ctx, span := s.tracer.Start(ctx, "LotService.UpdateLot")
	defer span.End()

	span.SetAttributes(attribute.Int64("lot.id", req.ID))

	s.logger.InfoContext(ctx, "Updating lot",
		slog.Int64("lot_id", req.ID),
	)

	s.repo.Update(ctx, dto.ToLot(req))
	size := s.repo.Len(ctx)

	span.SetAttributes(attribute.Int("lot.count", size))
	s.recordOperation(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Lot updated successfully",
		slog.Int64("lot_id", req.ID),
		slog.Int("count", size),
	)

	span.SetStatus(codes.Ok, "Lot updated successfully")
	return &dto.SizeResponse{Size: size}
}

// DeleteLot removes the first stored lot equal to the request
func (s *LotService) DeleteLot(ctx context.Context, req *dto.LotRequest) {
	ctx, span := s.tracer.Start(ctx, "LotService.DeleteLot")
	defer span.End()

	span.SetAttributes(attribute.Int64("lot.id", req.ID))

	before := s.repo.Len(ctx)
	s.repo.Delete(ctx, dto.ToLot(req))
	after := s.repo.Len(ctx)

	result := "success"
	if after == before {
		result = "no_match"
	}
	s.recordOperation(ctx, "delete", result)

	s.logger.InfoContext(ctx, "Lot delete processed",
		slog.Int64("lot_id", req.ID),
		slog.String("result", result),
		slog.Int("count", after),
	)

	span.SetStatus(codes.Ok, "Lot delete processed")
}

// DeleteAllLots empties the repository
func (s *LotService) DeleteAllLots(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "LotService.DeleteAllLots")
	defer span.End()

	s.repo.DeleteAll(ctx)
	s.recordOperation(ctx, "delete_all", "success")

	s.logger.InfoContext(ctx, "All lots deleted")

	span.SetStatus(codes.Ok, "All lots deleted")
}

func (s *LotService) recordOperation(ctx context.Context, operation, result string) {
	s.lotOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}
