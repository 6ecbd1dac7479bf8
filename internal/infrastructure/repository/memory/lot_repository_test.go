package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mrops-br/lots-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// LotRepositorySuite exercises the in-memory lot repository.
type LotRepositorySuite struct {
	suite.Suite
	ctx      context.Context
	recorder *tracetest.SpanRecorder
	repo     *LotRepository

	product        *domain.Product
	lot            *domain.Lot
	alternativeLot *domain.Lot
}

func TestLotRepository(t *testing.T) {
	suite.Run(t, new(LotRepositorySuite))
}

// SetupTest gives every test a fresh repository and fixtures.
func (s *LotRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.recorder = tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.recorder))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.repo = NewLotRepository(tp.Tracer("test"), logger)

	s.product = domain.NewProduct(domain.ProductOptions{
		ID:           1,
		Name:         "Produto Base",
		Barcode:      "123456789",
		Manufacturer: "Fabricante Base",
		Price:        decimal.RequireFromString("125.36"),
	})
	s.lot = domain.NewLot(domain.LotOptions{ID: 1, ItemCount: 100, Product: s.product})
	s.alternativeLot = domain.NewLot(domain.LotOptions{ID: 1, ItemCount: 200, Product: s.product})
}

func (s *LotRepositorySuite) TearDownTest() {
	s.repo.DeleteAll(s.ctx)
}

func (s *LotRepositorySuite) extraProduct() *domain.Product {
	return domain.NewProduct(domain.ProductOptions{
		ID:           2,
		Name:         "Produto Extra",
		Barcode:      "987654321",
		Manufacturer: "Fabricante Extra",
		Price:        decimal.RequireFromString("125.36"),
	})
}

func (s *LotRepositorySuite) TestSave_FirstLot() {
	saved := s.repo.Save(s.ctx, s.lot)

	s.Len(s.repo.FindAll(s.ctx), 1)
	s.Same(s.lot, saved)
	s.Equal(s.lot.ID, saved.ID)
	s.Same(s.product, saved.Product)
}

func (s *LotRepositorySuite) TestSave_SecondLot() {
	extraProduct := s.extraProduct()
	extraLot := domain.NewLot(domain.LotOptions{ID: 2, ItemCount: 100, Product: extraProduct})
	s.repo.Save(s.ctx, s.lot)

	saved := s.repo.Save(s.ctx, extraLot)

	all := s.repo.FindAll(s.ctx)
	s.Require().Len(all, 2)
	s.Same(s.lot, all[0])
	s.Same(extraLot, all[1])
	s.Equal(extraLot.ID, saved.ID)
	s.Same(extraProduct, saved.Product)
}

func (s *LotRepositorySuite) TestSave_SameIDKeepsBothEntries() {
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)

	s.Len(s.repo.FindAll(s.ctx), 2)
}

func (s *LotRepositorySuite) TestSave_PreservesOrder() {
	const n = 5
	saved := make([]*domain.Lot, 0, n)
	for i := range n {
		lot := domain.NewLot(domain.LotOptions{ID: int64(n - i), ItemCount: i, Product: s.product})
		saved = append(saved, s.repo.Save(s.ctx, lot))
	}

	s.Equal(saved, s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestFind_ByPosition() {
	saved := s.repo.Save(s.ctx, s.lot)

	found, err := s.repo.Find(s.ctx, 0)

	s.Require().NoError(err)
	s.True(saved.Equal(found))
}

func (s *LotRepositorySuite) TestFind_UsesPositionNotID() {
	extraLot := domain.NewLot(domain.LotOptions{ID: 2, ItemCount: 100, Product: s.extraProduct()})
	s.repo.Save(s.ctx, extraLot)
	s.repo.Save(s.ctx, s.lot)

	found, err := s.repo.Find(s.ctx, 1)

	s.Require().NoError(err)
	s.Same(s.lot, found)
}

func (s *LotRepositorySuite) TestFind_OutOfRange() {
	s.repo.Save(s.ctx, s.lot)

	for _, position := range []int{-1, 1, 42} {
		found, err := s.repo.Find(s.ctx, position)

		s.ErrorIs(err, domain.ErrPositionOutOfRange, "position %d", position)
		s.Nil(found)
	}
}

func (s *LotRepositorySuite) TestFind_EmptyRepository() {
	_, err := s.repo.Find(s.ctx, 0)

	s.ErrorIs(err, domain.ErrPositionOutOfRange)
}

func (s *LotRepositorySuite) TestFindAll_ReturnsInsertionOrder() {
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)

	s.Equal([]*domain.Lot{s.lot, s.alternativeLot}, s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestFindAll_EmptyIsNotNil() {
	all := s.repo.FindAll(s.ctx)

	s.NotNil(all)
	s.Empty(all)
}

func (s *LotRepositorySuite) TestFindAll_ReturnsCopy() {
	s.repo.Save(s.ctx, s.lot)

	all := s.repo.FindAll(s.ctx)
	all[0] = s.alternativeLot

	stored := s.repo.FindAll(s.ctx)
	s.Require().Len(stored, 1)
	s.Same(s.lot, stored[0])
}

func (s *LotRepositorySuite) TestUpdate_SingleLotAppends() {
	s.repo.Save(s.ctx, s.lot)

	s.repo.Update(s.ctx, s.alternativeLot)

	s.Len(s.repo.FindAll(s.ctx), 2)
	found, err := s.repo.Find(s.ctx, 1)
	s.Require().NoError(err)
	s.Same(s.alternativeLot, found)

	first, err := s.repo.Find(s.ctx, 0)
	s.Require().NoError(err)
	s.Same(s.lot, first)
}

func (s *LotRepositorySuite) TestUpdate_TwoOrMoreLots() {
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)

	s.repo.Update(s.ctx, s.alternativeLot)

	s.Len(s.repo.FindAll(s.ctx), 3)
}

func (s *LotRepositorySuite) TestSave_NilLot() {
	s.repo.Save(s.ctx, s.lot)

	s.NotPanics(func() {
		s.Nil(s.repo.Save(s.ctx, nil))
	})

	s.Equal(2, s.repo.Len(s.ctx))
	found, err := s.repo.Find(s.ctx, 1)
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *LotRepositorySuite) TestUpdate_NilLot() {
	s.repo.Save(s.ctx, s.lot)

	s.NotPanics(func() {
		s.repo.Update(s.ctx, nil)
	})

	s.Equal(2, s.repo.Len(s.ctx))
}

func (s *LotRepositorySuite) TestDelete_RemovesOnlyMatchingLot() {
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)

	s.repo.Delete(s.ctx, s.lot)

	s.Equal([]*domain.Lot{s.alternativeLot}, s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestDelete_MatchesByValue() {
	s.repo.Save(s.ctx, s.lot)
	productCopy := domain.NewProduct(domain.ProductOptions{
		ID:           s.product.ID,
		Name:         s.product.Name,
		Price:        s.product.Price,
		Barcode:      s.product.Barcode,
		Manufacturer: s.product.Manufacturer,
	})
	copied := domain.NewLot(domain.LotOptions{ID: s.lot.ID, ItemCount: s.lot.ItemCount, Product: productCopy})

	s.repo.Delete(s.ctx, copied)

	s.Empty(s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestDelete_FirstOfDuplicates() {
	twin := domain.NewLot(domain.LotOptions{ID: 1, ItemCount: 100, Product: s.product})
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)
	s.repo.Save(s.ctx, twin)

	s.repo.Delete(s.ctx, twin)

	all := s.repo.FindAll(s.ctx)
	s.Require().Len(all, 2)
	s.Same(s.alternativeLot, all[0])
	s.Same(twin, all[1])
}

func (s *LotRepositorySuite) TestDelete_ClearsVacatedSlot() {
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)

	s.repo.Delete(s.ctx, s.lot)

	s.Require().Len(s.repo.lots, 1)
	s.Nil(s.repo.lots[:2][1])
}

func (s *LotRepositorySuite) TestDelete_NilLotAfterNilSave() {
	s.repo.Save(s.ctx, nil)
	s.repo.Save(s.ctx, s.lot)

	s.repo.Delete(s.ctx, nil)

	s.Equal([]*domain.Lot{s.lot}, s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestDelete_NoMatchIsNoOp() {
	s.repo.Save(s.ctx, s.lot)
	missing := domain.NewLot(domain.LotOptions{ID: 99})

	s.repo.Delete(s.ctx, missing)

	s.Equal([]*domain.Lot{s.lot}, s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestDeleteAll() {
	s.repo.Save(s.ctx, s.lot)
	s.repo.Save(s.ctx, s.alternativeLot)

	s.repo.DeleteAll(s.ctx)

	s.Empty(s.repo.FindAll(s.ctx))
	s.Zero(s.repo.Len(s.ctx))
}

func (s *LotRepositorySuite) TestDeleteAll_EmptyRepository() {
	s.repo.DeleteAll(s.ctx)

	s.Empty(s.repo.FindAll(s.ctx))
}

func (s *LotRepositorySuite) TestSpans() {
	s.repo.Save(s.ctx, s.lot)
	_, _ = s.repo.Find(s.ctx, 3)

	spans := s.recorder.Ended()
	s.Require().Len(spans, 2)
	s.Equal("LotRepository.Save", spans[0].Name())
	s.Equal(codes.Ok, spans[0].Status().Code)
	s.Equal("LotRepository.Find", spans[1].Name())
	s.Equal(codes.Error, spans[1].Status().Code)
}

// Instances must not share storage.
func TestLotRepository_IndependentInstances(t *testing.T) {
	ctx := context.Background()
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := NewLotRepository(tracer, logger)
	second := NewLotRepository(tracer, logger)

	first.Save(ctx, domain.NewLot(domain.LotOptions{ID: 1}))

	require.Equal(t, 1, first.Len(ctx))
	assert.Zero(t, second.Len(ctx))
}
