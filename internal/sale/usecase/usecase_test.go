package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/sale"
	"github.com/veltra/pos-admin-service/internal/sale/dto"
)

type fakeRepo struct {
	recordErr   error
	recordCalls int

	lastSale      *model.Sale
	lastItems     []model.SaleItem
	lastMovements []model.StockMovement
}

func (f *fakeRepo) RecordSale(_ context.Context, s *model.Sale, items []model.SaleItem, movements []model.StockMovement) error {
	f.recordCalls++
	if f.recordErr != nil {
		return f.recordErr
	}
	f.lastSale = s
	f.lastItems = items
	f.lastMovements = movements
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Sale, []model.SaleItem, error) {
	if f.lastSale != nil && f.lastSale.ID == id {
		return f.lastSale, f.lastItems, nil
	}
	return nil, nil, nil
}

func newUseCase(repo *fakeRepo) *saleUseCase {
	return &saleUseCase{repo: repo, logger: zap.NewNop()}
}

func TestRecordSaleValidatesLines(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo)
	ctx := context.Background()

	cases := []*dto.RecordSaleInput{
		{WarehouseID: "", Lines: []dto.SaleLineInput{{ProductID: "p1", Quantity: 1}}},
		{WarehouseID: "w1", Lines: nil},
		{WarehouseID: "w1", Lines: []dto.SaleLineInput{{ProductID: "", Quantity: 1}}},
		{WarehouseID: "w1", Lines: []dto.SaleLineInput{{ProductID: "p1", Quantity: 0}}},
		{WarehouseID: "w1", Lines: []dto.SaleLineInput{{ProductID: "p1", Quantity: -2}}},
		{WarehouseID: "w1", Lines: []dto.SaleLineInput{{ProductID: "p1", Quantity: 1, UnitPrice: -0.01}}},
	}
	for _, input := range cases {
		_, _, err := uc.RecordSale(ctx, input)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	assert.Zero(t, repo.recordCalls)
}

func TestRecordSaleComputesTotalAndMovements(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo)

	s, items, err := uc.RecordSale(context.Background(), &dto.RecordSaleInput{
		WarehouseID: "w1",
		Lines: []dto.SaleLineInput{
			{ProductID: "p1", SizeCode: "M", Quantity: 2, UnitPrice: 10},
			{ProductID: "p2", Quantity: 1, UnitPrice: 4.50},
		},
		UserEmail: "till1@shop.test",
	})
	require.NoError(t, err)

	assert.InDelta(t, 24.50, s.Total, 0.0001)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].SizeCode)
	assert.Equal(t, "M", *items[0].SizeCode)
	assert.Nil(t, items[1].SizeCode)

	require.Len(t, repo.lastMovements, 2)
	assert.Equal(t, "sale", repo.lastMovements[0].MovementType)
	assert.Equal(t, int64(-2), repo.lastMovements[0].QuantityChange)
	require.NotNil(t, repo.lastMovements[0].ReferenceID)
	assert.Equal(t, s.ID, *repo.lastMovements[0].ReferenceID)
}

func TestRecordSaleInsufficientStockConflicts(t *testing.T) {
	repo := &fakeRepo{recordErr: sale.ErrInsufficientStock}
	uc := newUseCase(repo)

	_, _, err := uc.RecordSale(context.Background(), &dto.RecordSaleInput{
		WarehouseID: "w1",
		Lines:       []dto.SaleLineInput{{ProductID: "p1", Quantity: 5, UnitPrice: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestGetSaleUnknownIDNotFound(t *testing.T) {
	uc := newUseCase(&fakeRepo{})

	_, _, err := uc.GetSale(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
