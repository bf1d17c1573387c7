package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/model"
)

type fakeRepo struct {
	inventories map[string]*model.Inventory // keyed warehouse|product
	sizes       []model.InventorySize
	aggregate   *model.Inventory
	movements   []model.StockMovement
	batchCalls  int
}

func key(warehouseID, productID string) string { return warehouseID + "|" + productID }

func newFakeRepo() *fakeRepo {
	return &fakeRepo{inventories: map[string]*model.Inventory{}}
}

func (f *fakeRepo) GetByProduct(_ context.Context, warehouseID, productID string) (*model.Inventory, error) {
	return f.inventories[key(warehouseID, productID)], nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ *dto.InventoryFilters) ([]model.Inventory, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ListSizes(_ context.Context, _, _ string) ([]model.InventorySize, error) {
	return f.sizes, nil
}

func (f *fakeRepo) SetQuantityWithMovement(_ context.Context, inv *model.Inventory, movement *model.StockMovement) error {
	f.inventories[key(inv.WarehouseID, inv.ProductID)] = inv
	f.movements = append(f.movements, *movement)
	return nil
}

func (f *fakeRepo) ReplaceSizes(_ context.Context, aggregate *model.Inventory, rows []model.InventorySize) error {
	f.aggregate = aggregate
	f.sizes = rows
	f.inventories[key(aggregate.WarehouseID, aggregate.ProductID)] = aggregate
	return nil
}

func (f *fakeRepo) IncrementBatch(_ context.Context, warehouseID string, movements []model.StockMovement) error {
	f.batchCalls++
	for i := range movements {
		k := key(warehouseID, movements[i].ProductID)
		inv := f.inventories[k]
		if inv == nil {
			inv = &model.Inventory{WarehouseID: warehouseID, ProductID: movements[i].ProductID}
			f.inventories[k] = inv
		}
		movements[i].QuantityBefore = inv.Quantity
		inv.Quantity += movements[i].QuantityChange
		movements[i].QuantityAfter = inv.Quantity
	}
	f.movements = append(f.movements, movements...)
	return nil
}

func (f *fakeRepo) ListMovements(_ context.Context, _, _ string, _, _ int) ([]model.StockMovement, int, error) {
	return f.movements, len(f.movements), nil
}

func newUseCase(repo *fakeRepo) *inventoryUseCase {
	return &inventoryUseCase{repo: repo, logger: zap.NewNop()}
}

func TestNormalizeSizeRows(t *testing.T) {
	rows, total := NormalizeSizeRows("w1", "p1", []dto.SizeRowInput{
		{SizeCode: "A", Quantity: 3},
		{SizeCode: "B", Quantity: 0},
		{SizeCode: "", Quantity: 5},
	})

	require.Len(t, rows, 2, "empty size code is dropped")
	assert.Equal(t, "A", rows[0].SizeCode)
	assert.Equal(t, int64(3), rows[0].Quantity)
	assert.Equal(t, "B", rows[1].SizeCode)
	assert.Equal(t, int64(0), rows[1].Quantity, "zero-quantity row is retained")
	assert.Equal(t, int64(3), total)
}

func TestNormalizeSizeRowsCoercesQuantities(t *testing.T) {
	rows, total := NormalizeSizeRows("w1", "p1", []dto.SizeRowInput{
		{SizeCode: "A", Quantity: 2.9},
		{SizeCode: "B", Quantity: -4},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].Quantity, "fractional quantities are floored")
	assert.Equal(t, int64(0), rows[1].Quantity, "negative quantities clamp to zero")
	assert.Equal(t, int64(2), total)
}

func TestReplaceSizesRecomputesAggregate(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo)

	agg, sizes, err := uc.ReplaceSizes(context.Background(), &dto.ReplaceSizesInput{
		WarehouseID: "w1",
		ProductID:   "p1",
		Rows: []dto.SizeRowInput{
			{SizeCode: "S", Quantity: 2},
			{SizeCode: "M", Quantity: 5},
			{SizeCode: "", Quantity: 9},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), agg.Quantity)
	assert.Len(t, sizes, 2)
	require.NotNil(t, repo.aggregate)
	assert.Equal(t, int64(7), repo.aggregate.Quantity)
}

func TestReplaceSizesReusesExistingAggregateRow(t *testing.T) {
	repo := newFakeRepo()
	repo.inventories[key("w1", "p1")] = &model.Inventory{ID: "existing-id", WarehouseID: "w1", ProductID: "p1", Quantity: 99}
	uc := newUseCase(repo)

	agg, _, err := uc.ReplaceSizes(context.Background(), &dto.ReplaceSizesInput{
		WarehouseID: "w1",
		ProductID:   "p1",
		Rows:        []dto.SizeRowInput{{SizeCode: "S", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "existing-id", agg.ID)
	assert.Equal(t, int64(1), agg.Quantity)
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	uc := newUseCase(newFakeRepo())

	_, err := uc.SetQuantity(context.Background(), &dto.SetQuantityInput{
		WarehouseID: "w1", ProductID: "p1", Quantity: -1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetQuantityLogsMovementDelta(t *testing.T) {
	repo := newFakeRepo()
	repo.inventories[key("w1", "p1")] = &model.Inventory{ID: "inv1", WarehouseID: "w1", ProductID: "p1", Quantity: 4}
	uc := newUseCase(repo)

	inv, err := uc.SetQuantity(context.Background(), &dto.SetQuantityInput{
		WarehouseID: "w1", ProductID: "p1", Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), inv.Quantity)

	require.Len(t, repo.movements, 1)
	assert.Equal(t, int64(6), repo.movements[0].QuantityChange)
	assert.Equal(t, int64(4), repo.movements[0].QuantityBefore)
	assert.Equal(t, int64(10), repo.movements[0].QuantityAfter)
}

func TestProcessReturnStockValidatesBeforeStoreCall(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	cases := []*dto.ProcessReturnInput{
		{WarehouseID: "w1", Items: nil},
		{WarehouseID: "w1", Items: []dto.ReturnItemInput{}},
		{WarehouseID: "w1", Items: []dto.ReturnItemInput{{ProductID: "", Quantity: 2}}},
		{WarehouseID: "w1", Items: []dto.ReturnItemInput{{ProductID: "p1", Quantity: 0}}},
		{WarehouseID: "w1", Items: []dto.ReturnItemInput{{ProductID: "p1", Quantity: -3}}},
		{WarehouseID: "", Items: []dto.ReturnItemInput{{ProductID: "p1", Quantity: 1}}},
	}
	for _, input := range cases {
		err := uc.ProcessReturnStock(ctx, input)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	assert.Zero(t, repo.batchCalls, "no store call before validation passes")
}

func TestProcessReturnStockAppliesBatch(t *testing.T) {
	repo := newFakeRepo()
	repo.inventories[key("w1", "p1")] = &model.Inventory{WarehouseID: "w1", ProductID: "p1", Quantity: 1}
	uc := newUseCase(repo)

	err := uc.ProcessReturnStock(context.Background(), &dto.ProcessReturnInput{
		WarehouseID: "w1",
		Items: []dto.ReturnItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
		ReferenceID: "order-9",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.batchCalls)
	assert.Equal(t, int64(3), repo.inventories[key("w1", "p1")].Quantity)
	assert.Equal(t, int64(3), repo.inventories[key("w1", "p2")].Quantity)
	require.Len(t, repo.movements, 2)
	assert.Equal(t, "return", repo.movements[0].MovementType)
	require.NotNil(t, repo.movements[0].ReferenceID)
	assert.Equal(t, "order-9", *repo.movements[0].ReferenceID)
}

func TestProcessSaleDeductionAppliesNegativeBatch(t *testing.T) {
	repo := newFakeRepo()
	repo.inventories[key("w1", "p1")] = &model.Inventory{WarehouseID: "w1", ProductID: "p1", Quantity: 10}
	uc := newUseCase(repo)

	err := uc.ProcessSaleDeduction(context.Background(), &dto.ProcessSaleInput{
		WarehouseID: "w1",
		Items:       []dto.ReturnItemInput{{ProductID: "p1", Quantity: 4}},
		ReferenceID: "order-3",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.batchCalls)
	assert.Equal(t, int64(6), repo.inventories[key("w1", "p1")].Quantity)
	require.Len(t, repo.movements, 1)
	assert.Equal(t, "sale", repo.movements[0].MovementType)
	assert.Equal(t, int64(-4), repo.movements[0].QuantityChange)
	require.NotNil(t, repo.movements[0].ReferenceID)
	assert.Equal(t, "order-3", *repo.movements[0].ReferenceID)
}

func TestProcessSaleDeductionValidates(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	cases := []*dto.ProcessSaleInput{
		{WarehouseID: "", Items: []dto.ReturnItemInput{{ProductID: "p1", Quantity: 1}}},
		{WarehouseID: "w1", Items: nil},
		{WarehouseID: "w1", Items: []dto.ReturnItemInput{{ProductID: "", Quantity: 1}}},
		{WarehouseID: "w1", Items: []dto.ReturnItemInput{{ProductID: "p1", Quantity: 0}}},
	}
	for _, input := range cases {
		err := uc.ProcessSaleDeduction(ctx, input)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	assert.Zero(t, repo.batchCalls)
}

func TestGetInventoryReturnsZeroForUnknownPair(t *testing.T) {
	uc := newUseCase(newFakeRepo())

	inv, sizes, err := uc.GetInventory(context.Background(), "w1", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.Quantity)
	assert.Empty(t, sizes)
}
