package listener

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/model"
)

type fakeUseCase struct {
	returns    []*dto.ProcessReturnInput
	deductions []*dto.ProcessSaleInput
}

func (f *fakeUseCase) GetInventory(_ context.Context, _, _ string) (*model.Inventory, []model.InventorySize, error) {
	return nil, nil, nil
}

func (f *fakeUseCase) ListInventory(_ context.Context, _ *dto.InventoryFilters) ([]model.Inventory, int, error) {
	return nil, 0, nil
}

func (f *fakeUseCase) SetQuantity(_ context.Context, _ *dto.SetQuantityInput) (*model.Inventory, error) {
	return nil, nil
}

func (f *fakeUseCase) ReplaceSizes(_ context.Context, _ *dto.ReplaceSizesInput) (*model.Inventory, []model.InventorySize, error) {
	return nil, nil, nil
}

func (f *fakeUseCase) ProcessReturnStock(_ context.Context, input *dto.ProcessReturnInput) error {
	f.returns = append(f.returns, input)
	return nil
}

func (f *fakeUseCase) ProcessSaleDeduction(_ context.Context, input *dto.ProcessSaleInput) error {
	f.deductions = append(f.deductions, input)
	return nil
}

func (f *fakeUseCase) ListMovements(_ context.Context, _, _ string, _, _ int) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func newTestListener() (*OrderListener, *fakeUseCase) {
	uc := &fakeUseCase{}
	return NewOrderListener(nil, uc, zap.NewNop()), uc
}

const orderEventBody = `{
	"event_id": "evt-1",
	"event_type": "%s",
	"payload": {
		"id": "order-7",
		"warehouse_id": "w1",
		"items": [
			{"product_id": "p1", "quantity": 2},
			{"product_id": "p2", "quantity": 1}
		]
	}
}`

func eventWithType(eventType string) []byte {
	return []byte(fmt.Sprintf(orderEventBody, eventType))
}

func TestListenerSkipsMalformedEvents(t *testing.T) {
	l, uc := newTestListener()
	ctx := context.Background()

	for _, payload := range [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"event_type": 42}`),
		[]byte(``),
	} {
		l.processMessage(ctx, payload)
	}

	assert.Empty(t, uc.returns)
	assert.Empty(t, uc.deductions)
}

func TestListenerRestocksOnReturnAndCancellation(t *testing.T) {
	l, uc := newTestListener()
	ctx := context.Background()

	l.processMessage(ctx, eventWithType("OrderReturned"))
	l.processMessage(ctx, eventWithType("OrderCancelled"))

	require.Len(t, uc.returns, 2)
	assert.Empty(t, uc.deductions)

	input := uc.returns[0]
	assert.Equal(t, "w1", input.WarehouseID)
	assert.Equal(t, "order-7", input.ReferenceID)
	assert.Equal(t, "evt-1", input.RequestID)
	assert.Equal(t, "system", input.UserRole)
	require.Len(t, input.Items, 2)
	assert.Equal(t, "p1", input.Items[0].ProductID)
	assert.Equal(t, int64(2), input.Items[0].Quantity)
}

func TestListenerDeductsOnCompletedOrder(t *testing.T) {
	l, uc := newTestListener()

	l.processMessage(context.Background(), eventWithType("OrderCompleted"))

	assert.Empty(t, uc.returns)
	require.Len(t, uc.deductions, 1)

	input := uc.deductions[0]
	assert.Equal(t, "w1", input.WarehouseID)
	assert.Equal(t, "order-7", input.ReferenceID)
	require.Len(t, input.Items, 2)
	assert.Equal(t, "p2", input.Items[1].ProductID)
	assert.Equal(t, int64(1), input.Items[1].Quantity)
}

func TestListenerIgnoresUnrelatedEvents(t *testing.T) {
	l, uc := newTestListener()

	l.processMessage(context.Background(), eventWithType("OrderCreated"))

	assert.Empty(t, uc.returns)
	assert.Empty(t, uc.deductions)
}
