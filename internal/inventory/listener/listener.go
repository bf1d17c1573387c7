package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/inventory"
	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/pkg/broker"
)

// OrderListener applies order lifecycle events from the order service to
// inventory: returns and cancellations restock, completed sales deduct.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   *zap.Logger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, logger *zap.Logger) *OrderListener {
	return &OrderListener{consumer: consumer, uc: uc, logger: logger}
}

type orderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   orderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type orderPayload struct {
	ID          string          `json:"id"`
	WarehouseID string          `json:"warehouse_id"`
	Items       []orderItemLine `json:"items"`
}

type orderItemLine struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("starting order event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping order event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read order event", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event orderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	switch event.EventType {
	case "OrderReturned", "OrderCancelled":
		l.restock(ctx, &event)
	case "OrderCompleted":
		l.deduct(ctx, &event)
	default:
		// Other lifecycle events do not touch inventory.
	}
}

func (l *OrderListener) restock(ctx context.Context, event *orderEvent) {
	items := make([]dto.ReturnItemInput, 0, len(event.Payload.Items))
	for _, line := range event.Payload.Items {
		items = append(items, dto.ReturnItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	input := &dto.ProcessReturnInput{
		WarehouseID: event.Payload.WarehouseID,
		Items:       items,
		ReferenceID: event.Payload.ID,
		RequestID:   event.EventID,
		UserRole:    "system",
	}

	if err := l.uc.ProcessReturnStock(ctx, input); err != nil {
		l.logger.Error("failed to restock from order event",
			zap.String("order_id", event.Payload.ID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}

func (l *OrderListener) deduct(ctx context.Context, event *orderEvent) {
	items := make([]dto.ReturnItemInput, 0, len(event.Payload.Items))
	for _, line := range event.Payload.Items {
		items = append(items, dto.ReturnItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	input := &dto.ProcessSaleInput{
		WarehouseID: event.Payload.WarehouseID,
		Items:       items,
		ReferenceID: event.Payload.ID,
		RequestID:   event.EventID,
		UserRole:    "system",
	}

	if err := l.uc.ProcessSaleDeduction(ctx, input); err != nil {
		l.logger.Error("failed to deduct stock from order event",
			zap.String("order_id", event.Payload.ID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}
