package order

import (
	"context"

	"github.com/appetiteclub/gourmet/pkg"
	"github.com/appetiteclub/gourmet/pkg/enums/kitchenstatus"
	"github.com/appetiteclub/gourmet/pkg/event"
	"github.com/google/uuid"
)

func (s *Store) publishOrderPlaced(ctx context.Context, o Order) {
	if s.publisher == nil {
		return
	}

	lines := make([]event.OrderPlacedLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, event.OrderPlacedLine{
			CartItemID: item.CartItemID.String(),
			ItemID:     item.ItemID,
			Name:       item.Name,
			StationID:  item.StationID,
			VariantID:  item.VariantID,
		})
	}

	evt := event.OrderPlacedEvent{
		EventType:  event.EventOrderPlaced,
		OccurredAt: o.PlacedAt,
		OrderID:    o.OrderID.String(),
		ETAMinutes: o.ETAMinutes,
		ETAReadyAt: o.ETAReadyAt,
		Items:      lines,
	}

	if err := pkg.PublishJSON(ctx, s.publisher, event.OrdersTopic, evt); err != nil {
		s.logger.Error("failed to publish order placed event", "order_id", evt.OrderID, "error", err)
		return
	}
	s.logger.Debug("order placed event published", "order_id", evt.OrderID, "items", len(lines))
}

func (s *Store) publishKitchenStatusChanged(ctx context.Context, orderID uuid.UUID, item OrderItem, previous kitchenstatus.Status) {
	if s.publisher == nil {
		return
	}

	evt := event.KitchenItemStatusChangedEvent{
		EventType:      event.EventKitchenItemStatusChange,
		OccurredAt:     s.now(),
		OrderID:        orderID.String(),
		CartItemID:     item.CartItemID.String(),
		ItemID:         item.ItemID,
		Station:        item.StationID,
		VariantID:      item.VariantID,
		NewStatus:      item.KitchenStatus,
		PreviousStatus: previous.Code(),
		CookStartedAt:  item.CookStartedAt,
		BumpedAt:       item.BumpedAt,
	}

	if err := pkg.PublishJSON(ctx, s.publisher, event.KitchenItemsTopic, evt); err != nil {
		s.logger.Error("failed to publish kitchen status event", "order_id", evt.OrderID, "cart_item_id", evt.CartItemID, "error", err)
		return
	}
	s.logger.Debug("kitchen status event published", "order_id", evt.OrderID, "status", evt.NewStatus)
}
