package event

import "time"

const (
	OrdersTopic      = "orders.placed"
	EventOrderPlaced = "order.placed"
)

// OrderPlacedLine is one line of a placed order as seen by downstream consumers.
type OrderPlacedLine struct {
	CartItemID string `json:"cart_item_id"`
	ItemID     string `json:"item_id"`
	Name       string `json:"name,omitempty"`
	StationID  string `json:"station_id"`
	VariantID  int    `json:"variant_id"`
}

// OrderPlacedEvent is published once the cart drains into a new order.
type OrderPlacedEvent struct {
	EventType  string            `json:"event_type"`
	OccurredAt time.Time         `json:"occurred_at"`
	OrderID    string            `json:"order_id"`
	ETAMinutes int               `json:"eta_minutes"`
	ETAReadyAt time.Time         `json:"eta_ready_at"`
	Items      []OrderPlacedLine `json:"items"`
}
