package event

import "time"

const (
	KitchenItemsTopic            = "kitchen.items"
	EventKitchenItemStatusChange = "kitchen.item.status_changed"
)

type KitchenItemStatusChangedEvent struct {
	EventType      string     `json:"event_type"`
	OccurredAt     time.Time  `json:"occurred_at"`
	OrderID        string     `json:"order_id"`
	CartItemID     string     `json:"cart_item_id"`
	ItemID         string     `json:"item_id"`
	Station        string     `json:"station"`
	VariantID      int        `json:"variant_id"`
	NewStatus      string     `json:"new_status"`
	PreviousStatus string     `json:"previous_status"`
	CookStartedAt  *time.Time `json:"cook_started_at,omitempty"`
	BumpedAt       *time.Time `json:"bumped_at,omitempty"`
}
