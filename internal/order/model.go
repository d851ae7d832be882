package order

import (
	"time"

	"github.com/appetiteclub/gourmet/internal/menu"
	"github.com/google/uuid"
)

// Storage keys for the two persisted collections.
const (
	CartKey   = "gourmet-ar-cart"
	OrdersKey = "gourmet-ar-orders"
)

// StatusPlaced is the only order status the store assigns.
const StatusPlaced = "placed"

// CartItem is one configured dish waiting in the cart.
type CartItem struct {
	CartItemID        uuid.UUID              `json:"cartItemId"`
	ItemID            string                 `json:"itemId"`
	Name              string                 `json:"name"`
	StationID         string                 `json:"stationId"`
	ActiveIngredients menu.ActiveIngredients `json:"activeIngredients"`
	VariantID         int                    `json:"variantId"`
	AddedAt           time.Time              `json:"addedAt"`
}

func (c CartItem) clone() CartItem {
	if c.ActiveIngredients != nil {
		c.ActiveIngredients = c.ActiveIngredients.Clone()
	}
	return c
}

// OrderItem is a cart item after it reached the kitchen.
type OrderItem struct {
	CartItem
	KitchenStatus string     `json:"kitchenStatus"`
	ArrivedAt     time.Time  `json:"arrivedAt"`
	CookStartedAt *time.Time `json:"cookStartedAt"`
	BumpedAt      *time.Time `json:"bumpedAt"`
}

func (i OrderItem) clone() OrderItem {
	i.CartItem = i.CartItem.clone()
	i.CookStartedAt = cloneTime(i.CookStartedAt)
	i.BumpedAt = cloneTime(i.BumpedAt)
	return i
}

type Order struct {
	OrderID    uuid.UUID   `json:"orderId"`
	PlacedAt   time.Time   `json:"placedAt"`
	ETAMinutes int         `json:"etaMinutes"`
	ETAReadyAt time.Time   `json:"etaReadyAt"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
}

func (o *Order) GetID() uuid.UUID {
	return o.OrderID
}

func (o *Order) ResourceType() string {
	return "order"
}

// ItemIDs lists the menu item ids of every line, in order.
func (o Order) ItemIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ItemID)
	}
	return ids
}

func (o Order) clone() Order {
	if o.Items != nil {
		items := make([]OrderItem, len(o.Items))
		for i, item := range o.Items {
			items[i] = item.clone()
		}
		o.Items = items
	}
	return o
}

// Snapshot is a consistent copy of the whole store.
type Snapshot struct {
	Cart   []CartItem `json:"cart"`
	Orders []Order    `json:"orders"`
}

// Baskets returns the item ids of each order, the shape the pairing recommender learns from.
func Baskets(orders []Order) [][]string {
	baskets := make([][]string, 0, len(orders))
	for _, o := range orders {
		baskets = append(baskets, o.ItemIDs())
	}
	return baskets
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneCart(cart []CartItem) []CartItem {
	out := make([]CartItem, len(cart))
	for i, c := range cart {
		out[i] = c.clone()
	}
	return out
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.clone()
	}
	return out
}
