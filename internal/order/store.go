package order

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/appetiteclub/gourmet/internal/menu"
	"github.com/appetiteclub/gourmet/internal/storage"
	"github.com/appetiteclub/gourmet/pkg/enums/kitchenstatus"
	"github.com/appetiteclub/gourmet/pkg/enums/station"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"
)

const (
	baseETAMinutes    = 12
	perItemETAMinutes = 4
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
	ErrInvalidStatus = errors.New("invalid kitchen status")
)

// OrderStore is what the HTTP layer needs from the store.
type OrderStore interface {
	AddToCart(ctx context.Context, item menu.MenuItem, active menu.ActiveIngredients, variantID int) CartItem
	RemoveFromCart(ctx context.Context, cartItemID uuid.UUID)
	ClearCart(ctx context.Context)
	PlaceOrder(ctx context.Context) *Order
	GetOrderByID(orderID uuid.UUID) *Order
	UpdateKitchenItemStatus(ctx context.Context, orderID, cartItemID uuid.UUID, next string) (*Order, error)
	Cart() []CartItem
	Orders() []Order
	Snapshot() Snapshot
}

// Store owns the cart and the orders. Every mutation is written through to
// the KV under CartKey and OrdersKey; memory stays authoritative when a write fails.
type Store struct {
	mu        sync.RWMutex
	kv        storage.KV
	publisher events.Publisher
	logger    aqm.Logger
	now       func() time.Time
	newID     func() uuid.UUID

	cart   []CartItem
	orders []Order
}

type Option func(*Store)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the id source for cart items and orders.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithPublisher enables event publication.
func WithPublisher(pub events.Publisher) Option {
	return func(s *Store) {
		s.publisher = pub
	}
}

func NewStore(kv storage.KV, logger aqm.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if kv == nil {
		kv = storage.NewMemory()
	}
	s := &Store{
		kv:     kv,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  aqm.GenerateNewID,
		cart:   []CartItem{},
		orders: []Order{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces memory state with what the KV holds. Missing or malformed
// collections load as empty.
func (s *Store) Load(ctx context.Context) {
	var cart []CartItem
	if !s.read(ctx, CartKey, &cart) {
		cart = nil
	}
	var orders []Order
	if !s.read(ctx, OrdersKey, &orders) {
		orders = nil
	}

	if cart == nil {
		cart = []CartItem{}
	}
	if orders == nil {
		orders = []Order{}
	}
	for i := range orders {
		normalizeOrder(&orders[i])
	}

	s.mu.Lock()
	s.cart = cart
	s.orders = orders
	s.mu.Unlock()

	s.logger.Info("order store loaded", "cart_items", len(cart), "orders", len(orders))
}

// read decodes key into dst and reports whether dst holds usable data.
func (s *Store) read(ctx context.Context, key string, dst interface{}) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("cannot read persisted state", "key", key, "error", err)
		}
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Info("discarding malformed persisted state", "key", key, "error", err)
		return false
	}
	return true
}

func normalizeOrder(o *Order) {
	if o.Status == "" {
		o.Status = StatusPlaced
	}
	for i := range o.Items {
		item := &o.Items[i]
		item.KitchenStatus = kitchenstatus.Normalize(item.KitchenStatus).Code()
		if item.ArrivedAt.IsZero() {
			item.ArrivedAt = o.PlacedAt
		}
	}
}

// AddToCart appends a new cart line. The toggles are copied.
func (s *Store) AddToCart(ctx context.Context, item menu.MenuItem, active menu.ActiveIngredients, variantID int) CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if active == nil {
		active = menu.ActiveIngredients{}
	}
	ci := CartItem{
		CartItemID:        s.newID(),
		ItemID:            item.ID,
		Name:              item.Name,
		StationID:         item.StationID,
		ActiveIngredients: active.Clone(),
		VariantID:         variantID,
		AddedAt:           s.now(),
	}
	s.cart = append(s.cart, ci)
	s.persistCart(ctx)

	return ci.clone()
}

// RemoveFromCart drops the matching line. Unknown ids are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, cartItemID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]CartItem, 0, len(s.cart))
	for _, c := range s.cart {
		if c.CartItemID != cartItemID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(s.cart) {
		return
	}
	s.cart = kept
	s.persistCart(ctx)
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []CartItem{}
	s.persistCart(ctx)
}

// PlaceOrder drains the cart into a new order at the head of the list.
// It returns nil and changes nothing when the cart is empty.
func (s *Store) PlaceOrder(ctx context.Context) *Order {
	s.mu.Lock()

	if len(s.cart) == 0 {
		s.mu.Unlock()
		return nil
	}

	now := s.now()
	eta := ETAMinutes(s.cart)
	o := Order{
		OrderID:    s.newID(),
		PlacedAt:   now,
		ETAMinutes: eta,
		ETAReadyAt: now.Add(time.Duration(eta) * time.Minute),
		Status:     StatusPlaced,
		Items:      make([]OrderItem, 0, len(s.cart)),
	}
	for _, c := range s.cart {
		o.Items = append(o.Items, OrderItem{
			CartItem:      c.clone(),
			KitchenStatus: kitchenstatus.Statuses.Queued.Code(),
			ArrivedAt:     now,
		})
	}

	s.orders = append([]Order{o}, s.orders...)
	s.cart = []CartItem{}
	// Cart before orders: after a crash the old cart and the new order never coexist
	s.persistCart(ctx)
	s.persistOrders(ctx)

	placed := o.clone()
	s.mu.Unlock()

	s.publishOrderPlaced(ctx, placed)
	return &placed
}

// ETAMinutes is the base ETA plus four minutes per line that needs the kitchen.
func ETAMinutes(items []CartItem) int {
	n := 0
	for _, item := range items {
		if !station.IsDrinks(item.StationID) {
			n++
		}
	}
	return baseETAMinutes + perItemETAMinutes*n
}

func (s *Store) GetOrderByID(orderID uuid.UUID) *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.OrderID == orderID {
			found := o.clone()
			return &found
		}
	}
	return nil
}

// UpdateKitchenItemStatus moves one order line forward. Lines only advance
// queued, cooking, bumped. Once bumped a line never changes again, and the
// cook and bump timestamps are set only the first time.
func (s *Store) UpdateKitchenItemStatus(ctx context.Context, orderID, cartItemID uuid.UUID, next string) (*Order, error) {
	target := kitchenstatus.ByName(next)
	if target == nil || *target == kitchenstatus.Statuses.Queued {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()

	oi := s.indexOfOrder(orderID)
	if oi < 0 {
		s.mu.Unlock()
		return nil, ErrOrderNotFound
	}
	o := &s.orders[oi]

	ii := -1
	for i := range o.Items {
		if o.Items[i].CartItemID == cartItemID {
			ii = i
			break
		}
	}
	if ii < 0 {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}

	item := &o.Items[ii]
	previous := kitchenstatus.Normalize(item.KitchenStatus)
	changed := applyTransition(item, previous, *target, s.now())

	if changed {
		s.persistOrders(ctx)
	}
	updated := o.clone()
	line := updated.Items[ii]
	s.mu.Unlock()

	if changed {
		s.publishKitchenStatusChanged(ctx, updated.OrderID, line, previous)
	}
	return &updated, nil
}

func applyTransition(item *OrderItem, current, target kitchenstatus.Status, now time.Time) bool {
	if current.Terminal() || current.After(target) {
		return false
	}

	changed := false
	switch target {
	case kitchenstatus.Statuses.Cooking:
		if item.CookStartedAt == nil {
			item.CookStartedAt = &now
			changed = true
		}
	case kitchenstatus.Statuses.Bumped:
		if item.BumpedAt == nil {
			item.BumpedAt = &now
			changed = true
		}
	}

	if item.KitchenStatus != target.Code() {
		item.KitchenStatus = target.Code()
		changed = true
	}
	return changed
}

func (s *Store) indexOfOrder(orderID uuid.UUID) int {
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

// SeedHistory installs orders when the store holds none. It reports whether it did.
func (s *Store) SeedHistory(ctx context.Context, orders []Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.orders) > 0 || len(orders) == 0 {
		return false
	}
	s.orders = cloneOrders(orders)
	s.persistOrders(ctx)
	return true
}

// Reset empties both the cart and the order history.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []CartItem{}
	s.orders = []Order{}
	s.persistCart(ctx)
	s.persistOrders(ctx)
}

// Cart returns a copy of the cart in insertion order.
func (s *Store) Cart() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

// Orders returns a copy of the orders, most recent first.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Cart: cloneCart(s.cart), Orders: cloneOrders(s.orders)}
}

func (s *Store) persistCart(ctx context.Context) {
	s.write(ctx, CartKey, s.cart)
}

func (s *Store) persistOrders(ctx context.Context) {
	s.write(ctx, OrdersKey, s.orders)
}

func (s *Store) write(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("cannot encode state", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.logger.Error("cannot persist state", "key", key, "error", err)
	}
}
