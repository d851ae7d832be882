package kitchen

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/appetiteclub/gourmet/internal/order"
	"github.com/google/uuid"
)

var t0 = time.Date(2026, 10, 14, 19, 0, 0, 0, time.UTC)

func line(itemID, stationID string) order.OrderItem {
	return order.OrderItem{
		CartItem:      order.CartItem{CartItemID: uuid.New(), ItemID: itemID, StationID: stationID},
		KitchenStatus: "queued",
	}
}

func placed(at time.Time, items ...order.OrderItem) order.Order {
	for i := range items {
		if items[i].ArrivedAt.IsZero() {
			items[i].ArrivedAt = at
		}
	}
	return order.Order{OrderID: uuid.New(), PlacedAt: at, Status: order.StatusPlaced, Items: items}
}

func TestProjectKitchenViewColumns(t *testing.T) {
	orders := []order.Order{
		placed(t0.Add(5*time.Minute), line("pizza", "ovens"), line("mojito", "drinks-bar")),
		placed(t0, line("caesar-salad", "salads"), line("pizza", "ovens")),
	}

	view := ProjectKitchenView(orders, t0.Add(10*time.Minute))

	wantOrder := []string{"ovens", "salads", "pan-fry", "entree", "apps"}
	if len(view.Columns) != len(wantOrder) {
		t.Fatalf("columns = %d, want %d", len(view.Columns), len(wantOrder))
	}
	for i, id := range wantOrder {
		if view.Columns[i].StationID != id {
			t.Errorf("column[%d] = %s, want %s", i, view.Columns[i].StationID, id)
		}
	}

	ovens, _ := view.Column("ovens")
	if len(ovens.Items) != 2 {
		t.Fatalf("ovens items = %d, want 2", len(ovens.Items))
	}
	if !ovens.Items[0].PlacedAt.Equal(t0) {
		t.Error("oldest order should come first")
	}

	if _, ok := view.Column("drinks-bar"); ok {
		t.Error("drinks bar should not appear on the kitchen line")
	}
	if !view.HasItems() {
		t.Error("HasItems() = false, want true")
	}
}

func TestProjectKitchenViewEmpty(t *testing.T) {
	view := ProjectKitchenView([]order.Order{placed(t0, line("mojito", "drinks-bar"))}, t0)

	if view.HasItems() {
		t.Error("HasItems() = true for drinks only")
	}
	for _, c := range view.Columns {
		if c.Items == nil {
			t.Errorf("column %s has nil items", c.StationID)
		}
	}
}

func TestProjectKitchenViewUnknownStation(t *testing.T) {
	view := ProjectKitchenView([]order.Order{placed(t0, line("kebab", "grill"))}, t0)

	col, ok := view.Column("grill")
	if !ok {
		t.Fatal("unknown station should get its own column")
	}
	if view.Columns[len(view.Columns)-1].StationID != "grill" {
		t.Error("unknown station should come after the fixed stations")
	}
	if col.Name != "grill" {
		t.Errorf("name = %s, want raw id", col.Name)
	}
	if col.Items[0].PrepMinutes != 10 {
		t.Errorf("prep = %d, want default 10", col.Items[0].PrepMinutes)
	}
}

func TestProjectKitchenViewTimers(t *testing.T) {
	cookAt := t0.Add(2 * time.Minute)
	bumpAt := t0.Add(9 * time.Minute)

	queued := line("pizza", "ovens")
	cooking := line("caesar-salad", "salads")
	cooking.KitchenStatus = "cooking"
	cooking.CookStartedAt = &cookAt
	bumped := line("filet-mignon", "entree")
	bumped.KitchenStatus = "bumped"
	bumped.CookStartedAt = &cookAt
	bumped.BumpedAt = &bumpAt

	now := t0.Add(8 * time.Minute)
	view := ProjectKitchenView([]order.Order{placed(t0, queued, cooking, bumped)}, now)

	tests := []struct {
		name          string
		stationID     string
		wantPrep      int
		wantRemaining time.Duration
		wantReady     bool
		wantWait      time.Duration
		wantCook      time.Duration
	}{
		{name: "queued", stationID: "ovens", wantPrep: 12, wantRemaining: 4 * time.Minute, wantWait: 8 * time.Minute, wantCook: 0},
		{name: "cooking", stationID: "salads", wantPrep: 6, wantRemaining: 0, wantReady: true, wantWait: 2 * time.Minute, wantCook: 6 * time.Minute},
		{name: "bumped", stationID: "entree", wantPrep: 14, wantRemaining: 6 * time.Minute, wantWait: 2 * time.Minute, wantCook: 7 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, _ := view.Column(tt.stationID)
			if len(col.Items) != 1 {
				t.Fatalf("items = %d, want 1", len(col.Items))
			}
			item := col.Items[0]
			if item.PrepMinutes != tt.wantPrep {
				t.Errorf("PrepMinutes = %d, want %d", item.PrepMinutes, tt.wantPrep)
			}
			if want := t0.Add(time.Duration(tt.wantPrep) * time.Minute); !item.ReadyAt.Equal(want) {
				t.Errorf("ReadyAt = %v, want %v", item.ReadyAt, want)
			}
			if item.Remaining != tt.wantRemaining || item.Ready != tt.wantReady {
				t.Errorf("Remaining = %v ready=%v, want %v ready=%v", item.Remaining, item.Ready, tt.wantRemaining, tt.wantReady)
			}
			if item.ElapsedSinceArrival != 8*time.Minute {
				t.Errorf("ElapsedSinceArrival = %v, want 8m", item.ElapsedSinceArrival)
			}
			if item.WaitToCook != tt.wantWait {
				t.Errorf("WaitToCook = %v, want %v", item.WaitToCook, tt.wantWait)
			}
			if item.CookTime != tt.wantCook {
				t.Errorf("CookTime = %v, want %v", item.CookTime, tt.wantCook)
			}
		})
	}
}

func TestProjectKitchenViewArrivedAtFallback(t *testing.T) {
	item := line("pizza", "ovens")
	o := order.Order{OrderID: uuid.New(), PlacedAt: t0, Items: []order.OrderItem{item}}

	view := ProjectKitchenView([]order.Order{o}, t0.Add(3*time.Minute))
	col, _ := view.Column("ovens")
	if col.Items[0].ElapsedSinceArrival != 3*time.Minute {
		t.Errorf("ElapsedSinceArrival = %v, want 3m", col.Items[0].ElapsedSinceArrival)
	}
}

func TestProjectKitchenViewDoesNotMutate(t *testing.T) {
	orders := []order.Order{
		placed(t0.Add(time.Minute), line("pizza", "ovens")),
		placed(t0, line("caesar-salad", "salads")),
	}
	firstID := orders[0].OrderID

	ProjectKitchenView(orders, t0)

	if orders[0].OrderID != firstID {
		t.Error("ProjectKitchenView() reordered the input")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "00:00"},
		{in: 59*time.Second + 999*time.Millisecond, want: "00:59"},
		{in: 4*time.Minute + 5*time.Second, want: "04:05"},
		{in: 125 * time.Minute, want: "125:00"},
		{in: -time.Minute, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.in); got != tt.want {
				t.Errorf("FormatDuration(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestItemViewJSON(t *testing.T) {
	view := ProjectKitchenView([]order.Order{placed(t0, line("pizza", "ovens"))}, t0.Add(2*time.Minute))
	col, _ := view.Column("ovens")

	data, err := json.Marshal(col.Items[0])
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["itemId"] != "pizza" || got["kitchenStatus"] != "queued" {
		t.Errorf("order line fields missing: %s", data)
	}
	if got["remainingLabel"] != "10:00" || got["remainingMs"].(float64) != 600000 {
		t.Errorf("remaining = %v / %v", got["remainingLabel"], got["remainingMs"])
	}
	if got["prepMinutes"].(float64) != 12 {
		t.Errorf("prepMinutes = %v, want 12", got["prepMinutes"])
	}
}
