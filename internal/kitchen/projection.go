package kitchen

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/appetiteclub/gourmet/internal/order"
	"github.com/appetiteclub/gourmet/pkg/enums/station"
	"github.com/google/uuid"
)

// ItemView is one order line on the kitchen line with its timers.
type ItemView struct {
	order.OrderItem
	OrderID     uuid.UUID `json:"orderId"`
	PlacedAt    time.Time `json:"placedAt"`
	PrepMinutes int       `json:"prepMinutes"`
	ReadyAt     time.Time `json:"readyAt"`
	Ready       bool      `json:"ready"`

	Remaining           time.Duration `json:"-"`
	ElapsedSinceArrival time.Duration `json:"-"`
	WaitToCook          time.Duration `json:"-"`
	CookTime            time.Duration `json:"-"`
}

// RemainingLabel is "Ready" once the prep time ran out, mm:ss before that.
func (v ItemView) RemainingLabel() string {
	if v.Ready {
		return "Ready"
	}
	return FormatDuration(v.Remaining)
}

func (v ItemView) MarshalJSON() ([]byte, error) {
	type alias ItemView
	return json.Marshal(struct {
		alias
		RemainingMs           int64  `json:"remainingMs"`
		RemainingLabel        string `json:"remainingLabel"`
		ElapsedSinceArrivalMs int64  `json:"elapsedSinceArrivalMs"`
		WaitToCookMs          int64  `json:"waitToCookMs"`
		WaitToCookLabel       string `json:"waitToCookLabel"`
		CookTimeMs            int64  `json:"cookTimeMs"`
		CookTimeLabel         string `json:"cookTimeLabel"`
	}{
		alias:                 alias(v),
		RemainingMs:           v.Remaining.Milliseconds(),
		RemainingLabel:        v.RemainingLabel(),
		ElapsedSinceArrivalMs: v.ElapsedSinceArrival.Milliseconds(),
		WaitToCookMs:          v.WaitToCook.Milliseconds(),
		WaitToCookLabel:       FormatDuration(v.WaitToCook),
		CookTimeMs:            v.CookTime.Milliseconds(),
		CookTimeLabel:         FormatDuration(v.CookTime),
	})
}

// Column groups the lines of one station.
type Column struct {
	StationID string     `json:"stationId"`
	Name      string     `json:"name"`
	Items     []ItemView `json:"items"`
}

type View struct {
	Now     time.Time `json:"now"`
	Columns []Column  `json:"columns"`
}

// HasItems reports whether any station has work.
func (v View) HasItems() bool {
	for _, c := range v.Columns {
		if len(c.Items) > 0 {
			return true
		}
	}
	return false
}

// Column returns the column of a station.
func (v View) Column(stationID string) (Column, bool) {
	for _, c := range v.Columns {
		if c.StationID == stationID {
			return c, true
		}
	}
	return Column{}, false
}

// ProjectKitchenView lays every non-drink line of orders out per station,
// oldest order first. Fixed stations come first in line order; lines at
// stations outside that order get extra columns in the order they appear.
func ProjectKitchenView(orders []order.Order, now time.Time) View {
	view := View{Now: now, Columns: make([]Column, 0, len(station.KitchenDisplay))}
	index := make(map[string]int, len(station.KitchenDisplay))

	for _, s := range station.KitchenDisplay {
		index[s.ID] = len(view.Columns)
		view.Columns = append(view.Columns, Column{StationID: s.ID, Name: s.Label(), Items: []ItemView{}})
	}

	sorted := make([]order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlacedAt.Before(sorted[j].PlacedAt)
	})

	for _, o := range sorted {
		for _, item := range o.Items {
			if station.IsDrinks(item.StationID) {
				continue
			}
			ci, ok := index[item.StationID]
			if !ok {
				ci = len(view.Columns)
				index[item.StationID] = ci
				view.Columns = append(view.Columns, Column{StationID: item.StationID, Name: station.NameFor(item.StationID), Items: []ItemView{}})
			}
			view.Columns[ci].Items = append(view.Columns[ci].Items, projectItem(o, item, now))
		}
	}

	return view
}

func projectItem(o order.Order, item order.OrderItem, now time.Time) ItemView {
	prep := station.PrepMinutesFor(item.StationID)
	readyAt := o.PlacedAt.Add(time.Duration(prep) * time.Minute)

	arrivedAt := item.ArrivedAt
	if arrivedAt.IsZero() {
		arrivedAt = o.PlacedAt
	}

	cookStart := now
	if item.CookStartedAt != nil {
		cookStart = *item.CookStartedAt
	}

	var cookTime time.Duration
	if item.CookStartedAt != nil {
		end := now
		if item.BumpedAt != nil {
			end = *item.BumpedAt
		}
		cookTime = nonNegative(end.Sub(*item.CookStartedAt))
	}

	remaining := nonNegative(readyAt.Sub(now))

	return ItemView{
		OrderItem:           item,
		OrderID:             o.OrderID,
		PlacedAt:            o.PlacedAt,
		PrepMinutes:         prep,
		ReadyAt:             readyAt,
		Ready:               remaining == 0,
		Remaining:           remaining,
		ElapsedSinceArrival: nonNegative(now.Sub(arrivedAt)),
		WaitToCook:          nonNegative(cookStart.Sub(arrivedAt)),
		CookTime:            cookTime,
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders d as zero padded mm:ss. Negative values render as 00:00.
func FormatDuration(d time.Duration) string {
	d = nonNegative(d)
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
