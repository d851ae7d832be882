package menu

import (
	"github.com/appetiteclub/gourmet/pkg/enums/station"
)

// Catalog is the immutable menu defined at process start.
type Catalog struct {
	items    []MenuItem
	byID     map[string]int
	stations []station.Station
}

// NewCatalog builds a catalog over items, preserving their order.
func NewCatalog(items []MenuItem) *Catalog {
	c := &Catalog{
		items:    make([]MenuItem, 0, len(items)),
		byID:     make(map[string]int, len(items)),
		stations: append([]station.Station(nil), station.All...),
	}
	for _, item := range items {
		if _, dup := c.byID[item.ID]; dup {
			continue
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item.clone())
	}
	return c
}

// DefaultCatalog returns the house menu.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultItems())
}

// DefaultItems lists the house menu in display order.
func DefaultItems() []MenuItem {
	return []MenuItem{
		{
			ID:        "pizza",
			Name:      "Signature Pizza",
			StationID: station.Stations.Ovens.ID,
			BaseID:    100,
			ModelType: "pizza",
			Ingredients: []Ingredient{
				{ID: "plate", Name: "Plate", BitValue: 1},
				{ID: "pizza", Name: "Pizza", BitValue: 2},
				{ID: "steam", Name: "Steam", BitValue: 4},
			},
		},
		{
			ID:               "caesar-salad",
			Name:             "Caesar Salad",
			StationID:        station.Stations.Salads.ID,
			BaseID:           200,
			ModelType:        "placeholder",
			PlaceholderShape: "sphere",
			Ingredients: []Ingredient{
				{ID: "lettuce", Name: "Lettuce", BitValue: 1},
				{ID: "croutons", Name: "Croutons", BitValue: 2},
				{ID: "parmesan", Name: "Parmesan", BitValue: 4},
			},
		},
		{
			ID:               "mojito",
			Name:             "Mojito",
			StationID:        station.Stations.DrinksBar.ID,
			BaseID:           300,
			ModelType:        "placeholder",
			PlaceholderShape: "cylinder",
			Ingredients: []Ingredient{
				{ID: "mint", Name: "Mint", BitValue: 1},
				{ID: "lime", Name: "Lime", BitValue: 2},
				{ID: "rum", Name: "Rum", BitValue: 4},
			},
		},
		{
			ID:               "truffle-fries",
			Name:             "Truffle Fries",
			StationID:        station.Stations.Apps.ID,
			BaseID:           400,
			ModelType:        "placeholder",
			PlaceholderShape: "box",
			Ingredients: []Ingredient{
				{ID: "fries", Name: "Fries", BitValue: 1},
				{ID: "truffle-oil", Name: "Truffle Oil", BitValue: 2},
				{ID: "parmesan", Name: "Parmesan", BitValue: 4},
			},
		},
		{
			ID:               "garlic-butter-shrimp",
			Name:             "Garlic Butter Shrimp",
			StationID:        station.Stations.PanFry.ID,
			BaseID:           500,
			ModelType:        "placeholder",
			PlaceholderShape: "torus",
			Ingredients: []Ingredient{
				{ID: "shrimp", Name: "Shrimp", BitValue: 1},
				{ID: "garlic-butter", Name: "Garlic Butter", BitValue: 2},
				{ID: "parsley", Name: "Parsley", BitValue: 4},
			},
		},
		{
			ID:               "filet-mignon",
			Name:             "Filet Mignon",
			StationID:        station.Stations.Entree.ID,
			BaseID:           600,
			ModelType:        "placeholder",
			PlaceholderShape: "cylinder",
			Ingredients: []Ingredient{
				{ID: "filet", Name: "Filet", BitValue: 1},
				{ID: "peppercorn-sauce", Name: "Peppercorn Sauce", BitValue: 2},
				{ID: "mash", Name: "Mash", BitValue: 4},
			},
		},
	}
}

// Items returns every menu item in catalog order.
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.clone())
	}
	return out
}

// Stations returns the known stations in menu order.
func (c *Catalog) Stations() []station.Station {
	return append([]station.Station(nil), c.stations...)
}

// GetItemsByStation returns the items of a station in catalog order.
func (c *Catalog) GetItemsByStation(stationID string) []MenuItem {
	out := make([]MenuItem, 0)
	for _, item := range c.items {
		if item.StationID == stationID {
			out = append(out, item.clone())
		}
	}
	return out
}

// GetMenuItem looks up an item by id.
func (c *Catalog) GetMenuItem(itemID string) (MenuItem, bool) {
	idx, ok := c.byID[itemID]
	if !ok {
		return MenuItem{}, false
	}
	return c.items[idx].clone(), true
}

// GetStationName returns the display name of a station, or the raw id when unknown.
func (c *Catalog) GetStationName(stationID string) string {
	for _, s := range c.stations {
		if s.ID == stationID {
			return s.Label()
		}
	}
	return stationID
}
