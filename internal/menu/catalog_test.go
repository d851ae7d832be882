package menu

import (
	"testing"

	"github.com/appetiteclub/gourmet/pkg/enums/station"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	if err := ValidateCatalog(DefaultItems()); err != nil {
		t.Fatalf("ValidateCatalog(DefaultItems()) error = %v", err)
	}
}

func TestCatalogGetItemsByStation(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name      string
		stationID string
		wantIDs   []string
	}{
		{name: "ovens", stationID: "ovens", wantIDs: []string{"pizza"}},
		{name: "drinks", stationID: "drinks-bar", wantIDs: []string{"mojito"}},
		{name: "unknown", stationID: "grill", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.GetItemsByStation(tt.stationID)
			if got == nil {
				t.Fatal("GetItemsByStation() returned nil slice")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("GetItemsByStation() len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("item[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCatalogOrderPreserved(t *testing.T) {
	items := []MenuItem{
		{ID: "b", StationID: "apps"},
		{ID: "a", StationID: "apps"},
		{ID: "c", StationID: "apps"},
	}
	c := NewCatalog(items)

	got := c.GetItemsByStation("apps")
	want := []string{"b", "a", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("item[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestCatalogGetMenuItem(t *testing.T) {
	c := DefaultCatalog()

	item, ok := c.GetMenuItem("pizza")
	if !ok {
		t.Fatal("GetMenuItem(pizza) not found")
	}
	if item.BaseID != 100 || item.StationID != station.Stations.Ovens.ID {
		t.Errorf("GetMenuItem(pizza) = %+v", item)
	}

	if _, ok := c.GetMenuItem("sushi"); ok {
		t.Error("GetMenuItem(sushi) should be absent")
	}
}

func TestCatalogReadsAreCopies(t *testing.T) {
	c := DefaultCatalog()

	item, _ := c.GetMenuItem("pizza")
	item.Ingredients[0].Name = "Changed"
	item.Name = "Changed"

	again, _ := c.GetMenuItem("pizza")
	if again.Name == "Changed" || again.Ingredients[0].Name == "Changed" {
		t.Error("GetMenuItem() leaked internal state")
	}
}

func TestCatalogSkipsDuplicates(t *testing.T) {
	c := NewCatalog([]MenuItem{
		{ID: "x", Name: "First", StationID: "apps"},
		{ID: "x", Name: "Second", StationID: "apps"},
	})

	if len(c.Items()) != 1 {
		t.Fatalf("Items() len = %d, want 1", len(c.Items()))
	}
	item, _ := c.GetMenuItem("x")
	if item.Name != "First" {
		t.Errorf("GetMenuItem(x).Name = %s, want First", item.Name)
	}
}

func TestCatalogGetStationName(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		stationID string
		want      string
	}{
		{stationID: "pan-fry", want: "Pan Fry"},
		{stationID: "drinks-bar", want: "Drinks & Bar"},
		{stationID: "grill", want: "grill"},
	}

	for _, tt := range tests {
		t.Run(tt.stationID, func(t *testing.T) {
			if got := c.GetStationName(tt.stationID); got != tt.want {
				t.Errorf("GetStationName(%s) = %s, want %s", tt.stationID, got, tt.want)
			}
		})
	}
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name       string
		items      []MenuItem
		wantErrors int
	}{
		{
			name:       "valid",
			items:      []MenuItem{{ID: "a", StationID: "apps", Ingredients: []Ingredient{{ID: "x", BitValue: 1}, {ID: "y", BitValue: 2}}}},
			wantErrors: 0,
		},
		{
			name:       "duplicateID",
			items:      []MenuItem{{ID: "a", StationID: "apps"}, {ID: "a", StationID: "apps"}},
			wantErrors: 1,
		},
		{
			name:       "missingID",
			items:      []MenuItem{{ID: " ", StationID: "apps"}},
			wantErrors: 1,
		},
		{
			name:       "unknownStation",
			items:      []MenuItem{{ID: "a", StationID: "grill"}},
			wantErrors: 1,
		},
		{
			name:       "notPowerOfTwo",
			items:      []MenuItem{{ID: "a", StationID: "apps", Ingredients: []Ingredient{{ID: "x", BitValue: 3}}}},
			wantErrors: 1,
		},
		{
			name:       "collidingBits",
			items:      []MenuItem{{ID: "a", StationID: "apps", Ingredients: []Ingredient{{ID: "x", BitValue: 2}, {ID: "y", BitValue: 2}}}},
			wantErrors: 1,
		},
		{
			name:       "zeroBit",
			items:      []MenuItem{{ID: "a", StationID: "apps", Ingredients: []Ingredient{{ID: "x", BitValue: 0}}}},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.items)
			if tt.wantErrors == 0 {
				if err != nil {
					t.Errorf("ValidateCatalog() error = %v, want nil", err)
				}
				return
			}
			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("ValidateCatalog() error type = %T, want ValidationErrors", err)
			}
			if len(verrs) != tt.wantErrors {
				t.Errorf("ValidateCatalog() errors = %v, want %d", verrs, tt.wantErrors)
			}
		})
	}
}
