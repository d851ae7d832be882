package station

import "testing"

func TestNameFor(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "knownStation", id: "drinks-bar", want: "Drinks & Bar"},
		{name: "panFry", id: "pan-fry", want: "Pan Fry"},
		{name: "unknownFallsBackToID", id: "grill", want: "grill"},
		{name: "empty", id: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameFor(tt.id); got != tt.want {
				t.Errorf("NameFor(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestPrepMinutesFor(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{id: "pan-fry", want: 10},
		{id: "apps", want: 7},
		{id: "entree", want: 14},
		{id: "salads", want: 6},
		{id: "ovens", want: 12},
		{id: "drinks-bar", want: DefaultPrepMinutes},
		{id: "unknown", want: DefaultPrepMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := PrepMinutesFor(tt.id); got != tt.want {
				t.Errorf("PrepMinutesFor(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestKitchenDisplayExcludesDrinks(t *testing.T) {
	want := []string{"ovens", "salads", "pan-fry", "entree", "apps"}
	if len(KitchenDisplay) != len(want) {
		t.Fatalf("len(KitchenDisplay) = %d, want %d", len(KitchenDisplay), len(want))
	}
	for i, s := range KitchenDisplay {
		if s.ID != want[i] {
			t.Errorf("KitchenDisplay[%d] = %q, want %q", i, s.ID, want[i])
		}
		if IsDrinks(s.ID) {
			t.Errorf("station %q should not be the drinks bar", s.ID)
		}
	}
}
