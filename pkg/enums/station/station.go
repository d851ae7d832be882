package station

// DefaultPrepMinutes applies to stations without a configured prep time.
const DefaultPrepMinutes = 10

type Station struct {
	ID          string
	Name        string
	PrepMinutes int
}

func (s Station) Code() string {
	return s.ID
}

func (s Station) Label() string {
	if s.Name == "" {
		return s.ID
	}
	return s.Name
}

type Enum struct {
	PanFry    Station
	Apps      Station
	Entree    Station
	Salads    Station
	Ovens     Station
	DrinksBar Station
}

var Stations = Enum{
	PanFry:    Station{ID: "pan-fry", Name: "Pan Fry", PrepMinutes: 10},
	Apps:      Station{ID: "apps", Name: "Apps", PrepMinutes: 7},
	Entree:    Station{ID: "entree", Name: "Entree", PrepMinutes: 14},
	Salads:    Station{ID: "salads", Name: "Salads", PrepMinutes: 6},
	Ovens:     Station{ID: "ovens", Name: "Ovens", PrepMinutes: 12},
	DrinksBar: Station{ID: "drinks-bar", Name: "Drinks & Bar"},
}

// All lists stations in menu order.
var All = []Station{
	Stations.PanFry,
	Stations.Apps,
	Stations.Entree,
	Stations.Salads,
	Stations.Ovens,
	Stations.DrinksBar,
}

// KitchenDisplay is the column order of the kitchen line.
var KitchenDisplay = []Station{
	Stations.Ovens,
	Stations.Salads,
	Stations.PanFry,
	Stations.Entree,
	Stations.Apps,
}

// ByID returns the station for a given id, or nil if not found
func ByID(id string) *Station {
	for _, s := range All {
		if s.ID == id {
			return &s
		}
	}
	return nil
}

// NameFor returns the display name of a station, falling back to the raw id.
func NameFor(id string) string {
	if s := ByID(id); s != nil {
		return s.Label()
	}
	return id
}

// PrepMinutesFor returns the prep time of a station id.
func PrepMinutesFor(id string) int {
	if s := ByID(id); s != nil && s.PrepMinutes > 0 {
		return s.PrepMinutes
	}
	return DefaultPrepMinutes
}

// IsDrinks reports whether the station id is the drinks bar.
func IsDrinks(id string) bool {
	return id == Stations.DrinksBar.ID
}
