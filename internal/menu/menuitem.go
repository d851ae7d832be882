package menu

// Ingredient is an optional component of a dish. BitValue is a power of two
// so active ingredients compose into a variant id without collisions.
type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BitValue int    `json:"bitValue"`
}

// ActiveIngredients maps ingredient ids to their toggle state for one configuration.
type ActiveIngredients map[string]bool

// Clone returns an independent copy.
func (a ActiveIngredients) Clone() ActiveIngredients {
	out := make(ActiveIngredients, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// MenuItem represents a dish or drink offered at one station.
type MenuItem struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	StationID        string       `json:"stationId"`
	BaseID           int          `json:"baseId"`
	ModelType        string       `json:"modelType"`
	PlaceholderShape string       `json:"placeholderShape,omitempty"`
	Ingredients      []Ingredient `json:"ingredients"`
}

// VariantID returns the variant identifier for the given toggles.
func (m MenuItem) VariantID(active ActiveIngredients) int {
	return CalculateVariantID(m.BaseID, active, m.Ingredients)
}

// ActiveIngredientNames lists the names of toggled ingredients in menu order.
func (m MenuItem) ActiveIngredientNames(active ActiveIngredients) []string {
	names := make([]string, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		if active[ing.ID] {
			names = append(names, ing.Name)
		}
	}
	return names
}

// DefaultIngredients returns every ingredient toggled on.
func (m MenuItem) DefaultIngredients() ActiveIngredients {
	active := make(ActiveIngredients, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		active[ing.ID] = true
	}
	return active
}

func (m MenuItem) clone() MenuItem {
	if m.Ingredients != nil {
		m.Ingredients = append([]Ingredient(nil), m.Ingredients...)
	}
	return m
}
