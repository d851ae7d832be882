package menu

import (
	"fmt"
	"strings"

	"github.com/appetiteclub/gourmet/pkg/enums/station"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every problem found in a catalog.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return "invalid catalog: " + strings.Join(msgs, "; ")
}

// ValidateCatalog checks ids, stations and ingredient bit values of every item.
func ValidateCatalog(items []MenuItem) error {
	var errs ValidationErrors
	seen := make(map[string]bool, len(items))

	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if strings.TrimSpace(item.ID) == "" {
			errs = append(errs, ValidationError{Field: prefix + ".id", Message: "id is required"})
		} else if seen[item.ID] {
			errs = append(errs, ValidationError{Field: prefix + ".id", Message: fmt.Sprintf("duplicate item id %q", item.ID)})
		}
		seen[item.ID] = true

		if station.ByID(item.StationID) == nil {
			errs = append(errs, ValidationError{Field: prefix + ".stationId", Message: fmt.Sprintf("unknown station %q", item.StationID)})
		}

		if item.BaseID < 0 {
			errs = append(errs, ValidationError{Field: prefix + ".baseId", Message: "base id cannot be negative"})
		}

		errs = append(errs, validateIngredients(prefix, item.Ingredients)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateIngredients(prefix string, ingredients []Ingredient) []ValidationError {
	var errs []ValidationError
	usedBits := 0
	ids := make(map[string]bool, len(ingredients))

	for j, ing := range ingredients {
		field := fmt.Sprintf("%s.ingredients[%d]", prefix, j)

		if ids[ing.ID] {
			errs = append(errs, ValidationError{Field: field + ".id", Message: fmt.Sprintf("duplicate ingredient id %q", ing.ID)})
		}
		ids[ing.ID] = true

		if !isPowerOfTwo(ing.BitValue) {
			errs = append(errs, ValidationError{Field: field + ".bitValue", Message: "bit value must be a positive power of two"})
			continue
		}
		if usedBits&ing.BitValue != 0 {
			errs = append(errs, ValidationError{Field: field + ".bitValue", Message: fmt.Sprintf("bit value %d already used", ing.BitValue)})
		}
		usedBits |= ing.BitValue
	}

	return errs
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
