package menu

// CalculateVariantID returns baseID plus the bit value of every active ingredient.
// A nil ingredient list yields baseID unchanged.
func CalculateVariantID(baseID int, active ActiveIngredients, ingredients []Ingredient) int {
	if ingredients == nil {
		return baseID
	}
	sum := 0
	for _, ing := range ingredients {
		if active[ing.ID] {
			sum += ing.BitValue
		}
	}
	return baseID + sum
}
