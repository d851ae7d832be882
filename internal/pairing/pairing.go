package pairing

import (
	"sort"

	"github.com/appetiteclub/gourmet/internal/menu"
)

// DefaultLimit applies when a caller asks for zero or fewer recommendations.
const DefaultLimit = 3

const (
	coOccurrenceWeight = 4.0
	curatedWeight      = 2.0
	popularityWeight   = 0.35
)

// Strategy names the tier that produced a result.
type Strategy string

const (
	StrategyScored  Strategy = "scored"
	StrategyCurated Strategy = "curated"
	StrategyPopular Strategy = "popular"
)

// CuratedPairs is the chef's hand-picked complement table.
var CuratedPairs = map[string][]string{
	"pizza":                {"caesar-salad", "truffle-fries"},
	"caesar-salad":         {"pizza", "garlic-butter-shrimp"},
	"garlic-butter-shrimp": {"truffle-fries", "caesar-salad"},
	"filet-mignon":         {"caesar-salad", "truffle-fries"},
	"truffle-fries":        {"filet-mignon", "pizza"},
}

// Recommendation is a catalog item with the score it was ranked by.
type Recommendation struct {
	menu.MenuItem
	Score float64 `json:"score"`
}

// Result holds the ranked picks and the tier that produced them.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	LearnedOrders   int              `json:"learnedOrders"`
	Strategy        Strategy         `json:"strategy"`
}

// Request bundles recommender inputs.
type Request struct {
	CartItemIDs []string
	History     [][]string
	Limit       int
}

// Recommender ranks catalog items against a cart.
type Recommender struct {
	catalog *menu.Catalog
}

// NewRecommender uses the default catalog when catalog is nil.
func NewRecommender(catalog *menu.Catalog) *Recommender {
	if catalog == nil {
		catalog = menu.DefaultCatalog()
	}
	return &Recommender{catalog: catalog}
}

// Recommend tries the scored tier first, then curated pairs, then popularity.
func (r *Recommender) Recommend(req Request) Result {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	cart := dedupe(req.CartItemIDs)
	stats := BuildStats(req.History)
	result := Result{LearnedOrders: len(req.History)}

	if recs := ScoredPairings(r.catalog, cart, stats, limit); len(recs) > 0 {
		result.Recommendations = recs
		result.Strategy = StrategyScored
		return result
	}

	if recs := CuratedPairings(r.catalog, cart, limit); len(recs) > 0 {
		result.Recommendations = recs
		result.Strategy = StrategyCurated
		return result
	}

	result.Recommendations = PopularPairings(r.catalog, cart, stats, limit)
	result.Strategy = StrategyPopular
	return result
}

// ScoredPairings scores every catalog item outside the cart by co-occurrence,
// curated affinity and popularity. Only positive scores are kept.
func ScoredPairings(catalog *menu.Catalog, cart []string, stats Stats, limit int) []Recommendation {
	inCart := toSet(cart)
	recs := make([]Recommendation, 0)

	for _, candidate := range catalog.Items() {
		if inCart[candidate.ID] {
			continue
		}
		score := 0.0
		for _, current := range cart {
			score += float64(stats.Together(current, candidate.ID)) * coOccurrenceWeight
			if isCurated(current, candidate.ID) {
				score += curatedWeight
			}
		}
		score += float64(stats.Popularity[candidate.ID]) * popularityWeight

		if score > 0 {
			recs = append(recs, Recommendation{MenuItem: candidate, Score: score})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return truncate(recs, limit)
}

// CuratedPairings expands the curated table from the cart in cart order.
func CuratedPairings(catalog *menu.Catalog, cart []string, limit int) []Recommendation {
	inCart := toSet(cart)
	seen := make(map[string]bool)
	recs := make([]Recommendation, 0)

	for _, current := range cart {
		for _, id := range CuratedPairs[current] {
			if seen[id] || inCart[id] {
				continue
			}
			seen[id] = true
			item, ok := catalog.GetMenuItem(id)
			if !ok {
				continue
			}
			recs = append(recs, Recommendation{MenuItem: item, Score: 1})
		}
	}

	return truncate(recs, limit)
}

// PopularPairings ranks catalog items outside the cart by how many baskets held them.
func PopularPairings(catalog *menu.Catalog, cart []string, stats Stats, limit int) []Recommendation {
	inCart := toSet(cart)
	recs := make([]Recommendation, 0)

	for _, item := range catalog.Items() {
		if inCart[item.ID] {
			continue
		}
		recs = append(recs, Recommendation{MenuItem: item, Score: float64(stats.Popularity[item.ID])})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return truncate(recs, limit)
}

func isCurated(from, to string) bool {
	for _, id := range CuratedPairs[from] {
		if id == to {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func truncate(recs []Recommendation, limit int) []Recommendation {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
