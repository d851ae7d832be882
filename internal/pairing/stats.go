package pairing

// Stats holds co-occurrence and popularity counters learned from order history.
type Stats struct {
	CoOccurrence map[string]map[string]int
	Popularity   map[string]int
}

// Together returns how many baskets contained both a and b.
func (s Stats) Together(a, b string) int {
	return s.CoOccurrence[a][b]
}

// BuildStats counts, per basket of item ids, every distinct unordered pair and
// every distinct id. Duplicates and empty ids inside a basket are ignored.
func BuildStats(history [][]string) Stats {
	stats := Stats{
		CoOccurrence: make(map[string]map[string]int),
		Popularity:   make(map[string]int),
	}

	for _, basket := range history {
		ids := dedupe(basket)
		for _, id := range ids {
			stats.Popularity[id]++
			if stats.CoOccurrence[id] == nil {
				stats.CoOccurrence[id] = make(map[string]int)
			}
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				stats.CoOccurrence[a][b]++
				stats.CoOccurrence[b][a]++
			}
		}
	}

	return stats
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
