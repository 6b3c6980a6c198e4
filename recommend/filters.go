package recommend

import "github.com/poiesic/recommendit/core"

// applyFilters applies the structured post-filters conjunctively, preserving
// ranking order. An empty categories slice means "no category filter"; a
// non-empty slice that matches nothing legitimately filters everything out.
func applyFilters(ranked []core.Recommendation, maxDuration *int, categories []string, remoteOnly bool) []core.Recommendation {
	results := ranked
	if maxDuration != nil {
		results = filterByDuration(results, *maxDuration)
	}
	if len(categories) > 0 {
		results = filterByCategory(results, categories)
	}
	if remoteOnly {
		results = filterByRemote(results)
	}
	return results
}

// filterByDuration keeps records whose duration does not exceed maxDuration.
// The comparison is inclusive: a record exactly at the limit stays.
func filterByDuration(ranked []core.Recommendation, maxDuration int) []core.Recommendation {
	kept := make([]core.Recommendation, 0, len(ranked))
	for _, rec := range ranked {
		if rec.Assessment.DurationMinutes <= maxDuration {
			kept = append(kept, rec)
		}
	}
	return kept
}

// filterByCategory keeps records whose category is in the allowed set.
func filterByCategory(ranked []core.Recommendation, categories []string) []core.Recommendation {
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	kept := make([]core.Recommendation, 0, len(ranked))
	for _, rec := range ranked {
		if allowed[rec.Assessment.Category] {
			kept = append(kept, rec)
		}
	}
	return kept
}

// filterByRemote keeps records that support remote testing.
func filterByRemote(ranked []core.Recommendation) []core.Recommendation {
	kept := make([]core.Recommendation, 0, len(ranked))
	for _, rec := range ranked {
		if rec.Assessment.RemoteCapable {
			kept = append(kept, rec)
		}
	}
	return kept
}
