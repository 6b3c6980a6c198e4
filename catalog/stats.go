package catalog

import (
	"math"
	"sort"

	"github.com/poiesic/recommendit/core"
)

// Categories returns the sorted distinct test-type labels in the catalog.
// Empty categories are skipped.
func Categories(records []*core.Assessment) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, a := range records {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		categories = append(categories, a.Category)
	}
	sort.Strings(categories)
	return categories
}

// Stats aggregates read-only statistics over the loaded catalog.
func Stats(records []*core.Assessment) *core.CatalogStats {
	stats := &core.CatalogStats{
		TotalAssessments: len(records),
		PerCategory:      make(map[string]int),
	}

	totalDuration := 0
	for _, a := range records {
		totalDuration += a.DurationMinutes
		if a.RemoteCapable {
			stats.RemoteCapable++
		}
		if a.Adaptive {
			stats.Adaptive++
		}
		if a.Category != "" {
			stats.PerCategory[a.Category]++
		}
	}

	if len(records) > 0 {
		avg := float64(totalDuration) / float64(len(records))
		stats.AvgDurationMinutes = math.Round(avg*10) / 10
	}

	return stats
}
