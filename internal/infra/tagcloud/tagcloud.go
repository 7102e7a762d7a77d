package tagcloud

import (
	"slices"

	"tooldir/internal/domain"
)

// Compute counts every tag occurrence across tools, orders the table by
// descending count with ties in first-seen order, and keeps at most limit
// rows. A limit of zero or less uses domain.DefaultTagCloudLimit.
func Compute(tools []domain.Tool, limit int) []domain.TagCount {
	if limit <= 0 {
		limit = domain.DefaultTagCloudLimit
	}

	var counts []domain.TagCount
	position := make(map[string]int)
	for _, tool := range tools {
		for _, tag := range tool.Tags {
			idx, seen := position[tag]
			if !seen {
				idx = len(counts)
				position[tag] = idx
				counts = append(counts, domain.TagCount{Tag: tag})
			}
			counts[idx].Count++
		}
	}

	slices.SortStableFunc(counts, func(a, b domain.TagCount) int {
		return b.Count - a.Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
