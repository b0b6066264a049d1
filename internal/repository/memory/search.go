package memory

import (
	"time"

	"notecraft-be/internal/entity"
	"notecraft-be/pkg/search"
)

// Search narrows the text matches by tag, date and favorite filters. Every
// listed tag must be present; the date window applies to UpdatedAt.
func (s *Snapshot) Search(filters search.SearchFilters, now time.Time) []*entity.Page {
	matches := s.FilterPages(filters.SearchQuery)
	if !filters.HasFilters() {
		return matches
	}

	since, hasSince := filters.Since(now)
	out := make([]*entity.Page, 0, len(matches))
	for _, p := range matches {
		if filters.FavoritesOnly && !p.IsFavorite {
			continue
		}
		if hasSince && p.UpdatedAt.Before(since) {
			continue
		}
		if !hasAllTags(p, filters.Tags) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAllTags(p *entity.Page, tags []string) bool {
	for _, t := range tags {
		if !p.HasTag(t) {
			return false
		}
	}
	return true
}
