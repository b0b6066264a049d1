package search

import (
	"strings"
	"time"
)

type DateFilter string

const (
	DateAll   DateFilter = "all"
	DateToday DateFilter = "today"
	DateWeek  DateFilter = "week"
	DateMonth DateFilter = "month"
)

// SearchFilters holds the extracted filters and the remaining clean query
type SearchFilters struct {
	Tags          []string
	Date          DateFilter
	FavoritesOnly bool
	SearchQuery   string // The remaining text to search in Title/Content
}

// ParseQuery extracts filter tokens from the raw query string
// Supported:
// tags:<a,b> -> page must carry every listed tag
// date:<today|week|month|all> -> updated within the window
// is:favorite (or is:fav) -> favorites only
// <text> -> Remaining text is the SearchQuery
func ParseQuery(raw string) SearchFilters {
	filters := SearchFilters{Date: DateAll}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "tags:"), strings.HasPrefix(lowerPart, "tag:"):
			value := part[strings.Index(part, ":")+1:]
			for _, tag := range strings.Split(value, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					filters.Tags = append(filters.Tags, tag)
				}
			}
		case strings.HasPrefix(lowerPart, "date:"):
			switch d := DateFilter(strings.TrimPrefix(lowerPart, "date:")); d {
			case DateToday, DateWeek, DateMonth, DateAll:
				filters.Date = d
			default:
				cleanParts = append(cleanParts, part)
			}
		case lowerPart == "is:favorite", lowerPart == "is:fav":
			filters.FavoritesOnly = true
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.SearchQuery = strings.Join(cleanParts, " ")
	return filters
}

// HasFilters reports whether anything beyond plain text was requested.
func (f SearchFilters) HasFilters() bool {
	return len(f.Tags) > 0 || f.FavoritesOnly || (f.Date != "" && f.Date != DateAll)
}

// Since returns the earliest update time the date filter accepts.
func (f SearchFilters) Since(now time.Time) (time.Time, bool) {
	switch f.Date {
	case DateToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DateWeek:
		return now.AddDate(0, 0, -7), true
	case DateMonth:
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}
