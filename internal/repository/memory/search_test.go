package memory

import (
	"testing"
	"time"

	"notecraft-be/pkg/search"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	store, clock := newTestStore(t)
	store.Replace(seededStore(t).Snapshot().Pages, "1")
	// Seeded pages carry a zero UpdatedAt; only page 4 is touched today.
	clock.Advance(10 * 24 * time.Hour)
	snap := store.UpdatePageTitle("4", "Project Ideas v2")
	now := clock.Now()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"text only", "journal", []string{"2"}},
		{"single tag", "tags:personal", []string{"2", "3"}},
		{"all tags required", "tags:personal,journal", []string{"2"}},
		{"tag and text", "tags:work ideas", []string{"4"}},
		{"favorites", "is:favorite", []string{"1"}},
		{"date window", "date:today", []string{"4"}},
		{"no match", "tags:missing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageIds(snap.Search(search.ParseQuery(tt.raw), now)))
		})
	}
}

func TestChangedPages(t *testing.T) {
	store := seededStore(t)
	before := store.Snapshot()

	after := store.UpdateBlock("2", "b6", "edited")
	assert.Equal(t, []string{"2"}, ChangedPages(before, after))

	// Deleting 3 removes its children 2 and 4 and promotes 5 to the root.
	deleted := store.DeletePage("3")
	assert.ElementsMatch(t, []string{"2", "3", "4", "5"}, ChangedPages(after, deleted))

	assert.Empty(t, ChangedPages(deleted, deleted))
}

func TestSearchCache(t *testing.T) {
	cache := NewSearchCache(time.Minute)
	snap := seededStore(t).Snapshot()

	_, ok := cache.Get(snap.Version, "journal")
	assert.False(t, ok)

	cache.Save(snap.Version, "journal", snap.FilterPages("journal"))
	hit, ok := cache.Get(snap.Version, "journal")
	assert.True(t, ok)
	assert.Equal(t, []string{"2"}, pageIds(hit))

	_, ok = cache.Get(snap.Version+1, "journal")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Len())
}
