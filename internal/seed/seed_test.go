package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notecraft-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loadTime = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func TestDefaultWorkspace(t *testing.T) {
	ws, err := Default(loadTime)
	require.NoError(t, err)

	assert.Equal(t, "1", ws.CurrentPageId)
	require.Len(t, ws.Pages, 4)

	gettingStarted := ws.Pages[0]
	assert.Equal(t, "Getting Started", gettingStarted.Title)
	assert.True(t, gettingStarted.IsFavorite)
	assert.Equal(t, []string{"tutorial", "welcome"}, gettingStarted.Tags)
	require.Len(t, gettingStarted.Blocks, 5)
	assert.Equal(t, entity.CalloutProps{Kind: entity.CalloutInfo}, gettingStarted.Blocks[2].Props)
	assert.False(t, gettingStarted.Blocks[3].Checked())
	assert.True(t, gettingStarted.Blocks[4].Checked())
	assert.Equal(t, loadTime, *gettingStarted.LastViewedAt)

	journal := ws.Pages[1]
	require.NotNil(t, journal.ParentId)
	assert.Equal(t, "3", *journal.ParentId)
	assert.Equal(t, loadTime.Add(-time.Hour), *journal.LastViewedAt)

	assert.Empty(t, ws.Pages[2].Blocks)
	assert.Equal(t, entity.BlockTypeBulletList, ws.Pages[3].Blocks[1].Type)
}

func TestDecodeDefaults(t *testing.T) {
	ws, err := Decode(strings.NewReader(`pages: [{id: x}]`), loadTime)
	require.NoError(t, err)
	require.Len(t, ws.Pages, 1)
	assert.Equal(t, entity.DefaultPageTitle, ws.Pages[0].Title)
	assert.Equal(t, entity.DefaultPageIcon, ws.Pages[0].Icon)
	assert.Nil(t, ws.Pages[0].LastViewedAt)
	assert.Equal(t, loadTime, ws.Pages[0].CreatedAt)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing page id", `pages: [{title: a}]`, "missing id"},
		{"unknown block type", `pages: [{id: a, blocks: [{id: b, type: table}]}]`, `unknown type "table"`},
		{"missing block id", `pages: [{id: a, blocks: [{type: text}]}]`, "block 0: missing id"},
		{"bad duration", `pages: [{id: a, last_viewed_ago: soon}]`, "last_viewed_ago"},
		{"not yaml", `pages: {`, "decode seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml), loadTime)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("current_page_id: a\npages:\n  - id: a\n    title: Alpha\n"), 0o644))

	ws, err := LoadFile(path, loadTime)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", ws.Pages[0].Title)

	ws, err = LoadFile("", loadTime)
	require.NoError(t, err)
	assert.Len(t, ws.Pages, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), loadTime)
	assert.Error(t, err)
}
