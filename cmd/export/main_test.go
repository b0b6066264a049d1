package main

import (
	"testing"

	"notecraft-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Getting Started", "getting-started"},
		{"  Daily   Journal!! ", "daily-journal"},
		{"Q3: Plans & Ideas", "q3-plans-ideas"},
		{"🚀", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slug(tt.title))
		})
	}
}

func TestFileNameFallsBackToId(t *testing.T) {
	used := map[string]bool{}

	assert.Equal(t, "notes.md", fileName(&entity.Page{Id: "1", Title: "Notes"}, used))
	assert.Equal(t, "2.md", fileName(&entity.Page{Id: "2", Title: "Notes"}, used))
	assert.Equal(t, "3.md", fileName(&entity.Page{Id: "3", Title: ""}, used))
}
