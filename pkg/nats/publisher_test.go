package nats

import (
	"testing"

	"notecraft-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "workspace.page_deleted", SubjectFor(events.WorkspaceEvent{Type: events.PageDeleted}))
	assert.Equal(t, "workspace.CUSTOM", SubjectFor(events.BaseEvent{Type: "CUSTOM"}))
}
