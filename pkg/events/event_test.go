package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceEventPayloadRoundTrip(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	event := WorkspaceEvent{Type: BlockAdded, Version: 42, PageIds: []string{"p1"}, BlockId: "b1", OccurredAt: at}

	raw, err := json.Marshal(event.Payload())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, event, WorkspaceEventFromPayload(decoded))
	assert.Equal(t, "workspace.block_added", event.Subject())
	assert.Equal(t, at, event.Timestamp())
}

func TestWorkspaceEventTouches(t *testing.T) {
	scoped := WorkspaceEvent{Type: PageUpdated, PageIds: []string{"a", "b"}}
	assert.True(t, scoped.Touches("b"))
	assert.False(t, scoped.Touches("c"))

	global := WorkspaceEvent{Type: WorkspaceUpdated}
	assert.True(t, global.Touches("anything"))
}
