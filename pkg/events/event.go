package events

import (
	"strings"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PAGE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	PageCreated       = "PAGE_CREATED"
	PageUpdated       = "PAGE_UPDATED"
	PageDeleted       = "PAGE_DELETED"
	PageMoved         = "PAGE_MOVED"
	PageViewed        = "PAGE_VIEWED"
	BlockAdded        = "BLOCK_ADDED"
	BlockUpdated      = "BLOCK_UPDATED"
	BlockDeleted      = "BLOCK_DELETED"
	BlockMoved        = "BLOCK_MOVED"
	WorkspaceUpdated  = "WORKSPACE_UPDATED"
	WorkspaceReplaced = "WORKSPACE_REPLACED"
)

// WorkspaceEvent reports one store mutation. PageIds lists every page whose
// stored state may have changed, including pages that no longer exist.
type WorkspaceEvent struct {
	Type       string    `json:"type"`
	Version    uint64    `json:"version"`
	PageIds    []string  `json:"page_ids,omitempty"`
	BlockId    string    `json:"block_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e WorkspaceEvent) EventType() string {
	return e.Type
}

func (e WorkspaceEvent) Payload() map[string]interface{} {
	pageIds := make([]interface{}, len(e.PageIds))
	for i, id := range e.PageIds {
		pageIds[i] = id
	}
	data := map[string]interface{}{
		"type":        e.Type,
		"version":     e.Version,
		"page_ids":    pageIds,
		"occurred_at": e.OccurredAt.Format(time.RFC3339Nano),
	}
	if e.BlockId != "" {
		data["block_id"] = e.BlockId
	}
	return data
}

func (e WorkspaceEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Subject is the NATS subject the event is published on, e.g.
// "workspace.page_created".
func (e WorkspaceEvent) Subject() string {
	return "workspace." + strings.ToLower(e.Type)
}

// Touches reports whether the event concerns the given page. Events without
// page ids concern every page.
func (e WorkspaceEvent) Touches(pageId string) bool {
	if len(e.PageIds) == 0 {
		return true
	}
	for _, id := range e.PageIds {
		if id == pageId {
			return true
		}
	}
	return false
}

// WorkspaceEventFromPayload rebuilds an event from its Payload map, as
// decoded from JSON.
func WorkspaceEventFromPayload(data map[string]interface{}) WorkspaceEvent {
	e := WorkspaceEvent{}
	e.Type, _ = data["type"].(string)
	e.BlockId, _ = data["block_id"].(string)
	switch v := data["version"].(type) {
	case float64:
		e.Version = uint64(v)
	case uint64:
		e.Version = v
	}
	if ids, ok := data["page_ids"].([]interface{}); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok {
				e.PageIds = append(e.PageIds, s)
			}
		}
	}
	if ts, ok := data["occurred_at"].(string); ok {
		e.OccurredAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return e
}
