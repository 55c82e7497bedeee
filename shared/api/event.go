package api

import (
	"encoding/json"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
	EventMoved   EventType = "moved"
)

// Event is a board change notification sent over SSE. Clients treat it as a
// hint to refetch; payload is the affected record when there is one.
type Event struct {
	Type    EventType       `json:"type"`
	Entity  string          `json:"entity"`
	BoardId domain.BoardId  `json:"board_id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
