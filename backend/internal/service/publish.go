package service

import (
	"encoding/json"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
)

// Publisher receives board change notifications after a mutation commits.
type Publisher interface {
	Publish(event api.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(api.Event) {}

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func publish(p Publisher, boardId domain.BoardId, typ api.EventType, entity string, payload any) {
	event := api.Event{Type: typ, Entity: entity, BoardId: boardId}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Log.Error("failed to marshal event payload", "entity", entity, "error", err)
		} else {
			event.Payload = data
		}
	}
	p.Publish(event)
}
