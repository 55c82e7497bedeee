package service

import (
	"context"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

type ListService interface {
	ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.List, error)
	Create(ctx context.Context, actor domain.UserId, data domain.ListCreationData) (domain.List, error)
	Update(ctx context.Context, actor domain.UserId, listId domain.ListId, data domain.ListUpdateData) (domain.List, error)
	Delete(ctx context.Context, actor domain.UserId, listId domain.ListId) error
}

type List struct {
	storage   ListStorage
	gate      Authorizer
	publisher Publisher
}

type ListStorage interface {
	GetBoardLists(ctx context.Context, boardId domain.BoardId) ([]domain.List, error)
	GetList(ctx context.Context, id domain.ListId) (domain.List, error)
	CreateList(ctx context.Context, data domain.ListCreationData) (domain.List, error)
	UpdateList(ctx context.Context, id domain.ListId, data domain.ListUpdateData) (domain.List, error)
	DeleteList(ctx context.Context, id domain.ListId) error
}

func NewList(storage ListStorage, gate Authorizer, publisher Publisher) ListService {
	return &List{storage: storage, gate: gate, publisher: orNop(publisher)}
}

// ForBoard returns the board's lists with their cards.
func (l *List) ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.List, error) {
	if _, err := l.gate.Authorize(ctx, actor, boardId, permission.View); err != nil {
		return nil, err
	}
	return l.storage.GetBoardLists(ctx, boardId)
}

// Create adds a list; without a position it goes after the last one. The
// returned list has no cards.
func (l *List) Create(ctx context.Context, actor domain.UserId, data domain.ListCreationData) (domain.List, error) {
	if _, err := l.gate.Authorize(ctx, actor, data.BoardId, permission.CreateList); err != nil {
		return domain.List{}, err
	}
	var err error
	if data.Title, err = requireTitle("List", data.Title); err != nil {
		return domain.List{}, err
	}
	if err := checkPosition(data.Position); err != nil {
		return domain.List{}, err
	}

	list, err := l.storage.CreateList(ctx, data)
	if err != nil {
		return domain.List{}, err
	}
	list.Cards = []domain.Card{}
	publish(l.publisher, list.BoardId, api.EventCreated, "list", list)
	return list, nil
}

func (l *List) Update(ctx context.Context, actor domain.UserId, listId domain.ListId, data domain.ListUpdateData) (domain.List, error) {
	current, err := l.storage.GetList(ctx, listId)
	if err != nil {
		return domain.List{}, err
	}
	if _, err := l.gate.Authorize(ctx, actor, current.BoardId, permission.UpdateList); err != nil {
		return domain.List{}, err
	}
	if data.Title == nil && data.Position == nil {
		return domain.List{}, errNothingToUpdate
	}
	if data.Title, err = optionalTitle("List", data.Title); err != nil {
		return domain.List{}, err
	}
	if err := checkPosition(data.Position); err != nil {
		return domain.List{}, err
	}

	list, err := l.storage.UpdateList(ctx, listId, data)
	if err != nil {
		return domain.List{}, err
	}
	publish(l.publisher, list.BoardId, api.EventUpdated, "list", list)
	return list, nil
}

// Delete removes the list and everything in it.
func (l *List) Delete(ctx context.Context, actor domain.UserId, listId domain.ListId) error {
	current, err := l.storage.GetList(ctx, listId)
	if err != nil {
		return err
	}
	if _, err := l.gate.Authorize(ctx, actor, current.BoardId, permission.DeleteList); err != nil {
		return err
	}
	if err := l.storage.DeleteList(ctx, listId); err != nil {
		return err
	}
	publish(l.publisher, current.BoardId, api.EventDeleted, "list", idPayload{Id: listId})
	return nil
}
