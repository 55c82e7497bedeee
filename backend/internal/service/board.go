package service

import (
	"context"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

// DefaultLists are created with every board, in this order.
var DefaultLists = []string{"To Do", "In Progress", "Done"}

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, actor domain.UserId, title string, description *string) (domain.Board, error)
	ForUser(ctx context.Context, actor domain.UserId) ([]domain.Board, error)
	Get(ctx context.Context, actor domain.UserId, boardId domain.BoardId) (domain.Board, error)
	Update(ctx context.Context, actor domain.UserId, boardId domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	Delete(ctx context.Context, actor domain.UserId, boardId domain.BoardId) error
}

type Board struct {
	storage   BoardStorage
	gate      Authorizer
	publisher Publisher
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	GetBoardsForUser(ctx context.Context, userId domain.UserId) ([]domain.Board, error)
	UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) error
	GetBoardLists(ctx context.Context, boardId domain.BoardId) ([]domain.List, error)
}

func NewBoard(storage BoardStorage, gate Authorizer, publisher Publisher) BoardService {
	return &Board{storage: storage, gate: gate, publisher: orNop(publisher)}
}

// Create makes the board with the default lists and the creator as owner.
// The store does it in one transaction.
func (b *Board) Create(ctx context.Context, actor domain.UserId, title string, description *string) (domain.Board, error) {
	if actor == "" {
		return domain.Board{}, errUnauthenticated
	}
	title, err := requireTitle("Board", title)
	if err != nil {
		return domain.Board{}, err
	}
	if err := checkDescription(description); err != nil {
		return domain.Board{}, err
	}

	lists := make([]domain.ListCreationData, len(DefaultLists))
	for i, t := range DefaultLists {
		pos := i
		lists[i] = domain.ListCreationData{Title: t, Position: &pos}
	}
	board, err := b.storage.CreateBoard(ctx, domain.BoardCreationData{
		Title:       title,
		Description: domain.StrPtr(deref(description)),
		OwnerId:     actor,
		Lists:       lists,
	})
	if err != nil {
		return domain.Board{}, err
	}
	publish(b.publisher, board.Id, api.EventCreated, "board", board)
	return board, nil
}

// ForUser returns boards the actor owns or belongs to.
func (b *Board) ForUser(ctx context.Context, actor domain.UserId) ([]domain.Board, error) {
	if actor == "" {
		return nil, errUnauthenticated
	}
	return b.storage.GetBoardsForUser(ctx, actor)
}

// Get returns the board with its lists and their cards.
func (b *Board) Get(ctx context.Context, actor domain.UserId, boardId domain.BoardId) (domain.Board, error) {
	if _, err := b.gate.Authorize(ctx, actor, boardId, permission.View); err != nil {
		return domain.Board{}, err
	}
	board, err := b.storage.GetBoard(ctx, boardId)
	if err != nil {
		return domain.Board{}, err
	}
	board.Lists, err = b.storage.GetBoardLists(ctx, boardId)
	if err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

func (b *Board) Update(ctx context.Context, actor domain.UserId, boardId domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	if _, err := b.gate.Authorize(ctx, actor, boardId, permission.UpdateBoard); err != nil {
		return domain.Board{}, err
	}
	if data.Title == nil && data.Description == nil {
		return domain.Board{}, errNothingToUpdate
	}
	var err error
	if data.Title, err = optionalTitle("Board", data.Title); err != nil {
		return domain.Board{}, err
	}
	if err := checkDescription(data.Description); err != nil {
		return domain.Board{}, err
	}

	board, err := b.storage.UpdateBoard(ctx, boardId, data)
	if err != nil {
		return domain.Board{}, err
	}
	publish(b.publisher, boardId, api.EventUpdated, "board", board)
	return board, nil
}

func (b *Board) Delete(ctx context.Context, actor domain.UserId, boardId domain.BoardId) error {
	if _, err := b.gate.Authorize(ctx, actor, boardId, permission.DeleteBoard); err != nil {
		return err
	}
	if err := b.storage.DeleteBoard(ctx, boardId); err != nil {
		return err
	}
	publish(b.publisher, boardId, api.EventDeleted, "board", idPayload{Id: boardId})
	return nil
}

type idPayload struct {
	Id string `json:"id"`
}

var (
	errUnauthenticated = &internal_errors.PermissionError{Message: "Please sign-in", Unauthenticated: true}
	errNothingToUpdate = &internal_errors.ValidationError{Message: "Nothing to update"}
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
