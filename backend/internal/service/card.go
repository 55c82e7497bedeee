package service

import (
	"context"
	"fmt"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

type CardService interface {
	Create(ctx context.Context, actor domain.UserId, data domain.CardCreationData) (domain.Card, error)
	Get(ctx context.Context, actor domain.UserId, cardId domain.CardId) (domain.Card, error)
	Update(ctx context.Context, actor domain.UserId, cardId domain.CardId, data domain.CardUpdateData) (domain.Card, error)
	Move(ctx context.Context, actor domain.UserId, cardId domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error)
	Delete(ctx context.Context, actor domain.UserId, cardId domain.CardId) error
	AddLabel(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
	RemoveLabel(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
}

type Card struct {
	storage   CardStorage
	gate      Authorizer
	publisher Publisher
}

type CardStorage interface {
	GetList(ctx context.Context, id domain.ListId) (domain.List, error)
	CardLocation(ctx context.Context, id domain.CardId) (domain.CardLocation, error)
	GetCard(ctx context.Context, id domain.CardId) (domain.Card, error)
	CreateCard(ctx context.Context, data domain.CardCreationData) (domain.Card, error)
	UpdateCard(ctx context.Context, id domain.CardId, data domain.CardUpdateData) (domain.Card, error)
	MoveCard(ctx context.Context, id domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error)
	DeleteCard(ctx context.Context, id domain.CardId) error
	AddLabelToCard(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
	RemoveLabelFromCard(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
}

func NewCard(storage CardStorage, gate Authorizer, publisher Publisher) CardService {
	return &Card{storage: storage, gate: gate, publisher: orNop(publisher)}
}

var errCommentCardWork = &internal_errors.ValidationError{Message: "Comment cards cannot have a status, labels or assignees"}

// Create resolves the list's board, checks the actor may create cards there
// and appends the card to the list. Labels without text or a known color
// and assignees without an id are dropped.
func (c *Card) Create(ctx context.Context, actor domain.UserId, data domain.CardCreationData) (domain.Card, error) {
	list, err := c.storage.GetList(ctx, data.ListId)
	if err != nil {
		return domain.Card{}, err
	}
	if _, err := c.gate.Authorize(ctx, actor, list.BoardId, permission.CreateCard); err != nil {
		return domain.Card{}, err
	}

	if data.Title, err = requireTitle("Card", data.Title); err != nil {
		return domain.Card{}, err
	}
	if err := checkDescription(data.Description); err != nil {
		return domain.Card{}, err
	}
	if data.Type == "" {
		data.Type = domain.CardTypeProject
	}
	if !data.Type.Valid() {
		return domain.Card{}, &internal_errors.ValidationError{Message: fmt.Sprintf("Unknown card type %q", data.Type)}
	}
	if data.Type.HasWork() {
		if err := checkStatus(data.Status); err != nil {
			return domain.Card{}, err
		}
		data.Labels = filterLabels(data.Labels)
		data.Assignees = filterAssignees(data.Assignees)
		data.Author = ""
	} else {
		if data.Status != nil || len(data.Labels) > 0 || len(data.Assignees) > 0 {
			return domain.Card{}, errCommentCardWork
		}
		data.Author = actor
	}

	card, err := c.storage.CreateCard(ctx, data)
	if err != nil {
		return domain.Card{}, err
	}
	publish(c.publisher, list.BoardId, api.EventCreated, "card", card)
	return card, nil
}

func (c *Card) Get(ctx context.Context, actor domain.UserId, cardId domain.CardId) (domain.Card, error) {
	if _, err := c.authorize(ctx, actor, cardId, permission.View); err != nil {
		return domain.Card{}, err
	}
	return c.storage.GetCard(ctx, cardId)
}

// Update applies a merge-patch: omitted fields keep their value.
func (c *Card) Update(ctx context.Context, actor domain.UserId, cardId domain.CardId, data domain.CardUpdateData) (domain.Card, error) {
	loc, err := c.authorize(ctx, actor, cardId, permission.UpdateCard)
	if err != nil {
		return domain.Card{}, err
	}
	if data.Empty() {
		return domain.Card{}, errNothingToUpdate
	}
	if data.Title, err = optionalTitle("Card", data.Title); err != nil {
		return domain.Card{}, err
	}
	if err := checkDescription(data.Description); err != nil {
		return domain.Card{}, err
	}
	if !loc.Type.HasWork() && (data.Status != nil || data.Labels != nil || data.Assignees != nil) {
		return domain.Card{}, errCommentCardWork
	}
	if err := checkStatus(data.Status); err != nil {
		return domain.Card{}, err
	}
	if data.Labels != nil {
		labels := filterLabels(*data.Labels)
		data.Labels = &labels
	}
	if data.Assignees != nil {
		assignees := filterAssignees(*data.Assignees)
		data.Assignees = &assignees
	}

	card, err := c.storage.UpdateCard(ctx, cardId, data)
	if err != nil {
		return domain.Card{}, err
	}
	publish(c.publisher, loc.BoardId, api.EventUpdated, "card", card)
	return card, nil
}

// Move puts the card at the end of targetListId. sourceListId is where the
// caller believes the card is; if it has moved since, the result is a
// ConflictError and nothing changes.
func (c *Card) Move(ctx context.Context, actor domain.UserId, cardId domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error) {
	if sourceListId == "" || targetListId == "" {
		return domain.Card{}, &internal_errors.ValidationError{Message: "Source and target lists are required"}
	}
	loc, err := c.authorize(ctx, actor, cardId, permission.MoveCard)
	if err != nil {
		return domain.Card{}, err
	}

	card, err := c.storage.MoveCard(ctx, cardId, sourceListId, targetListId)
	if err != nil {
		return domain.Card{}, countConflict("move card", err)
	}
	publish(c.publisher, loc.BoardId, api.EventMoved, "card", card)
	return card, nil
}

func (c *Card) Delete(ctx context.Context, actor domain.UserId, cardId domain.CardId) error {
	loc, err := c.authorize(ctx, actor, cardId, permission.DeleteCard)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteCard(ctx, cardId); err != nil {
		return err
	}
	publish(c.publisher, loc.BoardId, api.EventDeleted, "card", idPayload{Id: cardId})
	return nil
}

func (c *Card) AddLabel(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	loc, err := c.authorize(ctx, actor, cardId, permission.UpdateCard)
	if err != nil {
		return domain.Card{}, err
	}
	card, err := c.storage.AddLabelToCard(ctx, cardId, labelId)
	if err != nil {
		return domain.Card{}, err
	}
	publish(c.publisher, loc.BoardId, api.EventUpdated, "card", card)
	return card, nil
}

func (c *Card) RemoveLabel(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	loc, err := c.authorize(ctx, actor, cardId, permission.UpdateCard)
	if err != nil {
		return domain.Card{}, err
	}
	card, err := c.storage.RemoveLabelFromCard(ctx, cardId, labelId)
	if err != nil {
		return domain.Card{}, err
	}
	publish(c.publisher, loc.BoardId, api.EventUpdated, "card", card)
	return card, nil
}

// authorize resolves the card's board and checks action against it.
func (c *Card) authorize(ctx context.Context, actor domain.UserId, cardId domain.CardId, action permission.Action) (domain.CardLocation, error) {
	loc, err := c.storage.CardLocation(ctx, cardId)
	if err != nil {
		return domain.CardLocation{}, err
	}
	if _, err := c.gate.Authorize(ctx, actor, loc.BoardId, action); err != nil {
		return domain.CardLocation{}, err
	}
	return loc, nil
}
