package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

const maxLabelLen = 50

type LabelService interface {
	ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Label, error)
	Create(ctx context.Context, actor domain.UserId, data domain.LabelCreationData) (domain.Label, error)
	Update(ctx context.Context, actor domain.UserId, labelId domain.LabelId, data domain.LabelUpdateData) (domain.Label, error)
	Delete(ctx context.Context, actor domain.UserId, labelId domain.LabelId) error
}

type Label struct {
	storage   LabelStorage
	gate      Authorizer
	publisher Publisher
}

type LabelStorage interface {
	GetBoardLabels(ctx context.Context, boardId domain.BoardId) ([]domain.Label, error)
	GetLabel(ctx context.Context, id domain.LabelId) (domain.Label, error)
	CreateLabel(ctx context.Context, data domain.LabelCreationData) (domain.Label, error)
	UpdateLabel(ctx context.Context, id domain.LabelId, data domain.LabelUpdateData) (domain.Label, error)
	DeleteLabel(ctx context.Context, id domain.LabelId) error
}

func NewLabel(storage LabelStorage, gate Authorizer, publisher Publisher) LabelService {
	return &Label{storage: storage, gate: gate, publisher: orNop(publisher)}
}

func (l *Label) ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Label, error) {
	if _, err := l.gate.Authorize(ctx, actor, boardId, permission.View); err != nil {
		return nil, err
	}
	return l.storage.GetBoardLabels(ctx, boardId)
}

func (l *Label) Create(ctx context.Context, actor domain.UserId, data domain.LabelCreationData) (domain.Label, error) {
	if _, err := l.gate.Authorize(ctx, actor, data.BoardId, permission.ManageLabels); err != nil {
		return domain.Label{}, err
	}
	var err error
	if data.Text, err = labelText(data.Text); err != nil {
		return domain.Label{}, err
	}
	if err := labelColor(data.Color); err != nil {
		return domain.Label{}, err
	}

	label, err := l.storage.CreateLabel(ctx, data)
	if err != nil {
		return domain.Label{}, err
	}
	publish(l.publisher, label.BoardId, api.EventCreated, "label", label)
	return label, nil
}

func (l *Label) Update(ctx context.Context, actor domain.UserId, labelId domain.LabelId, data domain.LabelUpdateData) (domain.Label, error) {
	current, err := l.storage.GetLabel(ctx, labelId)
	if err != nil {
		return domain.Label{}, err
	}
	if _, err := l.gate.Authorize(ctx, actor, current.BoardId, permission.ManageLabels); err != nil {
		return domain.Label{}, err
	}
	if data.Text == nil && data.Color == nil {
		return domain.Label{}, errNothingToUpdate
	}
	if data.Text != nil {
		text, err := labelText(*data.Text)
		if err != nil {
			return domain.Label{}, err
		}
		data.Text = &text
	}
	if data.Color != nil {
		if err := labelColor(*data.Color); err != nil {
			return domain.Label{}, err
		}
	}

	label, err := l.storage.UpdateLabel(ctx, labelId, data)
	if err != nil {
		return domain.Label{}, err
	}
	publish(l.publisher, label.BoardId, api.EventUpdated, "label", label)
	return label, nil
}

// Delete removes the label from the board and every card and task using it.
func (l *Label) Delete(ctx context.Context, actor domain.UserId, labelId domain.LabelId) error {
	current, err := l.storage.GetLabel(ctx, labelId)
	if err != nil {
		return err
	}
	if _, err := l.gate.Authorize(ctx, actor, current.BoardId, permission.ManageLabels); err != nil {
		return err
	}
	if err := l.storage.DeleteLabel(ctx, labelId); err != nil {
		return err
	}
	publish(l.publisher, current.BoardId, api.EventDeleted, "label", idPayload{Id: labelId})
	return nil
}

func labelText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &internal_errors.ValidationError{Message: "Label text is required"}
	}
	if len([]rune(text)) > maxLabelLen {
		return "", &internal_errors.ValidationError{Message: fmt.Sprintf("Label text is too long (max %d characters)", maxLabelLen)}
	}
	return text, nil
}

func labelColor(color domain.LabelColor) error {
	if !color.Valid() {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("Unknown label color %q", color)}
	}
	return nil
}
