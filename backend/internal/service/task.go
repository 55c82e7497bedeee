package service

import (
	"context"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

type TaskService interface {
	ForCard(ctx context.Context, actor domain.UserId, cardId domain.CardId) ([]domain.Task, error)
	Create(ctx context.Context, actor domain.UserId, data domain.TaskCreationData) (domain.Task, error)
	Update(ctx context.Context, actor domain.UserId, taskId domain.TaskId, data domain.TaskUpdateData) (domain.Task, error)
	Delete(ctx context.Context, actor domain.UserId, taskId domain.TaskId) error
	AddLabel(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
	RemoveLabel(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
}

type Task struct {
	storage   TaskStorage
	gate      Authorizer
	publisher Publisher
}

type TaskStorage interface {
	CardLocation(ctx context.Context, id domain.CardId) (domain.CardLocation, error)
	TaskLocation(ctx context.Context, id domain.TaskId) (domain.TaskLocation, error)
	GetCardTasks(ctx context.Context, cardId domain.CardId) ([]domain.Task, error)
	CreateTask(ctx context.Context, data domain.TaskCreationData) (domain.Task, error)
	UpdateTask(ctx context.Context, id domain.TaskId, data domain.TaskUpdateData) (domain.Task, error)
	DeleteTask(ctx context.Context, id domain.TaskId) error
	AddLabelToTask(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
	RemoveLabelFromTask(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
}

func NewTask(storage TaskStorage, gate Authorizer, publisher Publisher) TaskService {
	return &Task{storage: storage, gate: gate, publisher: orNop(publisher)}
}

func (t *Task) ForCard(ctx context.Context, actor domain.UserId, cardId domain.CardId) ([]domain.Task, error) {
	loc, err := t.storage.CardLocation(ctx, cardId)
	if err != nil {
		return nil, err
	}
	if _, err := t.gate.Authorize(ctx, actor, loc.BoardId, permission.View); err != nil {
		return nil, err
	}
	return t.storage.GetCardTasks(ctx, cardId)
}

// Create appends a todo task to a project card.
func (t *Task) Create(ctx context.Context, actor domain.UserId, data domain.TaskCreationData) (domain.Task, error) {
	loc, err := t.storage.CardLocation(ctx, data.ProjectCardId)
	if err != nil {
		return domain.Task{}, err
	}
	if _, err := t.gate.Authorize(ctx, actor, loc.BoardId, permission.CreateTask); err != nil {
		return domain.Task{}, err
	}
	if loc.Type != domain.CardTypeProject {
		return domain.Task{}, &internal_errors.ValidationError{Message: "Tasks can only be added to project cards"}
	}
	if data.Title, err = requireTitle("Task", data.Title); err != nil {
		return domain.Task{}, err
	}
	if err := checkDescription(data.Description); err != nil {
		return domain.Task{}, err
	}

	task, err := t.storage.CreateTask(ctx, data)
	if err != nil {
		return domain.Task{}, err
	}
	publish(t.publisher, loc.BoardId, api.EventCreated, "task", task)
	return task, nil
}

func (t *Task) Update(ctx context.Context, actor domain.UserId, taskId domain.TaskId, data domain.TaskUpdateData) (domain.Task, error) {
	loc, err := t.authorize(ctx, actor, taskId, permission.UpdateTask)
	if err != nil {
		return domain.Task{}, err
	}
	if data.Empty() {
		return domain.Task{}, errNothingToUpdate
	}
	if data.Title, err = optionalTitle("Task", data.Title); err != nil {
		return domain.Task{}, err
	}
	if err := checkDescription(data.Description); err != nil {
		return domain.Task{}, err
	}
	if err := checkStatus(data.Status); err != nil {
		return domain.Task{}, err
	}
	if err := checkPosition(data.Position); err != nil {
		return domain.Task{}, err
	}

	task, err := t.storage.UpdateTask(ctx, taskId, data)
	if err != nil {
		return domain.Task{}, err
	}
	publish(t.publisher, loc.BoardId, api.EventUpdated, "task", task)
	return task, nil
}

func (t *Task) Delete(ctx context.Context, actor domain.UserId, taskId domain.TaskId) error {
	loc, err := t.authorize(ctx, actor, taskId, permission.DeleteTask)
	if err != nil {
		return err
	}
	if err := t.storage.DeleteTask(ctx, taskId); err != nil {
		return err
	}
	publish(t.publisher, loc.BoardId, api.EventDeleted, "task", idPayload{Id: taskId})
	return nil
}

func (t *Task) AddLabel(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	loc, err := t.authorize(ctx, actor, taskId, permission.UpdateTask)
	if err != nil {
		return domain.Task{}, err
	}
	task, err := t.storage.AddLabelToTask(ctx, taskId, labelId)
	if err != nil {
		return domain.Task{}, err
	}
	publish(t.publisher, loc.BoardId, api.EventUpdated, "task", task)
	return task, nil
}

func (t *Task) RemoveLabel(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	loc, err := t.authorize(ctx, actor, taskId, permission.UpdateTask)
	if err != nil {
		return domain.Task{}, err
	}
	task, err := t.storage.RemoveLabelFromTask(ctx, taskId, labelId)
	if err != nil {
		return domain.Task{}, err
	}
	publish(t.publisher, loc.BoardId, api.EventUpdated, "task", task)
	return task, nil
}

func (t *Task) authorize(ctx context.Context, actor domain.UserId, taskId domain.TaskId, action permission.Action) (domain.TaskLocation, error) {
	loc, err := t.storage.TaskLocation(ctx, taskId)
	if err != nil {
		return domain.TaskLocation{}, err
	}
	if _, err := t.gate.Authorize(ctx, actor, loc.BoardId, action); err != nil {
		return domain.TaskLocation{}, err
	}
	return loc, nil
}
