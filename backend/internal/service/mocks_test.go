package service

import (
	"context"
	"sync"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

// MockStorage implements every storage interface of this package. Unset
// functions return zero values.
type MockStorage struct {
	getRoleFunc func(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Role, error)

	createBoardFunc      func(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	getBoardFunc         func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	getBoardsForUserFunc func(ctx context.Context, userId domain.UserId) ([]domain.Board, error)
	updateBoardFunc      func(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	deleteBoardFunc      func(ctx context.Context, id domain.BoardId) error

	getBoardListsFunc func(ctx context.Context, boardId domain.BoardId) ([]domain.List, error)
	getListFunc       func(ctx context.Context, id domain.ListId) (domain.List, error)
	createListFunc    func(ctx context.Context, data domain.ListCreationData) (domain.List, error)
	updateListFunc    func(ctx context.Context, id domain.ListId, data domain.ListUpdateData) (domain.List, error)
	deleteListFunc    func(ctx context.Context, id domain.ListId) error

	cardLocationFunc        func(ctx context.Context, id domain.CardId) (domain.CardLocation, error)
	getCardFunc             func(ctx context.Context, id domain.CardId) (domain.Card, error)
	createCardFunc          func(ctx context.Context, data domain.CardCreationData) (domain.Card, error)
	updateCardFunc          func(ctx context.Context, id domain.CardId, data domain.CardUpdateData) (domain.Card, error)
	moveCardFunc            func(ctx context.Context, id domain.CardId, source, target domain.ListId) (domain.Card, error)
	deleteCardFunc          func(ctx context.Context, id domain.CardId) error
	addLabelToCardFunc      func(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
	removeLabelFromCardFunc func(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)

	taskLocationFunc        func(ctx context.Context, id domain.TaskId) (domain.TaskLocation, error)
	getCardTasksFunc        func(ctx context.Context, cardId domain.CardId) ([]domain.Task, error)
	createTaskFunc          func(ctx context.Context, data domain.TaskCreationData) (domain.Task, error)
	updateTaskFunc          func(ctx context.Context, id domain.TaskId, data domain.TaskUpdateData) (domain.Task, error)
	deleteTaskFunc          func(ctx context.Context, id domain.TaskId) error
	addLabelToTaskFunc      func(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
	removeLabelFromTaskFunc func(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)

	getBoardLabelsFunc func(ctx context.Context, boardId domain.BoardId) ([]domain.Label, error)
	getLabelFunc       func(ctx context.Context, id domain.LabelId) (domain.Label, error)
	createLabelFunc    func(ctx context.Context, data domain.LabelCreationData) (domain.Label, error)
	updateLabelFunc    func(ctx context.Context, id domain.LabelId, data domain.LabelUpdateData) (domain.Label, error)
	deleteLabelFunc    func(ctx context.Context, id domain.LabelId) error

	getBoardMembersFunc  func(ctx context.Context, boardId domain.BoardId) ([]domain.Membership, error)
	getMembershipFunc    func(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Membership, error)
	addMemberFunc        func(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error)
	updateMemberRoleFunc func(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error)
	removeMemberFunc     func(ctx context.Context, boardId domain.BoardId, userId domain.UserId) error
	getUserByEmailFunc   func(ctx context.Context, email string) (domain.User, error)

	getCommentsFunc   func(ctx context.Context, target domain.CommentTarget) ([]domain.Comment, error)
	getCommentFunc    func(ctx context.Context, id domain.CommentId) (domain.Comment, error)
	addCommentFunc    func(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
	deleteCommentFunc func(ctx context.Context, id domain.CommentId) error

	ensureUserFunc    func(ctx context.Context, identity domain.Identity) (domain.User, error)
	getUserFunc       func(ctx context.Context, id domain.UserId) (domain.User, error)
	updateProfileFunc func(ctx context.Context, id domain.UserId, data domain.ProfileUpdateData) (domain.User, error)
}

func (m *MockStorage) GetRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Role, error) {
	if m.getRoleFunc != nil {
		return m.getRoleFunc(ctx, boardId, userId)
	}
	return "", nil
}

func (m *MockStorage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	if m.createBoardFunc != nil {
		return m.createBoardFunc(ctx, data)
	}
	return domain.Board{}, nil
}

func (m *MockStorage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.getBoardFunc != nil {
		return m.getBoardFunc(ctx, id)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockStorage) GetBoardsForUser(ctx context.Context, userId domain.UserId) ([]domain.Board, error) {
	if m.getBoardsForUserFunc != nil {
		return m.getBoardsForUserFunc(ctx, userId)
	}
	return nil, nil
}

func (m *MockStorage) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	if m.updateBoardFunc != nil {
		return m.updateBoardFunc(ctx, id, data)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockStorage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	if m.deleteBoardFunc != nil {
		return m.deleteBoardFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) GetBoardLists(ctx context.Context, boardId domain.BoardId) ([]domain.List, error) {
	if m.getBoardListsFunc != nil {
		return m.getBoardListsFunc(ctx, boardId)
	}
	return nil, nil
}

func (m *MockStorage) GetList(ctx context.Context, id domain.ListId) (domain.List, error) {
	if m.getListFunc != nil {
		return m.getListFunc(ctx, id)
	}
	return domain.List{Id: id}, nil
}

func (m *MockStorage) CreateList(ctx context.Context, data domain.ListCreationData) (domain.List, error) {
	if m.createListFunc != nil {
		return m.createListFunc(ctx, data)
	}
	return domain.List{BoardId: data.BoardId, Title: data.Title}, nil
}

func (m *MockStorage) UpdateList(ctx context.Context, id domain.ListId, data domain.ListUpdateData) (domain.List, error) {
	if m.updateListFunc != nil {
		return m.updateListFunc(ctx, id, data)
	}
	return domain.List{Id: id}, nil
}

func (m *MockStorage) DeleteList(ctx context.Context, id domain.ListId) error {
	if m.deleteListFunc != nil {
		return m.deleteListFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) CardLocation(ctx context.Context, id domain.CardId) (domain.CardLocation, error) {
	if m.cardLocationFunc != nil {
		return m.cardLocationFunc(ctx, id)
	}
	return domain.CardLocation{CardId: id}, nil
}

func (m *MockStorage) GetCard(ctx context.Context, id domain.CardId) (domain.Card, error) {
	if m.getCardFunc != nil {
		return m.getCardFunc(ctx, id)
	}
	return domain.Card{Id: id}, nil
}

func (m *MockStorage) CreateCard(ctx context.Context, data domain.CardCreationData) (domain.Card, error) {
	if m.createCardFunc != nil {
		return m.createCardFunc(ctx, data)
	}
	return domain.Card{ListId: data.ListId, Title: data.Title, Type: data.Type}, nil
}

func (m *MockStorage) UpdateCard(ctx context.Context, id domain.CardId, data domain.CardUpdateData) (domain.Card, error) {
	if m.updateCardFunc != nil {
		return m.updateCardFunc(ctx, id, data)
	}
	return domain.Card{Id: id}, nil
}

func (m *MockStorage) MoveCard(ctx context.Context, id domain.CardId, source, target domain.ListId) (domain.Card, error) {
	if m.moveCardFunc != nil {
		return m.moveCardFunc(ctx, id, source, target)
	}
	return domain.Card{Id: id, ListId: target}, nil
}

func (m *MockStorage) DeleteCard(ctx context.Context, id domain.CardId) error {
	if m.deleteCardFunc != nil {
		return m.deleteCardFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) AddLabelToCard(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	if m.addLabelToCardFunc != nil {
		return m.addLabelToCardFunc(ctx, cardId, labelId)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *MockStorage) RemoveLabelFromCard(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	if m.removeLabelFromCardFunc != nil {
		return m.removeLabelFromCardFunc(ctx, cardId, labelId)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *MockStorage) TaskLocation(ctx context.Context, id domain.TaskId) (domain.TaskLocation, error) {
	if m.taskLocationFunc != nil {
		return m.taskLocationFunc(ctx, id)
	}
	return domain.TaskLocation{TaskId: id}, nil
}

func (m *MockStorage) GetCardTasks(ctx context.Context, cardId domain.CardId) ([]domain.Task, error) {
	if m.getCardTasksFunc != nil {
		return m.getCardTasksFunc(ctx, cardId)
	}
	return nil, nil
}

func (m *MockStorage) CreateTask(ctx context.Context, data domain.TaskCreationData) (domain.Task, error) {
	if m.createTaskFunc != nil {
		return m.createTaskFunc(ctx, data)
	}
	return domain.Task{ProjectCardId: data.ProjectCardId, Title: data.Title, Status: domain.StatusTodo}, nil
}

func (m *MockStorage) UpdateTask(ctx context.Context, id domain.TaskId, data domain.TaskUpdateData) (domain.Task, error) {
	if m.updateTaskFunc != nil {
		return m.updateTaskFunc(ctx, id, data)
	}
	return domain.Task{Id: id}, nil
}

func (m *MockStorage) DeleteTask(ctx context.Context, id domain.TaskId) error {
	if m.deleteTaskFunc != nil {
		return m.deleteTaskFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) AddLabelToTask(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	if m.addLabelToTaskFunc != nil {
		return m.addLabelToTaskFunc(ctx, taskId, labelId)
	}
	return domain.Task{Id: taskId}, nil
}

func (m *MockStorage) RemoveLabelFromTask(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	if m.removeLabelFromTaskFunc != nil {
		return m.removeLabelFromTaskFunc(ctx, taskId, labelId)
	}
	return domain.Task{Id: taskId}, nil
}

func (m *MockStorage) GetBoardLabels(ctx context.Context, boardId domain.BoardId) ([]domain.Label, error) {
	if m.getBoardLabelsFunc != nil {
		return m.getBoardLabelsFunc(ctx, boardId)
	}
	return nil, nil
}

func (m *MockStorage) GetLabel(ctx context.Context, id domain.LabelId) (domain.Label, error) {
	if m.getLabelFunc != nil {
		return m.getLabelFunc(ctx, id)
	}
	return domain.Label{Id: id}, nil
}

func (m *MockStorage) CreateLabel(ctx context.Context, data domain.LabelCreationData) (domain.Label, error) {
	if m.createLabelFunc != nil {
		return m.createLabelFunc(ctx, data)
	}
	return domain.Label{BoardId: data.BoardId, Text: data.Text, Color: data.Color}, nil
}

func (m *MockStorage) UpdateLabel(ctx context.Context, id domain.LabelId, data domain.LabelUpdateData) (domain.Label, error) {
	if m.updateLabelFunc != nil {
		return m.updateLabelFunc(ctx, id, data)
	}
	return domain.Label{Id: id}, nil
}

func (m *MockStorage) DeleteLabel(ctx context.Context, id domain.LabelId) error {
	if m.deleteLabelFunc != nil {
		return m.deleteLabelFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) GetBoardMembers(ctx context.Context, boardId domain.BoardId) ([]domain.Membership, error) {
	if m.getBoardMembersFunc != nil {
		return m.getBoardMembersFunc(ctx, boardId)
	}
	return nil, nil
}

func (m *MockStorage) GetMembership(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Membership, error) {
	if m.getMembershipFunc != nil {
		return m.getMembershipFunc(ctx, boardId, userId)
	}
	return domain.Membership{BoardId: boardId, UserId: userId, Role: domain.RoleMember}, nil
}

func (m *MockStorage) AddMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	if m.addMemberFunc != nil {
		return m.addMemberFunc(ctx, boardId, userId, role)
	}
	return domain.Membership{BoardId: boardId, UserId: userId, Role: role}, nil
}

func (m *MockStorage) UpdateMemberRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	if m.updateMemberRoleFunc != nil {
		return m.updateMemberRoleFunc(ctx, boardId, userId, role)
	}
	return domain.Membership{BoardId: boardId, UserId: userId, Role: role}, nil
}

func (m *MockStorage) RemoveMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) error {
	if m.removeMemberFunc != nil {
		return m.removeMemberFunc(ctx, boardId, userId)
	}
	return nil
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return domain.User{Id: "user_" + email}, nil
}

func (m *MockStorage) GetComments(ctx context.Context, target domain.CommentTarget) ([]domain.Comment, error) {
	if m.getCommentsFunc != nil {
		return m.getCommentsFunc(ctx, target)
	}
	return nil, nil
}

func (m *MockStorage) GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error) {
	if m.getCommentFunc != nil {
		return m.getCommentFunc(ctx, id)
	}
	return domain.Comment{Id: id}, nil
}

func (m *MockStorage) AddComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, data)
	}
	return domain.Comment{Text: data.Text, Author: data.Author, ProjectCardId: data.Target.CardId, TaskId: data.Target.TaskId}, nil
}

func (m *MockStorage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) EnsureUser(ctx context.Context, identity domain.Identity) (domain.User, error) {
	if m.ensureUserFunc != nil {
		return m.ensureUserFunc(ctx, identity)
	}
	return domain.User{Id: identity.Id}, nil
}

func (m *MockStorage) GetUser(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockStorage) UpdateProfile(ctx context.Context, id domain.UserId, data domain.ProfileUpdateData) (domain.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, data)
	}
	return domain.User{Id: id}, nil
}

// roles returns a getRoleFunc backed by a user -> role table for one board.
func roles(table map[domain.UserId]domain.Role) func(context.Context, domain.BoardId, domain.UserId) (domain.Role, error) {
	return func(_ context.Context, _ domain.BoardId, userId domain.UserId) (domain.Role, error) {
		return table[userId], nil
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []api.Event
}

func (p *recordingPublisher) Publish(e api.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Events() []api.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]api.Event(nil), p.events...)
}
