package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	mw "github.com/flvvius/hackathon-sisc-2025/shared/middleware"
	"github.com/go-chi/chi/v5"
)

type mockUsers struct {
	MeFunc            func(ctx context.Context, actor domain.UserId) (domain.User, error)
	UpdateProfileFunc func(ctx context.Context, actor domain.UserId, data domain.ProfileUpdateData) (domain.User, error)
}

func (m *mockUsers) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return &domain.User{Id: identity.Id}, nil
}

func (m *mockUsers) Me(ctx context.Context, actor domain.UserId) (domain.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, actor)
	}
	return domain.User{Id: actor}, nil
}

func (m *mockUsers) UpdateProfile(ctx context.Context, actor domain.UserId, data domain.ProfileUpdateData) (domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, actor, data)
	}
	return domain.User{Id: actor}, nil
}

type mockBoards struct {
	CreateFunc  func(ctx context.Context, actor domain.UserId, title string, description *string) (domain.Board, error)
	ForUserFunc func(ctx context.Context, actor domain.UserId) ([]domain.Board, error)
	GetFunc     func(ctx context.Context, actor domain.UserId, boardId domain.BoardId) (domain.Board, error)
	UpdateFunc  func(ctx context.Context, actor domain.UserId, boardId domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	DeleteFunc  func(ctx context.Context, actor domain.UserId, boardId domain.BoardId) error
}

func (m *mockBoards) Create(ctx context.Context, actor domain.UserId, title string, description *string) (domain.Board, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, title, description)
	}
	return domain.Board{}, nil
}

func (m *mockBoards) ForUser(ctx context.Context, actor domain.UserId) ([]domain.Board, error) {
	if m.ForUserFunc != nil {
		return m.ForUserFunc(ctx, actor)
	}
	return nil, nil
}

func (m *mockBoards) Get(ctx context.Context, actor domain.UserId, boardId domain.BoardId) (domain.Board, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, boardId)
	}
	return domain.Board{Id: boardId}, nil
}

func (m *mockBoards) Update(ctx context.Context, actor domain.UserId, boardId domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, boardId, data)
	}
	return domain.Board{Id: boardId}, nil
}

func (m *mockBoards) Delete(ctx context.Context, actor domain.UserId, boardId domain.BoardId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, boardId)
	}
	return nil
}

type mockLists struct {
	ForBoardFunc func(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.List, error)
	CreateFunc   func(ctx context.Context, actor domain.UserId, data domain.ListCreationData) (domain.List, error)
	UpdateFunc   func(ctx context.Context, actor domain.UserId, listId domain.ListId, data domain.ListUpdateData) (domain.List, error)
	DeleteFunc   func(ctx context.Context, actor domain.UserId, listId domain.ListId) error
}

func (m *mockLists) ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.List, error) {
	if m.ForBoardFunc != nil {
		return m.ForBoardFunc(ctx, actor, boardId)
	}
	return nil, nil
}

func (m *mockLists) Create(ctx context.Context, actor domain.UserId, data domain.ListCreationData) (domain.List, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, data)
	}
	return domain.List{BoardId: data.BoardId, Title: data.Title}, nil
}

func (m *mockLists) Update(ctx context.Context, actor domain.UserId, listId domain.ListId, data domain.ListUpdateData) (domain.List, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, listId, data)
	}
	return domain.List{Id: listId}, nil
}

func (m *mockLists) Delete(ctx context.Context, actor domain.UserId, listId domain.ListId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, listId)
	}
	return nil
}

type mockCards struct {
	CreateFunc      func(ctx context.Context, actor domain.UserId, data domain.CardCreationData) (domain.Card, error)
	GetFunc         func(ctx context.Context, actor domain.UserId, cardId domain.CardId) (domain.Card, error)
	UpdateFunc      func(ctx context.Context, actor domain.UserId, cardId domain.CardId, data domain.CardUpdateData) (domain.Card, error)
	MoveFunc        func(ctx context.Context, actor domain.UserId, cardId domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error)
	DeleteFunc      func(ctx context.Context, actor domain.UserId, cardId domain.CardId) error
	AddLabelFunc    func(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
	RemoveLabelFunc func(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error)
}

func (m *mockCards) Create(ctx context.Context, actor domain.UserId, data domain.CardCreationData) (domain.Card, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, data)
	}
	return domain.Card{ListId: data.ListId, Title: data.Title}, nil
}

func (m *mockCards) Get(ctx context.Context, actor domain.UserId, cardId domain.CardId) (domain.Card, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, cardId)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *mockCards) Update(ctx context.Context, actor domain.UserId, cardId domain.CardId, data domain.CardUpdateData) (domain.Card, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, cardId, data)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *mockCards) Move(ctx context.Context, actor domain.UserId, cardId domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, actor, cardId, sourceListId, targetListId)
	}
	return domain.Card{Id: cardId, ListId: targetListId}, nil
}

func (m *mockCards) Delete(ctx context.Context, actor domain.UserId, cardId domain.CardId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, cardId)
	}
	return nil
}

func (m *mockCards) AddLabel(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	if m.AddLabelFunc != nil {
		return m.AddLabelFunc(ctx, actor, cardId, labelId)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *mockCards) RemoveLabel(ctx context.Context, actor domain.UserId, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	if m.RemoveLabelFunc != nil {
		return m.RemoveLabelFunc(ctx, actor, cardId, labelId)
	}
	return domain.Card{Id: cardId}, nil
}

type mockTasks struct {
	ForCardFunc     func(ctx context.Context, actor domain.UserId, cardId domain.CardId) ([]domain.Task, error)
	CreateFunc      func(ctx context.Context, actor domain.UserId, data domain.TaskCreationData) (domain.Task, error)
	UpdateFunc      func(ctx context.Context, actor domain.UserId, taskId domain.TaskId, data domain.TaskUpdateData) (domain.Task, error)
	DeleteFunc      func(ctx context.Context, actor domain.UserId, taskId domain.TaskId) error
	AddLabelFunc    func(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
	RemoveLabelFunc func(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error)
}

func (m *mockTasks) ForCard(ctx context.Context, actor domain.UserId, cardId domain.CardId) ([]domain.Task, error) {
	if m.ForCardFunc != nil {
		return m.ForCardFunc(ctx, actor, cardId)
	}
	return nil, nil
}

func (m *mockTasks) Create(ctx context.Context, actor domain.UserId, data domain.TaskCreationData) (domain.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, data)
	}
	return domain.Task{ProjectCardId: data.ProjectCardId, Title: data.Title}, nil
}

func (m *mockTasks) Update(ctx context.Context, actor domain.UserId, taskId domain.TaskId, data domain.TaskUpdateData) (domain.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, taskId, data)
	}
	return domain.Task{Id: taskId}, nil
}

func (m *mockTasks) Delete(ctx context.Context, actor domain.UserId, taskId domain.TaskId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, taskId)
	}
	return nil
}

func (m *mockTasks) AddLabel(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	if m.AddLabelFunc != nil {
		return m.AddLabelFunc(ctx, actor, taskId, labelId)
	}
	return domain.Task{Id: taskId}, nil
}

func (m *mockTasks) RemoveLabel(ctx context.Context, actor domain.UserId, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	if m.RemoveLabelFunc != nil {
		return m.RemoveLabelFunc(ctx, actor, taskId, labelId)
	}
	return domain.Task{Id: taskId}, nil
}

type mockLabels struct {
	ForBoardFunc func(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Label, error)
	CreateFunc   func(ctx context.Context, actor domain.UserId, data domain.LabelCreationData) (domain.Label, error)
	UpdateFunc   func(ctx context.Context, actor domain.UserId, labelId domain.LabelId, data domain.LabelUpdateData) (domain.Label, error)
	DeleteFunc   func(ctx context.Context, actor domain.UserId, labelId domain.LabelId) error
}

func (m *mockLabels) ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Label, error) {
	if m.ForBoardFunc != nil {
		return m.ForBoardFunc(ctx, actor, boardId)
	}
	return nil, nil
}

func (m *mockLabels) Create(ctx context.Context, actor domain.UserId, data domain.LabelCreationData) (domain.Label, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, data)
	}
	return domain.Label{BoardId: data.BoardId, Text: data.Text, Color: data.Color}, nil
}

func (m *mockLabels) Update(ctx context.Context, actor domain.UserId, labelId domain.LabelId, data domain.LabelUpdateData) (domain.Label, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, labelId, data)
	}
	return domain.Label{Id: labelId}, nil
}

func (m *mockLabels) Delete(ctx context.Context, actor domain.UserId, labelId domain.LabelId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, labelId)
	}
	return nil
}

type mockMembers struct {
	ForBoardFunc   func(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Membership, error)
	AddFunc        func(ctx context.Context, actor domain.UserId, boardId domain.BoardId, email string, role domain.Role) (domain.Membership, error)
	UpdateRoleFunc func(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error)
	RemoveFunc     func(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId) error
}

func (m *mockMembers) ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Membership, error) {
	if m.ForBoardFunc != nil {
		return m.ForBoardFunc(ctx, actor, boardId)
	}
	return nil, nil
}

func (m *mockMembers) Add(ctx context.Context, actor domain.UserId, boardId domain.BoardId, email string, role domain.Role) (domain.Membership, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, actor, boardId, email, role)
	}
	return domain.Membership{BoardId: boardId, Role: role}, nil
}

func (m *mockMembers) UpdateRole(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, actor, boardId, userId, role)
	}
	return domain.Membership{BoardId: boardId, UserId: userId, Role: role}, nil
}

func (m *mockMembers) Remove(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, actor, boardId, userId)
	}
	return nil
}

type mockComments struct {
	ListFunc   func(ctx context.Context, actor domain.UserId, target domain.CommentTarget) ([]domain.Comment, error)
	AddFunc    func(ctx context.Context, actor domain.UserId, target domain.CommentTarget, text string) (domain.Comment, error)
	DeleteFunc func(ctx context.Context, actor domain.UserId, commentId domain.CommentId) error
}

func (m *mockComments) List(ctx context.Context, actor domain.UserId, target domain.CommentTarget) ([]domain.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, target)
	}
	return nil, nil
}

func (m *mockComments) Add(ctx context.Context, actor domain.UserId, target domain.CommentTarget, text string) (domain.Comment, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, actor, target, text)
	}
	return domain.Comment{Text: text, Author: actor}, nil
}

func (m *mockComments) Delete(ctx context.Context, actor domain.UserId, commentId domain.CommentId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, commentId)
	}
	return nil
}

type mockStream struct {
	served domain.BoardId
}

func (m *mockStream) ServeSSE(w http.ResponseWriter, r *http.Request, boardId domain.BoardId) {
	m.served = boardId
	w.Header().Set("Content-Type", "text/event-stream")
	w.Write([]byte(": connected\n\n"))
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(ctx context.Context) error {
	return m.err
}

type fixture struct {
	users    *mockUsers
	boards   *mockBoards
	lists    *mockLists
	cards    *mockCards
	tasks    *mockTasks
	labels   *mockLabels
	members  *mockMembers
	comments *mockComments
	stream   *mockStream
	health   *mockHealth
	router   chi.Router
}

func newFixture() *fixture {
	f := &fixture{
		users:    &mockUsers{},
		boards:   &mockBoards{},
		lists:    &mockLists{},
		cards:    &mockCards{},
		tasks:    &mockTasks{},
		labels:   &mockLabels{},
		members:  &mockMembers{},
		comments: &mockComments{},
		stream:   &mockStream{},
		health:   &mockHealth{},
	}
	h := New(Services{
		Users:    f.users,
		Boards:   f.boards,
		Lists:    f.lists,
		Cards:    f.cards,
		Tasks:    f.tasks,
		Labels:   f.labels,
		Members:  f.members,
		Comments: f.comments,
	}, f.stream, f.health, func(md string) string { return "<p>" + md + "</p>" })

	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/v1/me", h.Me)
	r.Patch("/v1/me", h.UpdateProfile)
	r.Get("/v1/boards", h.GetBoards)
	r.Post("/v1/boards", h.CreateBoard)
	r.Get("/v1/boards/{board}", h.GetBoard)
	r.Patch("/v1/boards/{board}", h.UpdateBoard)
	r.Delete("/v1/boards/{board}", h.DeleteBoard)
	r.Get("/v1/boards/{board}/events", h.BoardEvents)
	r.Get("/v1/boards/{board}/lists", h.GetLists)
	r.Post("/v1/boards/{board}/lists", h.CreateList)
	r.Get("/v1/boards/{board}/members", h.GetMembers)
	r.Post("/v1/boards/{board}/members", h.AddMember)
	r.Patch("/v1/boards/{board}/members/{user}", h.UpdateMemberRole)
	r.Delete("/v1/boards/{board}/members/{user}", h.RemoveMember)
	r.Get("/v1/boards/{board}/labels", h.GetLabels)
	r.Post("/v1/boards/{board}/labels", h.CreateLabel)
	r.Patch("/v1/labels/{label}", h.UpdateLabel)
	r.Delete("/v1/labels/{label}", h.DeleteLabel)
	r.Patch("/v1/lists/{list}", h.UpdateList)
	r.Delete("/v1/lists/{list}", h.DeleteList)
	r.Post("/v1/lists/{list}/cards", h.CreateCard)
	r.Get("/v1/cards/{card}", h.GetCard)
	r.Patch("/v1/cards/{card}", h.UpdateCard)
	r.Delete("/v1/cards/{card}", h.DeleteCard)
	r.Post("/v1/cards/{card}/move", h.MoveCard)
	r.Put("/v1/cards/{card}/labels/{label}", h.AddCardLabel)
	r.Delete("/v1/cards/{card}/labels/{label}", h.RemoveCardLabel)
	r.Get("/v1/cards/{card}/tasks", h.GetTasks)
	r.Post("/v1/cards/{card}/tasks", h.CreateTask)
	r.Get("/v1/cards/{card}/comments", h.GetComments)
	r.Post("/v1/cards/{card}/comments", h.AddComment)
	r.Patch("/v1/tasks/{task}", h.UpdateTask)
	r.Delete("/v1/tasks/{task}", h.DeleteTask)
	r.Put("/v1/tasks/{task}/labels/{label}", h.AddTaskLabel)
	r.Delete("/v1/tasks/{task}/labels/{label}", h.RemoveTaskLabel)
	r.Get("/v1/tasks/{task}/comments", h.GetComments)
	r.Post("/v1/tasks/{task}/comments", h.AddComment)
	r.Delete("/v1/comments/{comment}", h.DeleteComment)
	f.router = r
	return f
}

// do sends a request as actor; an empty actor sends it anonymously.
func (f *fixture) do(method, path, body, actor string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if actor != "" {
		req = req.WithContext(context.WithValue(req.Context(), mw.UserClaimsKey, &domain.User{Id: actor}))
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}
