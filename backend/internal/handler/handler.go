package handler

import (
	"context"
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/backend/internal/service"
	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	mw "github.com/flvvius/hackathon-sisc-2025/shared/middleware"
	"github.com/flvvius/hackathon-sisc-2025/shared/utils"
)

// EventStream serves a board's change notifications to one client.
type EventStream interface {
	ServeSSE(w http.ResponseWriter, r *http.Request, boardId domain.BoardId)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Users    service.UserService
	Boards   service.BoardService
	Lists    service.ListService
	Cards    service.CardService
	Tasks    service.TaskService
	Labels   service.LabelService
	Members  service.MemberService
	Comments service.CommentService
}

type Handler struct {
	users    service.UserService
	boards   service.BoardService
	lists    service.ListService
	cards    service.CardService
	tasks    service.TaskService
	labels   service.LabelService
	members  service.MemberService
	comments service.CommentService
	events   EventStream
	health   HealthChecker
	render   api.Renderer
}

func New(s Services, events EventStream, health HealthChecker, render api.Renderer) *Handler {
	return &Handler{
		users:    s.Users,
		boards:   s.Boards,
		lists:    s.Lists,
		cards:    s.Cards,
		tasks:    s.Tasks,
		labels:   s.Labels,
		members:  s.Members,
		comments: s.Comments,
		events:   events,
		health:   health,
		render:   render,
	}
}

// requireActor writes a 401 and returns false when the request is anonymous.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.UserId, bool) {
	id, err := mw.ActorId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return "", false
	}
	return id, true
}

// decode reads a JSON body, validating struct tags.
func decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var body T
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return body, false
	}
	return body, true
}

// fail writes err and reports whether there was one.
func fail(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	utils.WriteErrorAndStatusCode(w, err)
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	utils.WriteJSON(w, http.StatusOK, v)
}

func writeCreated(w http.ResponseWriter, v any) {
	utils.WriteJSON(w, http.StatusCreated, v)
}
