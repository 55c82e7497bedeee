package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	boards, err := h.boards.ForUser(r.Context(), actor)
	if fail(w, err) {
		return
	}

	resp := api.BoardListResponse{Boards: make([]api.BoardResponse, 0, len(boards))}
	for _, b := range boards {
		resp.Boards = append(resp.Boards, api.NewBoardResponse(b, h.render))
	}
	writeJSON(w, resp)
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.CreateBoardRequest](w, r)
	if !ok {
		return
	}

	board, err := h.boards.Create(r.Context(), actor, body.Title, body.Description)
	if fail(w, err) {
		return
	}
	writeCreated(w, api.NewBoardResponse(board, h.render))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	board, err := h.boards.Get(r.Context(), actor, chi.URLParam(r, "board"))
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewBoardResponse(board, h.render))
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateBoardRequest](w, r)
	if !ok {
		return
	}

	board, err := h.boards.Update(r.Context(), actor, chi.URLParam(r, "board"), domain.BoardUpdateData{
		Title:       body.Title,
		Description: body.Description,
	})
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewBoardResponse(board, h.render))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.boards.Delete(r.Context(), actor, chi.URLParam(r, "board"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BoardEvents streams the board's change notifications. The router checks
// view access before this runs.
func (h *Handler) BoardEvents(w http.ResponseWriter, r *http.Request) {
	h.events.ServeSSE(w, r, chi.URLParam(r, "board"))
}
