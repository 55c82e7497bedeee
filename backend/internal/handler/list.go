package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetLists(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	lists, err := h.lists.ForBoard(r.Context(), actor, chi.URLParam(r, "board"))
	if fail(w, err) {
		return
	}

	resp := api.ListsResponse{Lists: make([]api.ListResponse, 0, len(lists))}
	for _, l := range lists {
		resp.Lists = append(resp.Lists, api.NewListResponse(l, h.render))
	}
	writeJSON(w, resp)
}

func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.CreateListRequest](w, r)
	if !ok {
		return
	}

	list, err := h.lists.Create(r.Context(), actor, domain.ListCreationData{
		BoardId:  chi.URLParam(r, "board"),
		Title:    body.Title,
		Position: body.Position,
	})
	if fail(w, err) {
		return
	}
	writeCreated(w, api.NewListResponse(list, h.render))
}

func (h *Handler) UpdateList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateListRequest](w, r)
	if !ok {
		return
	}

	list, err := h.lists.Update(r.Context(), actor, chi.URLParam(r, "list"), domain.ListUpdateData{
		Title:    body.Title,
		Position: body.Position,
	})
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewListResponse(list, h.render))
}

func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.lists.Delete(r.Context(), actor, chi.URLParam(r, "list"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
