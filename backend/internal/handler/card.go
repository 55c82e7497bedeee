package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.CreateCardRequest](w, r)
	if !ok {
		return
	}

	card, err := h.cards.Create(r.Context(), actor, domain.CardCreationData{
		ListId:      chi.URLParam(r, "list"),
		Title:       body.Title,
		Description: body.Description,
		Type:        body.Type,
		Status:      body.Status,
		Labels:      body.Labels,
		Assignees:   body.Assignees,
	})
	if fail(w, err) {
		return
	}
	writeCreated(w, api.NewCardResponse(card, h.render))
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	card, err := h.cards.Get(r.Context(), actor, chi.URLParam(r, "card"))
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewCardResponse(card, h.render))
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateCardRequest](w, r)
	if !ok {
		return
	}

	card, err := h.cards.Update(r.Context(), actor, chi.URLParam(r, "card"), domain.CardUpdateData{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Labels:      body.Labels,
		Assignees:   body.Assignees,
	})
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewCardResponse(card, h.render))
}

func (h *Handler) MoveCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.MoveCardRequest](w, r)
	if !ok {
		return
	}

	card, err := h.cards.Move(r.Context(), actor, chi.URLParam(r, "card"), body.SourceListId, body.TargetListId)
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewCardResponse(card, h.render))
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.cards.Delete(r.Context(), actor, chi.URLParam(r, "card"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddCardLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	card, err := h.cards.AddLabel(r.Context(), actor, chi.URLParam(r, "card"), chi.URLParam(r, "label"))
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewCardResponse(card, h.render))
}

func (h *Handler) RemoveCardLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	card, err := h.cards.RemoveLabel(r.Context(), actor, chi.URLParam(r, "card"), chi.URLParam(r, "label"))
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewCardResponse(card, h.render))
}
