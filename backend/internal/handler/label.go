package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetLabels(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	labels, err := h.labels.ForBoard(r.Context(), actor, chi.URLParam(r, "board"))
	if fail(w, err) {
		return
	}
	if labels == nil {
		labels = []domain.Label{}
	}
	writeJSON(w, api.LabelsResponse{Labels: labels})
}

func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.CreateLabelRequest](w, r)
	if !ok {
		return
	}

	label, err := h.labels.Create(r.Context(), actor, domain.LabelCreationData{
		BoardId: chi.URLParam(r, "board"),
		Text:    body.Text,
		Color:   body.Color,
	})
	if fail(w, err) {
		return
	}
	writeCreated(w, label)
}

func (h *Handler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateLabelRequest](w, r)
	if !ok {
		return
	}

	label, err := h.labels.Update(r.Context(), actor, chi.URLParam(r, "label"), domain.LabelUpdateData{
		Text:  body.Text,
		Color: body.Color,
	})
	if fail(w, err) {
		return
	}
	writeJSON(w, label)
}

func (h *Handler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.labels.Delete(r.Context(), actor, chi.URLParam(r, "label"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
