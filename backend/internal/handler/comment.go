package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

// commentTarget picks the parent from whichever of {card} or {task} the
// route carries.
func commentTarget(r *http.Request) domain.CommentTarget {
	if id := chi.URLParam(r, "task"); id != "" {
		return domain.CommentTarget{TaskId: &id}
	}
	id := chi.URLParam(r, "card")
	return domain.CommentTarget{CardId: &id}
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	comments, err := h.comments.List(r.Context(), actor, commentTarget(r))
	if fail(w, err) {
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	writeJSON(w, api.CommentsResponse{Comments: comments})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.CreateCommentRequest](w, r)
	if !ok {
		return
	}

	comment, err := h.comments.Add(r.Context(), actor, commentTarget(r), body.Text)
	if fail(w, err) {
		return
	}
	writeCreated(w, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.comments.Delete(r.Context(), actor, chi.URLParam(r, "comment"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
