package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	user, err := h.users.Me(r.Context(), actor)
	if fail(w, err) {
		return
	}
	writeJSON(w, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateProfileRequest](w, r)
	if !ok {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), actor, domain.ProfileUpdateData{
		GithubUsername: body.GithubUsername,
		GitlabUsername: body.GitlabUsername,
	})
	if fail(w, err) {
		return
	}
	writeJSON(w, user)
}
