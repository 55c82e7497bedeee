package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	members, err := h.members.ForBoard(r.Context(), actor, chi.URLParam(r, "board"))
	if fail(w, err) {
		return
	}
	if members == nil {
		members = []domain.Membership{}
	}
	writeJSON(w, api.MembersResponse{Members: members})
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.AddMemberRequest](w, r)
	if !ok {
		return
	}

	role := body.Role
	if role == "" {
		role = domain.RoleMember
	}
	member, err := h.members.Add(r.Context(), actor, chi.URLParam(r, "board"), body.Email, role)
	if fail(w, err) {
		return
	}
	writeCreated(w, member)
}

func (h *Handler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateMemberRoleRequest](w, r)
	if !ok {
		return
	}

	member, err := h.members.UpdateRole(r.Context(), actor, chi.URLParam(r, "board"), chi.URLParam(r, "user"), body.Role)
	if fail(w, err) {
		return
	}
	writeJSON(w, member)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.members.Remove(r.Context(), actor, chi.URLParam(r, "board"), chi.URLParam(r, "user"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
