package api

import "github.com/flvvius/hackathon-sisc-2025/shared/domain"

type AddMemberRequest struct {
	Email string      `json:"email" validate:"required,email"`
	Role  domain.Role `json:"role,omitempty"`
}

type UpdateMemberRoleRequest struct {
	Role domain.Role `json:"role" validate:"required"`
}

type MembersResponse struct {
	Members []domain.Membership `json:"members"`
}
