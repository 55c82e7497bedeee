package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

func membersPath(boardId domain.BoardId) string {
	return "/boards/" + url.PathEscape(boardId) + "/members"
}

func (c *APIClient) Members(ctx context.Context, boardId domain.BoardId) ([]domain.Membership, error) {
	var resp api.MembersResponse
	if err := c.do(ctx, http.MethodGet, membersPath(boardId), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

func (c *APIClient) AddMember(ctx context.Context, boardId domain.BoardId, req api.AddMemberRequest) (domain.Membership, error) {
	var m domain.Membership
	err := c.do(ctx, http.MethodPost, membersPath(boardId), req, &m)
	return m, err
}

func (c *APIClient) UpdateMemberRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	var m domain.Membership
	err := c.do(ctx, http.MethodPatch, membersPath(boardId)+"/"+url.PathEscape(userId), api.UpdateMemberRoleRequest{Role: role}, &m)
	return m, err
}

func (c *APIClient) RemoveMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) error {
	return c.do(ctx, http.MethodDelete, membersPath(boardId)+"/"+url.PathEscape(userId), nil, nil)
}

// === Label Methods ===

func (c *APIClient) Labels(ctx context.Context, boardId domain.BoardId) ([]domain.Label, error) {
	var resp api.LabelsResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardId)+"/labels", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Labels, nil
}

func (c *APIClient) CreateLabel(ctx context.Context, boardId domain.BoardId, req api.CreateLabelRequest) (domain.Label, error) {
	var label domain.Label
	err := c.do(ctx, http.MethodPost, "/boards/"+url.PathEscape(boardId)+"/labels", req, &label)
	return label, err
}

// === User Methods ===

func (c *APIClient) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodGet, "/me", nil, &user)
	return user, err
}
