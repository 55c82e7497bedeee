package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

type MemberService interface {
	ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Membership, error)
	Add(ctx context.Context, actor domain.UserId, boardId domain.BoardId, email string, role domain.Role) (domain.Membership, error)
	UpdateRole(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error)
	Remove(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId) error
}

type Member struct {
	storage   MemberStorage
	gate      Authorizer
	publisher Publisher
}

type MemberStorage interface {
	GetBoardMembers(ctx context.Context, boardId domain.BoardId) ([]domain.Membership, error)
	GetMembership(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Membership, error)
	AddMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error)
	UpdateMemberRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error)
	RemoveMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

func NewMember(storage MemberStorage, gate Authorizer, publisher Publisher) MemberService {
	return &Member{storage: storage, gate: gate, publisher: orNop(publisher)}
}

func (m *Member) ForBoard(ctx context.Context, actor domain.UserId, boardId domain.BoardId) ([]domain.Membership, error) {
	if _, err := m.gate.Authorize(ctx, actor, boardId, permission.View); err != nil {
		return nil, err
	}
	return m.storage.GetBoardMembers(ctx, boardId)
}

// Add gives an existing user (found by email) a role on the board. The
// role defaults to member.
func (m *Member) Add(ctx context.Context, actor domain.UserId, boardId domain.BoardId, email string, role domain.Role) (domain.Membership, error) {
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return domain.Membership{}, invalidRole(role)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Membership{}, &internal_errors.ValidationError{Message: "Email is required"}
	}

	actorRole, err := m.gate.Authorize(ctx, actor, boardId, permission.ManageMembers)
	if err != nil {
		return domain.Membership{}, err
	}
	if err := permission.CanAddMember(actorRole, role); err != nil {
		return domain.Membership{}, err
	}

	user, err := m.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.Membership{}, err
	}
	membership, err := m.storage.AddMember(ctx, boardId, user.Id, role)
	if err != nil {
		return domain.Membership{}, countConflict("add member", err)
	}
	membership.User = &user
	publish(m.publisher, boardId, api.EventCreated, "member", membership)
	return membership, nil
}

// UpdateRole applies the role rules; demoting the last owner is refused by
// the store as a ConflictError.
func (m *Member) UpdateRole(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	if !role.Valid() {
		return domain.Membership{}, invalidRole(role)
	}
	actorRole, err := m.gate.Authorize(ctx, actor, boardId, permission.ManageMembers)
	if err != nil {
		return domain.Membership{}, err
	}
	target, err := m.storage.GetMembership(ctx, boardId, userId)
	if err != nil {
		return domain.Membership{}, err
	}
	if err := permission.CanChangeRole(actorRole, target.Role, role); err != nil {
		return domain.Membership{}, err
	}
	if target.Role == role {
		return target, nil
	}

	membership, err := m.storage.UpdateMemberRole(ctx, boardId, userId, role)
	if err != nil {
		return domain.Membership{}, countConflict("update member role", err)
	}
	publish(m.publisher, boardId, api.EventUpdated, "member", membership)
	return membership, nil
}

// Remove deletes a membership. Any member may remove themselves; removing
// someone else follows the role rules. The last owner always stays.
func (m *Member) Remove(ctx context.Context, actor domain.UserId, boardId domain.BoardId, userId domain.UserId) error {
	if actor == userId {
		if _, err := m.gate.Authorize(ctx, actor, boardId, permission.View); err != nil {
			return err
		}
	} else {
		actorRole, err := m.gate.Authorize(ctx, actor, boardId, permission.ManageMembers)
		if err != nil {
			return err
		}
		target, err := m.storage.GetMembership(ctx, boardId, userId)
		if err != nil {
			return err
		}
		if err := permission.CanRemoveMember(actorRole, target.Role); err != nil {
			return err
		}
	}

	if err := m.storage.RemoveMember(ctx, boardId, userId); err != nil {
		return countConflict("remove member", err)
	}
	publish(m.publisher, boardId, api.EventDeleted, "member", idPayload{Id: userId})
	return nil
}

func invalidRole(role domain.Role) error {
	return &internal_errors.ValidationError{Message: fmt.Sprintf("Unknown role %q", role)}
}
