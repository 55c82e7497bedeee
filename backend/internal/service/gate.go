package service

import (
	"context"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/flvvius/hackathon-sisc-2025/shared/middleware/metrics"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

// RoleStorage resolves memberships. GetRole returns "" for a non-member and
// a NotFoundError when the board does not exist.
type RoleStorage interface {
	GetRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Role, error)
}

// Gate is the authorization gate every board-scoped service call goes through.
type Gate struct {
	storage RoleStorage
}

func NewGate(storage RoleStorage) *Gate {
	return &Gate{storage: storage}
}

// Authorize returns the actor's role on the board when it allows action.
func (g *Gate) Authorize(ctx context.Context, actor domain.UserId, boardId domain.BoardId, action permission.Action) (domain.Role, error) {
	if actor == "" {
		return "", &internal_errors.PermissionError{Message: "Please sign-in", Unauthenticated: true}
	}
	if boardId == "" {
		return "", &internal_errors.ValidationError{Message: "Board id is required"}
	}
	role, err := g.storage.GetRole(ctx, boardId, actor)
	if err != nil {
		return "", err
	}
	if err := permission.Check(role, action); err != nil {
		logger.Log.Info("permission denied", "actor", actor, "board", boardId, "action", action, "role", role)
		metrics.PermissionDenials.WithLabelValues(string(action)).Inc()
		return role, err
	}
	return role, nil
}

// Authorizer is what services need from the gate.
type Authorizer interface {
	Authorize(ctx context.Context, actor domain.UserId, boardId domain.BoardId, action permission.Action) (domain.Role, error)
}
