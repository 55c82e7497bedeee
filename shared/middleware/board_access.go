package middleware

import (
	"context"
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
	"github.com/flvvius/hackathon-sisc-2025/shared/utils"
	"github.com/go-chi/chi/v5"
)

// BoardGate resolves the actor's role on a board and checks it against action.
type BoardGate interface {
	Authorize(ctx context.Context, actor domain.UserId, boardId domain.BoardId, action permission.Action) (domain.Role, error)
}

const boardRoleKey key = 1

// RequireBoardRole guards routes carrying a {board} URL parameter for
// handlers that do not go through a service (the event stream). The granted
// role is available through GetBoardRole.
// Assumes NeedAuth ran before it.
func RequireBoardRole(gate BoardGate, action permission.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			board := chi.URLParam(r, "board")
			if board == "" {
				http.Error(w, "Board is required", http.StatusBadRequest)
				return
			}

			actor, err := ActorId(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			role, err := gate.Authorize(r.Context(), actor, board, action)
			if err != nil {
				logger.Log.Info("board access denied", "user_id", actor, "board", board, "action", action)
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), boardRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetBoardRole(r *http.Request) domain.Role {
	role, _ := r.Context().Value(boardRoleKey).(domain.Role)
	return role
}
