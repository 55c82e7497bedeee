package setup

import (
	"context"

	"github.com/flvvius/hackathon-sisc-2025/backend/internal/events"
	"github.com/flvvius/hackathon-sisc-2025/backend/internal/handler"
	"github.com/flvvius/hackathon-sisc-2025/backend/internal/service"
	"github.com/flvvius/hackathon-sisc-2025/backend/internal/storage/pg"
	"github.com/flvvius/hackathon-sisc-2025/shared/config"
	"github.com/flvvius/hackathon-sisc-2025/shared/jwt"
	"github.com/flvvius/hackathon-sisc-2025/shared/markdown"
	mw "github.com/flvvius/hackathon-sisc-2025/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Bus            *events.Bus
	Gate           *service.Gate
	Users          *service.User
	AuthMiddleware *mw.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Wire(storage, cfg), nil
}

// Wire builds services and the handler on top of an opened storage.
func Wire(storage *pg.Storage, cfg *config.Config) *Dependencies {
	bus := events.NewBus(cfg.SSEHeartbeat())
	gate := service.NewGate(storage)
	users := service.NewUser(storage, cfg.UserCacheTTL())
	text := markdown.New()

	h := handler.New(handler.Services{
		Users:    users,
		Boards:   service.NewBoard(storage, gate, bus),
		Lists:    service.NewList(storage, gate, bus),
		Cards:    service.NewCard(storage, gate, bus),
		Tasks:    service.NewTask(storage, gate, bus),
		Labels:   service.NewLabel(storage, gate, bus),
		Members:  service.NewMember(storage, gate, bus),
		Comments: service.NewComment(storage, gate, bus),
	}, bus, storage, text.Render)

	// jwt ttl only matters for locally minted tokens
	verifier := jwt.New(cfg.JwtKey(), cfg.Public.JwtIssuer, 0)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Bus:            bus,
		Gate:           gate,
		Users:          users,
		AuthMiddleware: mw.NewAuth(verifier, users, cfg.Public.SecureCookies),
		Config:         cfg,
	}
}
