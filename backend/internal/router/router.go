package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flvvius/hackathon-sisc-2025/backend/internal/setup"
	mw "github.com/flvvius/hackathon-sisc-2025/shared/middleware"
	"github.com/flvvius/hackathon-sisc-2025/shared/middleware/metrics"
	rl "github.com/flvvius/hackathon-sisc-2025/shared/middleware/ratelimiter"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

// New creates the chi router with the middleware stack and all routes.
// The returned stop func releases the rate limiters on shutdown.
func New(deps *setup.Dependencies) (*chi.Mux, func()) {
	r := chi.NewRouter()
	cfg := deps.Config.Public

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	// event streams stay uncompressed so every frame flushes immediately
	r.Use(chimw.Compress(5, "application/json", "text/plain"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeadersWithCSP(cfg.SecureCookies, mw.APIContentSecurityPolicy))

	h := deps.Handler
	ipLimiter := rl.New(cfg.RequestsPerSecond, cfg.RequestsPerSecond*2, time.Hour)
	userLimiter := rl.New(cfg.RequestsPerSecond, cfg.RequestsPerSecond*2, time.Hour)
	byIP := mw.RateLimit(ipLimiter, mw.GetIP)

	r.With(byIP).Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// tokens are checked per ip before auth, requests per user after
		r.Use(byIP)
		r.Use(deps.AuthMiddleware.NeedAuth())
		r.Use(mw.RateLimit(userLimiter, mw.GetUserIDFromContext))

		r.Get("/me", h.Me)
		r.Patch("/me", h.UpdateProfile)

		r.Get("/boards", h.GetBoards)
		r.Post("/boards", h.CreateBoard)
		r.Route("/boards/{board}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Patch("/", h.UpdateBoard)
			r.Delete("/", h.DeleteBoard)

			r.Get("/lists", h.GetLists)
			r.Post("/lists", h.CreateList)

			r.Get("/members", h.GetMembers)
			r.Post("/members", h.AddMember)
			r.Patch("/members/{user}", h.UpdateMemberRole)
			r.Delete("/members/{user}", h.RemoveMember)

			r.Get("/labels", h.GetLabels)
			r.Post("/labels", h.CreateLabel)

			r.With(mw.RequireBoardRole(deps.Gate, permission.View)).Get("/events", h.BoardEvents)
		})

		r.Patch("/labels/{label}", h.UpdateLabel)
		r.Delete("/labels/{label}", h.DeleteLabel)

		r.Patch("/lists/{list}", h.UpdateList)
		r.Delete("/lists/{list}", h.DeleteList)
		r.Post("/lists/{list}/cards", h.CreateCard)

		r.Route("/cards/{card}", func(r chi.Router) {
			r.Get("/", h.GetCard)
			r.Patch("/", h.UpdateCard)
			r.Delete("/", h.DeleteCard)
			r.Post("/move", h.MoveCard)
			r.Put("/labels/{label}", h.AddCardLabel)
			r.Delete("/labels/{label}", h.RemoveCardLabel)
			r.Get("/tasks", h.GetTasks)
			r.Post("/tasks", h.CreateTask)
			r.Get("/comments", h.GetComments)
			r.Post("/comments", h.AddComment)
		})

		r.Route("/tasks/{task}", func(r chi.Router) {
			r.Patch("/", h.UpdateTask)
			r.Delete("/", h.DeleteTask)
			r.Put("/labels/{label}", h.AddTaskLabel)
			r.Delete("/labels/{label}", h.RemoveTaskLabel)
			r.Get("/comments", h.GetComments)
			r.Post("/comments", h.AddComment)
		})

		r.Delete("/comments/{comment}", h.DeleteComment)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r, func() {
		ipLimiter.Stop()
		userLimiter.Stop()
	}
}
