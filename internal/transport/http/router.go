package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"warbler/internal/handler"
	"warbler/internal/httputil"
	authmw "warbler/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	FollowHandler   *handler.FollowHandler
	MessageHandler  *handler.MessageHandler
	ReactionHandler *handler.ReactionHandler
	ThreadHandler   *handler.ThreadHandler
	SecretKey       string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Post("/signup", cfg.AuthHandler.Signup)
	r.Post("/login", cfg.AuthHandler.Login)
	r.Get("/logout", cfg.AuthHandler.Logout)

	// Public pages with optional authentication: anonymous visitors see
	// them, logged-in viewers get follow/reaction enrichment.
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuth(cfg.SecretKey))

		r.Get("/", cfg.MessageHandler.Home)
		r.Get("/users", cfg.UserHandler.List)
		r.Get("/users/{id}", cfg.UserHandler.Show)
		r.Get("/messages/{id}", cfg.MessageHandler.Show)
	})

	// Protected routes - the auth guard runs before every handler here, so
	// none of them re-checks the session beyond reading the context.
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(cfg.SecretKey))

		r.Get("/users/{id}/following", cfg.FollowHandler.Following)
		r.Get("/users/{id}/followers", cfg.FollowHandler.Followers)
		r.Get("/users/{id}/reactions", cfg.UserHandler.Reactions)
		r.Post("/users/follow/{id}", cfg.FollowHandler.Follow)
		r.Post("/users/stop-following/{id}", cfg.FollowHandler.Unfollow)
		r.Post("/users/profile", cfg.UserHandler.UpdateProfile)
		r.Post("/users/delete", cfg.UserHandler.Delete)

		r.Post("/messages/new", cfg.MessageHandler.Create)
		r.Post("/messages/{id}/delete", cfg.MessageHandler.Delete)

		r.Post("/addreaction", cfg.ReactionHandler.Add)
		r.Delete("/deletereaction", cfg.ReactionHandler.Remove)

		r.Get("/threads", cfg.ThreadHandler.List)
		r.Post("/threads/add/{user_id}", cfg.ThreadHandler.Add)
		r.Get("/threads/{id}", cfg.ThreadHandler.Show)
		r.Post("/threads/{id}/dm/add", cfg.ThreadHandler.AddDM)
	})

	return r
}
