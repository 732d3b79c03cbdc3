package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/plumablog/backend/internal/api/handlers"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/config"
	"github.com/plumablog/backend/internal/metrics"
	"github.com/plumablog/backend/internal/middleware"
	"github.com/plumablog/backend/internal/services"
)

// NewRouter mounts the full HTTP surface. Route shapes mirror the frontend's
// fetch paths, so the odd casing (getPostComments) is deliberate.
func NewRouter(cfg config.Config, tm *auth.TokenManager, us *services.UserService, ps *services.PostService, cs *services.CommentService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authn := middleware.NewAuthMiddleware(tm)
	ah := handlers.NewAuthHandler(us, cfg.TokenTTL)
	uh := handlers.NewUserHandler(us)
	ph := handlers.NewPostHandler(ps)
	ch := handlers.NewCommentHandler(cs)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", ah.Signup)
			r.Post("/signin", ah.SignIn)
			r.Post("/google", ah.Google)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/test", uh.Test)
			r.With(authn.Auth).Put("/update/{userID}", uh.Update)
			r.With(authn.Auth).Delete("/delete/{userID}", uh.Delete)
			r.With(authn.Auth).Delete("/deleteuser/{userID}", uh.DeleteAsAdmin)
			r.Post("/logout", uh.SignOut)
			r.With(authn.Auth).Get("/getusers", uh.List)
			r.Get("/{userID}", uh.Get)
		})

		r.Route("/post", func(r chi.Router) {
			r.With(authn.Auth).Post("/create", ph.Create)
			r.Get("/getposts", ph.List)
			r.With(authn.Auth).Delete("/deletepost/{postID}/{userID}", ph.Delete)
			r.With(authn.Auth).Put("/updatepost/{postID}/{userID}", ph.Update)
		})

		r.Route("/comment", func(r chi.Router) {
			r.With(authn.Auth).Post("/create", ch.Create)
			r.Get("/getPostComments/{postID}", ch.ListForPost)
			r.With(authn.Auth).Put("/likeComment/{commentID}", ch.Like)
			r.With(authn.Auth).Delete("/deleteComment/{commentID}", ch.Delete)
			r.With(authn.Auth).Get("/getComments", ch.List)
		})
	})

	return r
}
