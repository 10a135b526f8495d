// Package router sets up all HTTP routes and middleware chains for the
// Prompthis server. The JSON API lives under /api; the single-page front
// end is served from the embedded static assets.
package router

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"prompthis/internal/handlers"
	"prompthis/internal/middleware"
	"prompthis/internal/session"
	"prompthis/web"
)

// Rate limit for the generation endpoint: a coarse per-IP brake in front
// of the per-account daily quota.
const (
	generateLimit  = 30
	generateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// The API speaks JSON even when routing fails.
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}`))
	})

	// Health check — no auth.
	r.Get("/health", api.Health)

	rl := middleware.NewRateLimiter(generateLimit, generateWindow)

	r.Route("/api", func(r chi.Router) {
		r.With(rl.Middleware).Post("/generate-prompt", api.GeneratePrompt)
		r.Get("/templates", api.Templates)
		r.Get("/plans", api.Plans)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", api.SignUp)
			r.Post("/signin", api.SignIn)
			r.Post("/signout", api.SignOut)
			r.Get("/session", api.Session)

			// Verify completes a half-authenticated session, so it is open
			// to any session; setup (enrollment) needs full authentication.
			r.Post("/2fa/verify", api.TwoFAVerify)
			r.With(middleware.RequireAuth).Post("/2fa/setup", api.TwoFASetup)
		})

		r.Route("/billing", func(r chi.Router) {
			// The webhook authenticates itself via its signature.
			r.Post("/webhook", api.Webhook)
			r.With(middleware.RequireAuth).Post("/checkout", api.CreateCheckout)
		})
	})

	// Front end: embedded static assets, index at the root.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFileFS(w, req, staticFS, "index.html")
	})

	return r
}

// notFoundHandler answers JSON under /api and serves the SPA shell for
// anything else, so client-side routes deep-link correctly.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
		return
	}
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	http.ServeFileFS(w, r, staticFS, "index.html")
}
