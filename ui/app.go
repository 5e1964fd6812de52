package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"edunest/app"
)

// App is the HTTP application serving the import console endpoints.
type App struct {
	router  *chi.Mux
	manager *app.Manager
}

// NewApp creates the HTTP application.
func NewApp(manager *app.Manager) *App {
	a := &App{
		router:  chi.NewRouter(),
		manager: manager,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware.
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes wires the import endpoints.
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Route("/api/imports/{kind}", func(r chi.Router) {
		r.Post("/", a.handleUpload)
		r.Post("/{batchID}/submit", a.handleSubmit)
		r.Delete("/{batchID}", a.handleDiscard)
	})
}

// Start runs the HTTP server on the given port.
func (a *App) Start(port string) error {
	addr := ":" + port
	log.Printf("[UI] Import console listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the router for tests.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[UI] Failed to encode response: %v", err)
	}
}
