package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Strob0t/QAForge/internal/domain/project"
)

// apiTimeout bounds every request except command execution, which
// manages its own deadline and must deliver the result even for runs
// longer than this.
const apiTimeout = 30 * time.Second

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Command execution is deliberately outside the shared timeout:
		// the runner derives its deadline from the request context, so a
		// middleware-cancelled context would cap long runs and drop
		// results that were already recorded to history.
		r.Post("/commands/execute", h.ExecuteCommand)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(apiTimeout))

			// Version
			r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
			})

			// Projects
			r.Get("/projects", handleList("", func(ctx context.Context, _ string) ([]project.Project, error) {
				return h.Projects.List(ctx)
			}))
			r.Post("/projects", handleCreate(bodyLimit, h.Projects.Create))
			r.Get("/projects/{id}", handleGet(h.Projects.Get, "project not found"))
			r.Put("/projects/{id}", handleUpdate(bodyLimit, h.Projects.Update, "project not found"))
			r.Delete("/projects/{id}", handleDelete(h.Projects.Delete, "project not found"))

			// Scopes
			r.Get("/scopes", handleList("project_id", h.Scopes.List))
			r.Post("/scopes", handleCreate(bodyLimit, h.Scopes.Create))
			r.Get("/scopes/{id}", handleGet(h.Scopes.Get, "scope not found"))
			r.Put("/scopes/{id}", handleUpdate(bodyLimit, h.Scopes.Update, "scope not found"))
			r.Delete("/scopes/{id}", handleDelete(h.Scopes.Delete, "scope not found"))

			// Tasks
			r.Get("/tasks", handleList("scope_id", h.Workflow.List))
			r.Post("/tasks", handleCreate(bodyLimit, h.Workflow.Create))
			r.Get("/tasks/{id}", handleGet(h.Workflow.Get, "task not found"))
			r.Put("/tasks/{id}", handleUpdate(bodyLimit, h.Workflow.Update, "task not found"))
			r.Patch("/tasks/{id}", handleUpdate(bodyLimit, h.Workflow.Move, "task not found"))
			r.Post("/tasks/{id}/toggle", handleGet(h.Workflow.Toggle, "task not found"))
			r.Delete("/tasks/{id}", handleDelete(h.Workflow.Delete, "task not found"))

			// Commands
			r.Get("/commands", handleList("scope_id", h.Commands.List))
			r.Post("/commands", handleCreate(bodyLimit, h.Commands.Create))
			r.Get("/commands/{id}", handleGet(h.Commands.Get, "command not found"))
			r.Put("/commands/{id}", handleUpdate(bodyLimit, h.Commands.Update, "command not found"))
			r.Delete("/commands/{id}", handleDelete(h.Commands.Delete, "command not found"))

			// Execution history
			r.Get("/history", h.ListHistory)

			// Dashboard
			r.Get("/dashboard", h.GetDashboard)
		})
	})
}
