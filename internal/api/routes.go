package api

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Routes
// ============================================================

// Register вешает все маршруты сервера на app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)

	v1 := app.Group("/api/v1")

	v1.Get("/projects", h.ListProjects)
	v1.Post("/projects", h.CreateProject)
	v1.Get("/projects/:id", h.GetProject)
	v1.Put("/projects/:id", h.UpdateProject)
	v1.Delete("/projects/:id", h.DeleteProject)
	v1.Get("/projects/:id/svg", h.ProjectSVG)
	v1.Get("/projects/:id/png", h.ProjectPNG)

	v1.Post("/functions/sample", h.SampleFunction)
	v1.Post("/render/svg", h.RenderSVG)
	v1.Post("/render/png", h.RenderPNG)

	v1.Post("/sessions", h.CreateSession)
	v1.Get("/sessions/:id", h.GetSession)
	v1.Delete("/sessions/:id", h.DeleteSession)
	v1.Post("/sessions/:id/tool", h.SelectTool)
	v1.Post("/sessions/:id/events", h.Events)
	v1.Post("/sessions/:id/functions", h.AddFunction)
	v1.Patch("/sessions/:id/functions/:index", h.SetFunctionVisible)
	v1.Delete("/sessions/:id/functions/:index", h.DeleteFunction)
	v1.Post("/sessions/:id/grid", h.SetGrid)
	v1.Get("/sessions/:id/document", h.SessionDocument)
	v1.Post("/sessions/:id/save", h.SaveSession)
	v1.Post("/sessions/:id/load/:projectID", h.LoadSession)
	v1.Get("/sessions/:id/svg", h.SessionSVG)
	v1.Get("/sessions/:id/png", h.SessionPNG)
}
