package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"geoboard/internal/project"
	"geoboard/internal/render"
)

// ============================================================
// Project Handlers
// ============================================================

type createProjectRequest struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document"`
}

// ListProjects возвращает проекты без документов.
func (h *Handler) ListProjects(c fiber.Ctx) error {
	items, err := h.repo.List(c.Context())
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(fiber.Map{"projects": items})
}

// CreateProject сохраняет новый проект. Документ проходит тот же разбор,
// что и файл проекта.
func (h *Handler) CreateProject(c fiber.Ctx) error {
	log.Printf("[PROJECTS] Create request")

	if len(c.Body()) == 0 {
		return fail(c, http.StatusBadRequest, "empty body")
	}

	var req createProjectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}

	doc := project.Document{Version: project.Version, Camera: project.CameraState{Zoom: 1}}
	if len(req.Document) > 0 {
		parsed, err := project.Unmarshal(req.Document)
		if err != nil {
			return projectError(c, err)
		}
		doc = parsed
	}

	rec, err := h.repo.Create(c.Context(), req.Name, doc)
	if err != nil {
		return projectError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(rec)
}

func (h *Handler) GetProject(c fiber.Ctx) error {
	rec, err := h.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(rec)
}

// UpdateProject заменяет документ проекта телом запроса.
func (h *Handler) UpdateProject(c fiber.Ctx) error {
	doc, err := project.Unmarshal(c.Body())
	if err != nil {
		return projectError(c, err)
	}

	rec, err := h.repo.Update(c.Context(), c.Params("id"), doc)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(rec)
}

func (h *Handler) DeleteProject(c fiber.Ctx) error {
	if err := h.repo.Delete(c.Context(), c.Params("id")); err != nil {
		return projectError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ProjectSVG отрисовывает сохранённый проект в SVG.
func (h *Handler) ProjectSVG(c fiber.Ctx) error {
	frame, err := h.projectFrame(c)
	if err != nil {
		return projectError(c, err)
	}
	return h.sendSVG(c, frame)
}

// ProjectPNG отрисовывает сохранённый проект в PNG.
func (h *Handler) ProjectPNG(c fiber.Ctx) error {
	frame, err := h.projectFrame(c)
	if err != nil {
		return projectError(c, err)
	}
	return h.sendPNG(c, frame)
}

func (h *Handler) projectFrame(c fiber.Ctx) (render.Frame, error) {
	rec, err := h.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return render.Frame{}, err
	}

	frame, report := render.DocumentFrame(rec.Document, h.cfg, queryBool(c, "grid", true))
	if !report.Empty() {
		log.Printf("[RENDER] project %s: %d functions and %d objects skipped",
			rec.ID, len(report.Functions), len(report.Objects))
	}
	return frame, nil
}
