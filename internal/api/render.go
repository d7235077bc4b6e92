package api

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"geoboard/internal/project"
	"geoboard/internal/render"
)

// ============================================================
// Render Handlers
// ============================================================

// RenderSVG рисует документ проекта из тела запроса в SVG.
func (h *Handler) RenderSVG(c fiber.Ctx) error {
	frame, ok, err := h.bodyFrame(c)
	if !ok {
		return err
	}
	return h.sendSVG(c, frame)
}

// RenderPNG рисует документ проекта из тела запроса в PNG.
func (h *Handler) RenderPNG(c fiber.Ctx) error {
	frame, ok, err := h.bodyFrame(c)
	if !ok {
		return err
	}
	return h.sendPNG(c, frame)
}

// bodyFrame разбирает документ из тела. При ok=false ответ уже записан.
func (h *Handler) bodyFrame(c fiber.Ctx) (render.Frame, bool, error) {
	log.Printf("[RENDER] Received request (%d bytes)", len(c.Body()))

	if len(c.Body()) == 0 {
		return render.Frame{}, false, fail(c, http.StatusBadRequest, "body required")
	}

	doc, err := project.Unmarshal(c.Body())
	if err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return render.Frame{}, false, fail(c, http.StatusBadRequest, "invalid document")
	}

	frame, report := render.DocumentFrame(doc, h.cfg, queryBool(c, "grid", true))
	if !report.Empty() {
		log.Printf("[RENDER] %d functions and %d objects skipped", len(report.Functions), len(report.Objects))
	}
	return frame, true, nil
}
