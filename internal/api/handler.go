package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"geoboard/internal/engine"
	"geoboard/internal/function"
	"geoboard/internal/project"
	"geoboard/internal/render"
)

// ============================================================
// Handler
// ============================================================

const maxImageSide = 4096

type Handler struct {
	repo     *project.Repository
	sessions *SessionManager
	painter  *render.Painter
	cfg      engine.Config
}

func NewHandler(repo *project.Repository, sessions *SessionManager, cfg engine.Config) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
		painter:  render.NewPainter(),
		cfg:      cfg,
	}
}

// ============================================================
// Helpers
// ============================================================

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// projectError переводит ошибки хранилища в HTTP-коды.
func projectError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, project.ErrNotFound):
		return fail(c, http.StatusNotFound, "project not found")
	case errors.Is(err, project.ErrExists):
		return fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, project.ErrMalformed):
		return fail(c, http.StatusBadRequest, err.Error())
	}
	log.Printf("[PROJECTS] storage error: %v", err)
	return fail(c, http.StatusInternalServerError, "storage error")
}

// expressionError отдаёт 400 с текстом ошибки разбора, на остальное 500.
func expressionError(c fiber.Ctx, err error) error {
	var exprErr *function.ExpressionError
	if errors.As(err, &exprErr) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": exprErr.Error(),
			"text":  exprErr.Source,
		})
	}
	return fail(c, http.StatusInternalServerError, err.Error())
}

// imageSize читает width/height из query. Значения по умолчанию берутся
// из конфигурации движка.
func (h *Handler) imageSize(c fiber.Ctx) (int, int, error) {
	width, err := queryInt(c, "width", int(h.cfg.Width))
	if err != nil {
		return 0, 0, err
	}
	height, err := queryInt(c, "height", int(h.cfg.Height))
	if err != nil {
		return 0, 0, err
	}
	if width <= 0 || height <= 0 || width > maxImageSide || height > maxImageSide {
		return 0, 0, fiber.NewError(http.StatusBadRequest, "width and height must be in 1.."+strconv.Itoa(maxImageSide))
	}
	return width, height, nil
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid "+key)
	}
	return v, nil
}

func queryBool(c fiber.Ctx, key string, def bool) bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func (h *Handler) sendSVG(c fiber.Ctx, frame render.Frame) error {
	width, height, err := h.imageSize(c)
	if err != nil {
		return err
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(h.painter.SVGString(frame, float64(width), float64(height)))
}

func (h *Handler) sendPNG(c fiber.Ctx, frame render.Frame) error {
	width, height, err := h.imageSize(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.painter.WritePNG(&buf, frame, width, height); err != nil {
		log.Printf("[RENDER] png error: %v", err)
		return fail(c, http.StatusInternalServerError, "render failed")
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}
