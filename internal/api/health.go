package api

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe проверяет доступность репозитория проектов.
func (h *Handler) ReadinessProbe(c fiber.Ctx) error {
	if err := h.repo.Ping(c.Context()); err != nil {
		log.Printf("[PROJECTS] readiness: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ready",
		"sessions": h.sessions.Len(),
	})
}
