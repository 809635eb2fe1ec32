package integrity

import (
	"livery-audit/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/roots", h.HandleRootsCheck)
	group.Get("/history", h.HandleHistoryCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})
	status := "ok"

	roots, healthy := h.service.CheckRoots(c.Context())
	report["roots"] = roots
	if !healthy {
		status = "error"
	}

	if h.service.HasHistory() {
		if schema, err := h.service.CheckHistory(); err != nil {
			report["history"] = map[string]interface{}{"status": "error", "error": err.Error()}
			status = "error"
		} else {
			report["history"] = schema
			if !schema.Matched {
				status = "error"
			}
		}
	}

	report["status"] = status
	return c.JSON(report)
}

// HandleRootsCheck checks the installation roots.
func (h *Handler) HandleRootsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	roots, healthy := h.service.CheckRoots(c.Context())
	if !healthy {
		l.Warn("Unhealthy installation roots detected", zap.Any("roots", roots))
	}

	return c.JSON(fiber.Map{
		"status": statusOf(healthy),
		"roots":  roots,
	})
}

// HandleHistoryCheck checks the history table schema.
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.HasHistory() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "audit history is not configured"})
	}

	report, err := h.service.CheckHistory()
	if err != nil {
		l.Error("History schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

func statusOf(healthy bool) string {
	if healthy {
		return "ok"
	}
	return "error"
}
