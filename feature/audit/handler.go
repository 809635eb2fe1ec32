package audit

import (
	"archive/zip"
	"errors"

	"livery-audit/core/logger"
	"livery-audit/core/miz"
	"livery-audit/core/output"
	"livery-audit/core/script"
	"livery-audit/feature/mission"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Handler handles HTTP requests for livery audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the livery routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/liveries")
	group.Get("/installed", h.HandleInstalled)
	group.Delete("/installed/cache", h.HandleRefresh)
	group.Post("/extract", h.HandleExtract)
	group.Post("/audit", h.HandleAudit)
	group.Get("/history", h.HandleHistory)
}

// HandleInstalled lists the installed liveries.
func (h *Handler) HandleInstalled(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	installed, err := h.service.Installed(c.Context())
	if err != nil {
		l.Error("Installation scan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(installed)
}

// HandleRefresh drops the cached installation scan.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Installation cache invalidated")
	h.service.Refresh()
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleExtract returns the required liveries of the uploaded mission.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty mission"})
	}

	required, err := h.service.Extract(c.Context(), body, missionName(c))
	if err != nil {
		l.Warn("Mission extraction failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(required)
}

// HandleAudit audits the uploaded mission against the installation.
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty mission"})
	}

	name := missionName(c)
	report, err := h.service.Audit(c.Context(), body, name)
	if err != nil {
		l.Error("Audit failed", zap.String("mission", name), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(output.NewReportView(report))
}

// HandleHistory lists recent audits.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	history := h.service.History()
	if !history.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": ErrHistoryDisabled.Error()})
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := history.Recent(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"records": records})
}

// missionName names an upload after the name query parameter.
func missionName(c *fiber.Ctx) string {
	// query values are only valid during the request
	return utils.CopyString(c.Query("name", "upload"))
}

// statusFor maps mission input errors to 400 and everything else to 500.
func statusFor(err error) int {
	var parseErr *mission.ParseError
	switch {
	case errors.Is(err, script.ErrDecode),
		errors.Is(err, mission.ErrMissionStructure),
		errors.Is(err, miz.ErrNoMissionScript),
		errors.Is(err, zip.ErrFormat),
		errors.As(err, &parseErr):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
