package audit

import (
	"warehouse-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the audit trail.
type Handler struct {
	sink   *Sink
	db     *gorm.DB
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(sink *Sink, db *gorm.DB, l *zap.Logger) *Handler {
	return &Handler{sink: sink, db: db, logger: l}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Get("/", h.HandleRecent)
}

// HandleRecent returns the newest audit entries.
// @Summary Recent Audit Entries
// @Description Lists the most recent administrative audit entries.
// @Tags audit
// @Produce json
// @Param limit query int false "Maximum entries to return (default 50)"
// @Success 200 {array} audit.ActionLog "Audit Entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	entries, err := h.sink.Recent(c.Context(), h.db, c.QueryInt("limit", 50))
	if err != nil {
		l.Error("Audit listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}
