package dirsync

import (
	"encoding/json"
	"sync"

	"dirsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests triggering syncs.
type Handler struct {
	service *Service
	logger  *zap.Logger
	// running guards against overlapping runs.
	running sync.Mutex
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, logger: service.logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleSync)
	group.Get("/plan", h.HandlePlan)
}

// HandleSync runs a sync and responds with its envelope. The HTTP status is
// the envelope status; 409 when a run is already in progress.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	ev, err := parseEvent(c)
	if err != nil {
		l.Warn("Invalid sync event", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event: " + err.Error()})
	}

	if !h.running.TryLock() {
		l.Warn("Sync already running")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "sync already running"})
	}
	defer h.running.Unlock()

	l.Info("Triggering sync", zap.Bool("dry_run", ev.DryRun), zap.Bool("keep_removed", ev.KeepRemoved))
	resp := h.service.Run(c.UserContext(), ev)
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandlePlan computes the plan of a run without writing anything.
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	ev := Event{KeepRemoved: c.QueryBool("keepRemoved", false)}
	report, err := h.service.Plan(c.UserContext(), ev)
	if err != nil {
		l.Error("Plan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(FailureBody{Message: "Plan failed", Error: err.Error()})
	}
	return c.JSON(report)
}

func parseEvent(c *fiber.Ctx) (Event, error) {
	var ev Event
	if len(c.Body()) == 0 {
		return ev, nil
	}
	err := json.Unmarshal(c.Body(), &ev)
	return ev, err
}
