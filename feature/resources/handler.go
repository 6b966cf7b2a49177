package resources

import (
	"errors"

	"resource-manager/core/catalog"
	"resource-manager/core/logger"
	"resource-manager/core/resource"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the resource cache.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the resource routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/resources")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleLoad)
	group.Get("/status", h.HandleStatus)
	group.Post("/pause", h.HandlePause)
	group.Post("/resume", h.HandleResume)
	group.Post("/flush", h.HandleFlush)
	group.Post("/cleanup", h.HandleCleanup)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleUnpin)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, resource.ErrUnknownKind), errors.Is(err, resource.ErrNotCompressed):
		return fiber.StatusBadRequest
	case errors.Is(err, resource.ErrLoadFailed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleList lists cached resources.
// @Summary List Resources
// @Description List every cached resource with its reference count and dirty flag.
// @Tags resources
// @Produce json
// @Success 200 {array} resource.EntryInfo "Cached resources"
// @Router /resources [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.Entries())
}

// HandleGet describes one cached resource.
// @Summary Get Resource
// @Description Describe the cached resource with the given identity.
// @Tags resources
// @Produce json
// @Param id path string true "Resource identity (e.g. 'genres_7')"
// @Success 200 {object} resource.EntryInfo "Cached resource"
// @Failure 404 {object} map[string]string "Not cached"
// @Router /resources/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	entry, err := h.service.Entry(c.Params("id"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entry)
}

// HandleStatus summarizes the manager.
// @Summary Resource Manager Status
// @Description Cache size, pause state, cleanup policy, registered kinds and driver statistics.
// @Tags resources
// @Produce json
// @Success 200 {object} Status "Status"
// @Router /resources/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleLoad loads and pins a resource.
// @Summary Load Resource
// @Description Load a resource by raw id or expansion pack location and keep a reference to it.
// @Tags resources
// @Accept json
// @Produce json
// @Param request body LoadRequest true "Load request"
// @Success 201 {object} resource.EntryInfo "Loaded resource"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Load failed"
// @Router /resources [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.Load(c.Context(), req)
	if err != nil {
		l.Error("Resource load failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleUnpin drops the admin reference to a resource.
// @Summary Unpin Resource
// @Description Drop one reference held by the admin API. The resource is evicted by the next cleanup once unreferenced.
// @Tags resources
// @Param id path string true "Resource identity"
// @Success 204
// @Failure 404 {object} map[string]string "Not pinned"
// @Router /resources/{id} [delete]
func (h *Handler) HandleUnpin(c *fiber.Ctx) error {
	if err := h.service.Unpin(c.Params("id")); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePause releases driver data.
// @Summary Pause Resources
// @Description Release driver-side data of every cached resource, as on a context loss.
// @Tags resources
// @Produce json
// @Success 200 {object} Status "Status"
// @Router /resources/pause [post]
func (h *Handler) HandlePause(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Pausing resources")
	h.service.Pause()
	return c.JSON(h.service.Status())
}

// HandleResume re-acquires driver data.
// @Summary Resume Resources
// @Description Re-acquire driver-side data of every cached resource.
// @Tags resources
// @Produce json
// @Success 200 {object} Status "Status"
// @Router /resources/resume [post]
func (h *Handler) HandleResume(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Resuming resources")
	h.service.Resume()
	return c.JSON(h.service.Status())
}

// HandleFlush commits dirty resources to the driver.
// @Summary Flush Resources
// @Description Load every dirty resource into the driver.
// @Tags resources
// @Produce json
// @Success 200 {object} map[string]int "Loaded count"
// @Router /resources/flush [post]
func (h *Handler) HandleFlush(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"loaded": h.service.Flush()})
}

// HandleCleanup evicts unreferenced resources.
// @Summary Clean Up Resources
// @Description Release and evict every resource without references.
// @Tags resources
// @Produce json
// @Success 200 {object} CleanupResult "Cleanup result"
// @Router /resources/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	return c.JSON(h.service.CleanUp())
}
