package blacklist

import (
	"net/url"

	"content-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the blacklist over HTTP.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the blacklist routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/blacklist")
	group.Get("/", h.HandleList)
	group.Put("/:name", h.HandleAdd)
	group.Delete("/:name", h.HandleRemove)
}

// HandleList returns every blacklisted origin name.
// @Summary List Blacklist
// @Tags blacklist
// @Produce json
// @Success 200 {object} map[string]interface{} "Persistence flag, count and names"
// @Router /blacklist [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	names := h.store.List()
	return c.JSON(fiber.Map{
		"persistent": h.store.Persistent(),
		"count":      len(names),
		"names":      names,
	})
}

// HandleAdd blacklists an origin file.
// @Summary Blacklist Origin File
// @Description Hides an origin file from catalog name listings. Adding a listed file is a no-op.
// @Tags blacklist
// @Produce json
// @Param name path string true "Plugin file name"
// @Success 200 {object} map[string]string "Status and name"
// @Failure 400 {object} map[string]string "Invalid plugin name"
// @Router /blacklist/{name} [put]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}

	if err := h.store.Add(c.Context(), name); err != nil {
		l.Warn("Blacklist add failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Origin blacklisted", zap.String("name", name))
	return c.JSON(fiber.Map{"status": "added", "name": name})
}

// HandleRemove takes an origin file off the blacklist.
// @Summary Remove From Blacklist
// @Tags blacklist
// @Produce json
// @Param name path string true "Plugin file name"
// @Success 200 {object} map[string]string "Status and name"
// @Failure 404 {object} map[string]string "Not blacklisted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /blacklist/{name} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}

	removed, err := h.store.Remove(c.Context(), name)
	if err != nil {
		l.Error("Blacklist remove failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not blacklisted", "name": name})
	}
	l.Info("Origin removed from blacklist", zap.String("name", name))
	return c.JSON(fiber.Map{"status": "removed", "name": name})
}
