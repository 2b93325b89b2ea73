package catalog

import (
	"net/url"

	"content-catalog/core/logger"
	"content-catalog/core/utils"
	"content-catalog/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the catalog's read surface over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/origins", h.HandleOrigins)
	group.Get("/origins/:name", h.HandleOrigin)
	group.Get("/names", h.HandleNames)
	group.Get("/counts", h.HandleCounts)
	group.Get("/records/:category", h.HandleRecords)
	group.Get("/cells", h.HandleCells)
	group.Get("/cells/:editorID", h.HandleCell)
	group.Post("/rebuild", h.HandleRebuild)
}

func badRequest(c *fiber.Ctx, msg, value string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
		"value": value,
	})
}

// HandleOrigins lists the origins of a category.
// @Summary List Origin Files
// @Description Lists the origin files of a category with their load-order indices and capabilities.
// @Tags catalog
// @Produce json
// @Param category query string false "all, item, npc, static or cell" default(all)
// @Param order query string false "none, alphabetical, compileindex_asc or compileindex_desc" default(none)
// @Success 200 {object} map[string]interface{} "Category, order and origins"
// @Failure 400 {object} map[string]string "Unknown category or order"
// @Router /catalog/origins [get]
func (h *Handler) HandleOrigins(c *fiber.Ctx) error {
	category, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		return badRequest(c, "unknown category", c.Query("category"))
	}
	order, ok := models.ParseSortOrder(c.Query("order"))
	if !ok {
		return badRequest(c, "unknown order", c.Query("order"))
	}

	origins := h.service.Origins(category, order)
	return c.JSON(fiber.Map{
		"category": category.String(),
		"order":    order.String(),
		"origins":  origins,
	})
}

// HandleOrigin returns one origin with its capabilities.
// @Summary Get Origin File
// @Description Returns one origin file by name, ignoring case.
// @Tags catalog
// @Produce json
// @Param name path string true "Plugin file name"
// @Success 200 {object} catalog.OriginInfo
// @Failure 404 {object} map[string]string "Origin not found"
// @Router /catalog/origins/{name} [get]
func (h *Handler) HandleOrigin(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badRequest(c, "invalid origin name", c.Params("name"))
	}
	info, ok := h.service.Origin(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "origin not found", "name": name})
	}
	return c.JSON(info)
}

// HandleNames returns the filtered origin names.
// @Summary List Origin Names
// @Description Sorted origin names of a category without blacklisted files, optionally restricted to a capability and a name substring.
// @Tags catalog
// @Produce json
// @Param category query string false "all, item, npc, static or cell" default(all)
// @Param order query string false "Sort order" default(alphabetical)
// @Param capability query string false "Capability filter, e.g. weapon"
// @Param contains query string false "Case-insensitive name substring"
// @Success 200 {object} map[string]interface{} "Count and names"
// @Failure 400 {object} map[string]string "Unknown category, order or capability"
// @Router /catalog/names [get]
func (h *Handler) HandleNames(c *fiber.Ctx) error {
	category, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		return badRequest(c, "unknown category", c.Query("category"))
	}
	order, ok := models.ParseSortOrder(c.Query("order", models.SortAlphabetical.String()))
	if !ok {
		return badRequest(c, "unknown order", c.Query("order"))
	}
	capability, ok := models.ParseCapability(c.Query("capability"))
	if !ok {
		return badRequest(c, "unknown capability", c.Query("capability"))
	}

	names := h.service.FilteredNames(category, order, capability, c.Query("contains"))
	if names == nil {
		names = []string{}
	}
	return c.JSON(fiber.Map{
		"count": len(names),
		"names": names,
	})
}

// HandleCounts returns the record count per category.
// @Summary Record Counts
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]int "Records per category"
// @Router /catalog/counts [get]
func (h *Handler) HandleCounts(c *fiber.Ctx) error {
	return c.JSON(countsMap(h.service.Counts()))
}

// HandleRecords lists the records of a category. Cells are served by
// /catalog/cells.
// @Summary List Records
// @Description Lists the records of item, npc or static. Cell requests are redirected to /catalog/cells.
// @Tags catalog
// @Produce json
// @Param category path string true "item, npc or static"
// @Param properties query bool false "Resolve record properties"
// @Success 200 {object} map[string]interface{} "Category, count and records"
// @Success 303 "Redirect to /catalog/cells"
// @Failure 400 {object} map[string]string "Unknown record category"
// @Router /catalog/records/{category} [get]
func (h *Handler) HandleRecords(c *fiber.Ctx) error {
	category, ok := models.ParseCategory(c.Params("category"))
	if !ok || category == models.CategoryAll {
		return badRequest(c, "unknown record category", c.Params("category"))
	}
	if category == models.CategoryCell {
		return c.Redirect("/catalog/cells", fiber.StatusSeeOther)
	}

	records := h.service.Records(category, utils.ToBool(c.Query("properties")))
	return c.JSON(fiber.Map{
		"category": category.String(),
		"count":    len(records),
		"records":  records,
	})
}

// HandleCells lists every cell.
// @Summary List Cells
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Count and cells"
// @Router /catalog/cells [get]
func (h *Handler) HandleCells(c *fiber.Ctx) error {
	cells := h.service.Cells()
	return c.JSON(fiber.Map{
		"count": len(cells),
		"cells": cells,
	})
}

// HandleCell looks a cell up by editor ID.
// @Summary Get Cell
// @Tags catalog
// @Produce json
// @Param editorID path string true "Cell editor ID"
// @Success 200 {object} catalog.CellInfo
// @Failure 404 {object} map[string]string "Cell not found"
// @Router /catalog/cells/{editorID} [get]
func (h *Handler) HandleCell(c *fiber.Ctx) error {
	editorID := c.Params("editorID")
	cell, ok := h.service.Cell(editorID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":     "cell not found",
			"editor_id": editorID,
		})
	}
	return c.JSON(cell)
}

// HandleRebuild rebuilds the catalog, or one category of it.
// @Summary Rebuild Catalog
// @Description Rebuilds every category, or only the given one. Concurrent requests share one rebuild.
// @Tags catalog
// @Produce json
// @Param category query string false "all, item, npc, static or cell" default(all)
// @Success 200 {object} map[string]interface{} "Status and counts"
// @Failure 400 {object} map[string]string "Unknown category"
// @Router /catalog/rebuild [post]
func (h *Handler) HandleRebuild(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	category, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		return badRequest(c, "unknown category", c.Query("category"))
	}

	l.Info("Catalog rebuild requested", zap.Stringer("category", category))
	counts := h.service.RebuildCategory(c.Context(), category)
	return c.JSON(fiber.Map{
		"status":   "rebuilt",
		"category": category.String(),
		"counts":   countsMap(counts),
	})
}

func countsMap(counts map[models.Category]int) map[string]int {
	out := make(map[string]int, len(counts))
	for category, n := range counts {
		out[category.String()] = n
	}
	return out
}
