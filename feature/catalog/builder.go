package catalog

import (
	"context"
	"sort"

	"content-catalog/core/esp"
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// RebuildAll clears every collection, index and capability flag, then
// rebuilds items, NPCs, static objects and cells in that order.
func (c *Catalog) RebuildAll(ctx context.Context) {
	c.reset()
	for _, category := range models.RecordCategories {
		c.rebuild(ctx, category)
	}
	c.recomputeGlobal()
	c.sorted = c.sortedNames()
	c.logger.Info("Catalog rebuilt",
		zap.Int("origins", len(c.origins[models.CategoryAll])),
		zap.Int("items", len(c.records[models.CategoryItem])),
		zap.Int("npcs", len(c.records[models.CategoryNPC])),
		zap.Int("statics", len(c.records[models.CategoryStatic])),
		zap.Int("cells", len(c.cells)),
	)
}

// RebuildCategory clears and rebuilds one record category. CategoryAll
// rebuilds everything; unknown categories are logged and ignored.
func (c *Catalog) RebuildCategory(ctx context.Context, category models.Category) {
	switch category {
	case models.CategoryAll:
		c.RebuildAll(ctx)
		return
	case models.CategoryItem, models.CategoryNPC, models.CategoryStatic, models.CategoryCell:
		c.classifier.Clear(capabilitiesOf(category))
		c.rebuild(ctx, category)
		c.recomputeGlobal()
	default:
		c.logger.Error("Unknown category, nothing rebuilt", zap.Int("category", int(category)))
	}
}

func (c *Catalog) rebuild(ctx context.Context, category models.Category) {
	c.origins[category] = originSet{}
	if category == models.CategoryCell {
		c.rebuildCells(ctx)
		return
	}

	c.records[category] = nil
	skipped := 0
	for _, tag := range categoryTags[category] {
		for _, form := range c.forms(tag) {
			if c.add(category, form) == nil {
				skipped++
			}
		}
	}

	c.logger.Info("Catalog category rebuilt",
		zap.Stringer("category", category),
		zap.Int("records", len(c.records[category])),
		zap.Int("origins", len(c.origins[category])),
		zap.Int("skipped", skipped),
	)

	if category == models.CategoryNPC {
		c.ScheduleReconciliation()
	}
}

func (c *Catalog) forms(tag esp.Tag) []models.Form {
	if c.deps.Content == nil {
		return nil
	}
	return c.deps.Content.FormsByType(tag)
}

// add classifies form and appends it to category. It returns nil when the
// form was skipped.
func (c *Catalog) add(category models.Category, form models.Form) *models.Record {
	if form == nil {
		return nil
	}
	origin := form.Origin()
	got, capability, ok := c.classifier.Resolve(form, origin)
	if !ok || got != category {
		c.logger.Debug("Record skipped",
			zap.String("type", form.Type().String()),
			zap.Uint32("form_id", form.FormID()),
			zap.Stringer("origin", origin),
		)
		return nil
	}

	c.classifier.Attribute(origin, capability)
	rec := models.NewRecord(form, category, capability)
	c.records[category] = append(c.records[category], rec)
	c.origins[category].add(origin)
	c.origins[models.CategoryAll].add(origin)
	return rec
}

// recomputeGlobal derives the global set from the category sets, so that a
// single-category rebuild drops origins that no longer contribute anything.
func (c *Catalog) recomputeGlobal() {
	all := originSet{}
	for _, category := range models.RecordCategories {
		for _, f := range c.origins[category] {
			all.add(f)
		}
	}
	for _, f := range c.cellForms {
		all.add(f)
	}
	c.origins[models.CategoryAll] = all
}

func (c *Catalog) sortedNames() []string {
	names := make([]string, 0, len(c.origins[models.CategoryAll]))
	for name := range c.origins[models.CategoryAll] {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return lessFolded(names[i], names[j])
	})
	return names
}
