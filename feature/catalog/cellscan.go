package catalog

import (
	"context"

	"content-catalog/core/esp"
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// CellFormKey composes the numeric key of a cell record read from origin.
// Full and light files number their local IDs in different spaces, so the
// compile indices are folded in.
func CellFormKey(rawFormID uint32, origin *models.OriginFile) uint32 {
	return rawFormID&0x00FFFFFF +
		uint32(origin.CompileIndex)<<24 +
		uint32(origin.SmallFileCompileIndex)<<12
}

// ScanForCells walks the raw records of origin and adds one entry per CELL
// editor ID to out. Within one file a later definition of the same numeric
// key replaces the earlier one; entries of other files are never replaced.
// It returns the number of entries this scan left in out. Open, read and
// close failures are logged; out is left untouched when the file cannot be
// opened.
func (c *Catalog) ScanForCells(ctx context.Context, origin *models.OriginFile, out *models.CellScanMap) int {
	if !origin.Valid() {
		return 0
	}
	if c.deps.Containers == nil {
		c.logger.Warn("No container opener configured, cell scan skipped", zap.String("origin", origin.Name))
		return 0
	}

	container, err := c.deps.Containers.Open(ctx, origin.Name)
	if err != nil {
		c.logger.Warn("Failed to open origin file for cell scan", zap.String("origin", origin.Name), zap.Error(err))
		return 0
	}
	defer func() {
		if err := container.Close(); err != nil {
			c.logger.Error("Failed to close origin file", zap.String("origin", origin.Name), zap.Error(err))
		}
	}()

	buf := make([]byte, c.deps.EditorIDBuffer)
	seen := make(map[uint32]models.CellKey)
	for container.NextRecord() {
		if ctx.Err() != nil {
			c.logger.Warn("Cell scan cancelled", zap.String("origin", origin.Name), zap.Error(ctx.Err()))
			break
		}
		if container.RecordType() != esp.TagCELL {
			continue
		}

		key := CellFormKey(container.RecordFormID(), origin)
		for container.NextSubrecord() {
			if container.SubrecordType() != esp.TagEDID {
				continue
			}
			n, ok := container.ReadSubrecord(buf)
			if !ok {
				c.logger.Debug("Cell editor ID unreadable",
					zap.String("origin", origin.Name),
					zap.Uint32("form_key", key),
					zap.Int("size", container.SubrecordSize()),
				)
				continue
			}
			editorID := esp.CString(buf[:n])
			if editorID == "" {
				continue
			}
			if prev, ok := seen[key]; ok {
				out.Delete(prev)
			}
			cell := models.CellKey{FormKey: key, EditorID: editorID, Pass: models.PassFirst}
			seen[key] = cell
			out.Put(cell, origin.Name)
		}
	}
	if err := container.Err(); err != nil {
		c.logger.Warn("Cell scan stopped early", zap.String("origin", origin.Name), zap.Error(err))
	}

	c.logger.Debug("Cell scan finished", zap.String("origin", origin.Name), zap.Int("cells", len(seen)))
	return len(seen)
}

// rebuildCells scans each distinct origin owning a CELL form once, then
// turns the merged scan map into cell records.
func (c *Catalog) rebuildCells(ctx context.Context) {
	c.cells = nil
	c.cellForms = originSet{}

	scan := models.NewCellScanMap()
	scanned := originSet{}
	skipped := 0
	for _, form := range c.forms(esp.TagCELL) {
		if form == nil {
			skipped++
			continue
		}
		origin := form.Origin()
		category, capability, ok := c.classifier.Resolve(form, origin)
		if !ok || category != models.CategoryCell {
			skipped++
			continue
		}
		c.classifier.Attribute(origin, capability)
		c.cellForms.add(origin)
		c.origins[models.CategoryAll].add(origin)

		if _, done := scanned[origin.Name]; done {
			continue
		}
		scanned.add(origin)
		c.ScanForCells(ctx, origin, scan)
	}

	for _, entry := range scan.Entries() {
		origin, ok := scanned[entry.Origin]
		if !ok {
			skipped++
			continue
		}
		cell := &models.CellRecord{
			OriginName: origin.Name,
			Name:       c.cellName(entry.Key.EditorID),
			EditorID:   entry.Key.EditorID,
			Origin:     origin,
		}
		c.cells = append(c.cells, cell)
		c.origins[models.CategoryCell].add(origin)
	}

	c.logger.Info("Catalog category rebuilt",
		zap.Stringer("category", models.CategoryCell),
		zap.Int("records", len(c.cells)),
		zap.Int("origins", len(c.origins[models.CategoryCell])),
		zap.Int("scanned_files", len(scanned)),
		zap.Int("skipped", skipped),
	)
}

func (c *Catalog) cellName(editorID string) string {
	for _, lookup := range []CellNameLookup{c.deps.CellNames, c.deps.Descriptions} {
		if lookup == nil {
			continue
		}
		if name, ok := lookup.CellName(editorID); ok {
			return name
		}
	}
	return ""
}
