package catalog

import (
	"sort"
	"strings"

	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// OriginSet returns a copy of the origin set of category. Unknown
// categories are logged and answered with the global set.
func (c *Catalog) OriginSet(category models.Category) []*models.OriginFile {
	set := c.originSet(category)
	out := make([]*models.OriginFile, 0, len(set))
	for _, f := range set {
		out = append(out, f)
	}
	return out
}

func (c *Catalog) originSet(category models.Category) originSet {
	if !category.Valid() {
		c.logger.Error("Unknown category, using all origins", zap.Int("category", int(category)))
		category = models.CategoryAll
	}
	return c.origins[category]
}

// SortedOrigins returns the origin set of category sorted by order.
func (c *Catalog) SortedOrigins(category models.Category, order models.SortOrder) []*models.OriginFile {
	origins := c.OriginSet(category)
	if !order.Valid() {
		c.logger.Error("Unknown sort order, leaving origins unsorted", zap.Int("order", int(order)))
		order = models.SortNone
	}
	SortOrigins(origins, order)
	return origins
}

// SortOrigins sorts origins in place. Invalid files never compare less than
// anything. SortNone orders by name so that results are reproducible.
func SortOrigins(origins []*models.OriginFile, order models.SortOrder) {
	var less func(a, b *models.OriginFile) bool
	switch order {
	case models.SortAlphabetical:
		less = func(a, b *models.OriginFile) bool {
			return lessFolded(a.Name, b.Name)
		}
	case models.SortCompileIndexAsc:
		less = func(a, b *models.OriginFile) bool {
			return a.CombinedIndex() < b.CombinedIndex()
		}
	case models.SortCompileIndexDesc:
		less = func(a, b *models.OriginFile) bool {
			return a.CombinedIndex() > b.CombinedIndex()
		}
	default:
		less = func(a, b *models.OriginFile) bool {
			return a.Name < b.Name
		}
	}

	sort.SliceStable(origins, func(i, j int) bool {
		a, b := origins[i], origins[j]
		if !a.Valid() || !b.Valid() {
			return false
		}
		return less(a, b)
	})
}

// lessFolded compares names with ASCII letters lowercased byte by byte;
// other bytes compare unchanged. Names equal after folding fall back to a
// plain comparison.
func lessFolded(a, b string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := lowerASCII(a[i]), lowerASCII(b[i])
		if ca != cb {
			return ca < cb
		}
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// HasCapability reports whether origin contributed a record of capability
// during the last build. Unscanned origins have no capability.
func (c *Catalog) HasCapability(origin *models.OriginFile, capability models.Capability) bool {
	return c.classifier.Has(origin, capability)
}

// Capabilities returns the capability flags of origin.
func (c *Catalog) Capabilities(origin *models.OriginFile) models.CapabilityFlags {
	return c.classifier.Flags(origin)
}

// FilteredNames returns the names of the sorted origins of category,
// without blacklisted files. A secondary capability other than
// CapabilityNone keeps only origins that have it.
func (c *Catalog) FilteredNames(category models.Category, order models.SortOrder, secondary models.Capability) []string {
	if secondary != models.CapabilityNone && !secondary.Valid() {
		c.logger.Error("Unknown capability filter, not restricting", zap.Int("capability", int(secondary)))
		secondary = models.CapabilityNone
	}

	var names []string
	for _, f := range c.SortedOrigins(category, order) {
		if !f.Valid() {
			continue
		}
		if c.deps.Blacklist != nil && c.deps.Blacklist.Contains(f) {
			continue
		}
		if secondary != models.CapabilityNone && !c.classifier.Has(f, secondary) {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// FilteredNamesContaining narrows FilteredNames to names containing substr,
// ignoring case. An empty substr matches every name.
func (c *Catalog) FilteredNamesContaining(category models.Category, order models.SortOrder, secondary models.Capability, substr string) []string {
	names := c.FilteredNames(category, order, secondary)
	if substr == "" {
		return names
	}
	needle := strings.ToLower(substr)
	out := names[:0]
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	return out
}

// Records returns a copy of the record collection of category. Cells are
// served by Cells.
func (c *Catalog) Records(category models.Category) []*models.Record {
	src := c.records[category]
	out := make([]*models.Record, len(src))
	copy(out, src)
	return out
}

// Cells returns a copy of the cell collection.
func (c *Catalog) Cells() []*models.CellRecord {
	out := make([]*models.CellRecord, len(c.cells))
	copy(out, c.cells)
	return out
}

// CellByEditorID returns the cell with editorID, or models.NotFoundCell.
func (c *Catalog) CellByEditorID(editorID string) *models.CellRecord {
	for _, cell := range c.cells {
		if cell.EditorID == editorID {
			return cell
		}
	}
	return models.NotFoundCell
}

// SortedNames returns the origin names computed by the last RebuildAll,
// ordered case-insensitively.
func (c *Catalog) SortedNames() []string {
	out := make([]string, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// OriginByName looks up an origin of the global set, ignoring case.
func (c *Catalog) OriginByName(name string) (*models.OriginFile, bool) {
	all := c.origins[models.CategoryAll]
	if f, ok := all[name]; ok {
		return f, true
	}
	for key, f := range all {
		if strings.EqualFold(key, name) {
			return f, true
		}
	}
	return nil, false
}
