package catalog

import (
	"sync/atomic"

	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// DefaultEditorIDBuffer is the editor ID buffer capacity used when Deps
// leaves it unset.
const DefaultEditorIDBuffer = 512

type originSet map[string]*models.OriginFile

func (s originSet) add(f *models.OriginFile) {
	s[f.Name] = f
}

// Catalog owns the record collections and origin-file indices built from
// the host's loaded content. It is not safe for concurrent use; Service
// wraps it for concurrent readers.
type Catalog struct {
	deps   Deps
	logger *zap.Logger

	records    map[models.Category][]*models.Record
	cells      []*models.CellRecord
	origins    map[models.Category]originSet
	classifier *Classifier
	sorted     []string

	// cellForms holds the origins of CELL forms, which may differ from the
	// origins recovered by the raw scan.
	cellForms originSet

	closed atomic.Bool
}

// New creates an empty catalog. Call RebuildAll to populate it.
func New(deps Deps) *Catalog {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.EditorIDBuffer <= 0 {
		deps.EditorIDBuffer = DefaultEditorIDBuffer
	}
	c := &Catalog{
		deps:       deps,
		logger:     deps.Logger,
		classifier: NewClassifier(),
	}
	c.reset()
	return c
}

func (c *Catalog) reset() {
	c.records = make(map[models.Category][]*models.Record)
	c.cells = nil
	c.cellForms = originSet{}
	c.origins = map[models.Category]originSet{
		models.CategoryAll:    {},
		models.CategoryItem:   {},
		models.CategoryNPC:    {},
		models.CategoryStatic: {},
		models.CategoryCell:   {},
	}
	c.classifier.Reset()
	c.sorted = nil
}

// Close marks the catalog as torn down. Reconciliation tasks that run
// afterwards do not merge.
func (c *Catalog) Close() {
	c.closed.Store(true)
}

// Closed reports whether Close was called.
func (c *Catalog) Closed() bool {
	return c.closed.Load()
}

// Counts returns the number of records per record category.
func (c *Catalog) Counts() map[models.Category]int {
	return map[models.Category]int{
		models.CategoryItem:   len(c.records[models.CategoryItem]),
		models.CategoryNPC:    len(c.records[models.CategoryNPC]),
		models.CategoryStatic: len(c.records[models.CategoryStatic]),
		models.CategoryCell:   len(c.cells),
	}
}
