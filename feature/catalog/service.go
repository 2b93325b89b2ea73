package catalog

import (
	"context"
	"sync"

	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service guards a Catalog for concurrent readers. Rebuilds take the write
// lock and concurrent rebuild requests share one run.
type Service struct {
	mu      sync.RWMutex
	catalog *Catalog
	group   singleflight.Group
	logger  *zap.Logger
}

// NewService creates a service around a new catalog. The catalog's deferred
// reconciliation merges under the service's write lock.
func NewService(deps Deps) *Service {
	svc := &Service{}
	deps.Locker = &svc.mu
	svc.catalog = New(deps)
	svc.logger = svc.catalog.logger
	return svc
}

// Rebuild runs a full rebuild. Callers arriving while a rebuild is running
// wait for it and share its result.
func (s *Service) Rebuild(ctx context.Context) map[models.Category]int {
	return s.RebuildCategory(ctx, models.CategoryAll)
}

// RebuildCategory rebuilds one category and returns the record counts
// afterwards.
func (s *Service) RebuildCategory(ctx context.Context, category models.Category) map[models.Category]int {
	v, _, shared := s.group.Do("rebuild:"+category.String(), func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.catalog.RebuildCategory(ctx, category)
		return s.catalog.Counts(), nil
	})
	if shared {
		s.logger.Debug("Rebuild request joined a running rebuild", zap.Stringer("category", category))
	}
	return v.(map[models.Category]int)
}

// Close tears the catalog down. Pending reconciliation no longer merges.
func (s *Service) Close() {
	s.catalog.Close()
}

// Counts returns the record count per category.
func (s *Service) Counts() map[models.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Counts()
}

// Origins returns the origins of category sorted by order.
func (s *Service) Origins(category models.Category, order models.SortOrder) []OriginInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	origins := s.catalog.SortedOrigins(category, order)
	out := make([]OriginInfo, 0, len(origins))
	for _, f := range origins {
		out = append(out, newOriginInfo(f, s.catalog.Capabilities(f)))
	}
	return out
}

// Origin returns one origin of the global set by name.
func (s *Service) Origin(name string) (OriginInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.catalog.OriginByName(name)
	if !ok {
		return OriginInfo{}, false
	}
	return newOriginInfo(f, s.catalog.Capabilities(f)), true
}

// FilteredNames returns the filtered origin names; see
// Catalog.FilteredNamesContaining.
func (s *Service) FilteredNames(category models.Category, order models.SortOrder, secondary models.Capability, substr string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.FilteredNamesContaining(category, order, secondary, substr)
}

// SortedNames returns the names computed by the last full rebuild.
func (s *Service) SortedNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.SortedNames()
}

// Records returns a snapshot of the records of category. Properties are
// resolved through the host only when withProperties is set.
func (s *Service) Records(category models.Category, withProperties bool) []RecordInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.catalog.Records(category)
	out := make([]RecordInfo, 0, len(records))
	for _, r := range records {
		out = append(out, newRecordInfo(r, withProperties))
	}
	return out
}

// Cells returns a snapshot of the cell collection.
func (s *Service) Cells() []CellInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cells := s.catalog.Cells()
	out := make([]CellInfo, 0, len(cells))
	for _, c := range cells {
		out = append(out, newCellInfo(c))
	}
	return out
}

// Cell looks a cell up by editor ID.
func (s *Service) Cell(editorID string) (CellInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cell := s.catalog.CellByEditorID(editorID)
	return newCellInfo(cell), cell.Found()
}
