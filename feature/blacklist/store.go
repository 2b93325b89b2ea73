package blacklist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"content-catalog/core/database"
	"content-catalog/core/esp"
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableName is the table holding blacklist entries.
const TableName = "origin_blacklist"

// Entry is one blacklisted origin file.
type Entry struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	PluginKey string    `gorm:"column:plugin_key;size:255;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName implements gorm's tabler interface.
func (Entry) TableName() string {
	return TableName
}

var requiredColumns = []string{"id", "name", "plugin_key", "created_at"}

// Store holds the blacklist. A nil db keeps it in memory only.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger

	mu    sync.RWMutex
	names map[string]string
}

// NewStore creates an empty store. Call Load to read persisted entries.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger, names: make(map[string]string)}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Persistent reports whether entries are written to a database.
func (s *Store) Persistent() bool {
	return s.db != nil
}

// Migrate creates or updates the blacklist table.
func (s *Store) Migrate() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// Verify checks that the blacklist table has every column the store uses.
func (s *Store) Verify() ([]string, error) {
	if s.db == nil {
		return nil, nil
	}
	return database.MissingColumns(s.db, TableName, requiredColumns)
}

// Load replaces the in-memory list with the persisted entries.
func (s *Store) Load(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	var entries []Entry
	if err := s.db.WithContext(ctx).Order("plugin_key").Find(&entries).Error; err != nil {
		return fmt.Errorf("failed to load blacklist: %w", err)
	}

	names := make(map[string]string, len(entries))
	for _, e := range entries {
		names[e.PluginKey] = e.Name
	}
	s.mu.Lock()
	s.names = names
	s.mu.Unlock()

	s.logger.Info("Blacklist loaded", zap.Int("entries", len(names)))
	return nil
}

// Contains implements catalog.Blacklist. Invalid origins are never listed.
func (s *Store) Contains(origin *models.OriginFile) bool {
	if !origin.Valid() {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[key(origin.Name)]
	return ok
}

// Add blacklists name. Adding a listed name again is a no-op.
func (s *Store) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if !esp.IsPluginName(name) {
		return fmt.Errorf("%q is not a plugin name", name)
	}

	if s.db != nil {
		entry := Entry{Name: name, PluginKey: key(name)}
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "plugin_key"}}, DoNothing: true}).
			Create(&entry).Error
		if err != nil {
			return fmt.Errorf("failed to add %s to blacklist: %w", name, err)
		}
	}

	s.mu.Lock()
	if _, ok := s.names[key(name)]; !ok {
		s.names[key(name)] = name
	}
	s.mu.Unlock()
	return nil
}

// Remove takes name off the blacklist. It reports whether name was listed.
func (s *Store) Remove(ctx context.Context, name string) (bool, error) {
	k := key(name)
	if s.db != nil {
		if err := s.db.WithContext(ctx).Where("plugin_key = ?", k).Delete(&Entry{}).Error; err != nil {
			return false, fmt.Errorf("failed to remove %s from blacklist: %w", name, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.names[k]
	delete(s.names, k)
	return ok, nil
}

// List returns the blacklisted names, sorted case-insensitively.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}
