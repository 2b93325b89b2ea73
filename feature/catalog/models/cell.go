package models

import "sort"

// PassFirst tags entries produced by the first scan pass.
const PassFirst = "First Pass"

// CellRecord is one world cell recovered by the raw container scan.
type CellRecord struct {
	OriginName string
	Name       string
	EditorID   string
	Origin     *OriginFile
}

// NotFoundCell is returned by lookups that find no cell. It must not be
// modified.
var NotFoundCell = &CellRecord{Name: "Not Found"}

// Found reports whether c is a real cell rather than NotFoundCell.
func (c *CellRecord) Found() bool {
	return c != nil && c != NotFoundCell
}

// CellKey identifies one scanned cell definition.
type CellKey struct {
	FormKey  uint32
	EditorID string
	Pass     string
}

func (k CellKey) less(o CellKey) bool {
	if k.FormKey != o.FormKey {
		return k.FormKey < o.FormKey
	}
	if k.EditorID != o.EditorID {
		return k.EditorID < o.EditorID
	}
	return k.Pass < o.Pass
}

// CellScanEntry is one entry of a CellScanMap.
type CellScanEntry struct {
	Key    CellKey
	Origin string
}

// CellScanMap maps scanned cells to the name of the origin file that
// defined them. Entries are keyed by the whole CellKey, so cells of
// different origins sharing a numeric form key are kept apart.
type CellScanMap struct {
	entries map[CellKey]string
}

// NewCellScanMap returns an empty map.
func NewCellScanMap() *CellScanMap {
	return &CellScanMap{entries: make(map[CellKey]string)}
}

// Put records that origin defines the cell identified by key.
func (m *CellScanMap) Put(key CellKey, origin string) {
	m.entries[key] = origin
}

// Delete removes key.
func (m *CellScanMap) Delete(key CellKey) {
	delete(m.entries, key)
}

// Get returns the origin recorded for key.
func (m *CellScanMap) Get(key CellKey) (string, bool) {
	origin, ok := m.entries[key]
	return origin, ok
}

// Len returns the number of entries.
func (m *CellScanMap) Len() int {
	return len(m.entries)
}

// Entries returns all entries ordered by key.
func (m *CellScanMap) Entries() []CellScanEntry {
	out := make([]CellScanEntry, 0, len(m.entries))
	for k, origin := range m.entries {
		out = append(out, CellScanEntry{Key: k, Origin: origin})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.less(out[j].Key)
	})
	return out
}
