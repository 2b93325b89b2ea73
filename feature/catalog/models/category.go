package models

import "strings"

// Category selects one of the catalog's origin-file indices.
type Category int

const (
	// CategoryAll selects the global origin-file set.
	CategoryAll Category = iota
	CategoryItem
	CategoryNPC
	CategoryStatic
	CategoryCell
)

var categoryNames = map[Category]string{
	CategoryAll:    "all",
	CategoryItem:   "item",
	CategoryNPC:    "npc",
	CategoryStatic: "static",
	CategoryCell:   "cell",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, true
	}
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	return CategoryAll, false
}

// RecordCategories lists the categories that hold records, in rebuild order.
var RecordCategories = []Category{CategoryItem, CategoryNPC, CategoryStatic, CategoryCell}

// SortOrder selects how origin-file lists are ordered.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAlphabetical
	SortCompileIndexAsc
	SortCompileIndexDesc
)

var sortOrderNames = map[SortOrder]string{
	SortNone:             "none",
	SortAlphabetical:     "alphabetical",
	SortCompileIndexAsc:  "compileindex_asc",
	SortCompileIndexDesc: "compileindex_desc",
}

// Valid reports whether o is a known order.
func (o SortOrder) Valid() bool {
	_, ok := sortOrderNames[o]
	return ok
}

func (o SortOrder) String() string {
	if name, ok := sortOrderNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseSortOrder parses an order name case-insensitively.
func ParseSortOrder(s string) (SortOrder, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNone, true
	}
	for o, name := range sortOrderNames {
		if name == s {
			return o, true
		}
	}
	return SortNone, false
}
