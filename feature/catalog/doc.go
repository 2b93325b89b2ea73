// Package catalog indexes the content records contributed by a load order
// of origin files and answers queries over them.
//
// # Building
//
// Catalog.RebuildAll walks the host's content by structural type and sorts
// each record into the item, NPC or static collection, noting which origin
// file contributed it and which capabilities that file therefore has.
// Cells are recovered differently: every origin owning a CELL form is
// opened as a raw container once per rebuild and its CELL records are
// scanned for editor IDs (see ScanForCells).
//
// After NPCs are rebuilt a reconciliation task is posted to the host's
// scheduler. When it runs it maps NPC base forms to one live instance each,
// preferring the high actor tier over the middle and low tiers.
//
// # Querying
//
// Origin sets can be listed per category, sorted alphabetically or by load
// order, and filtered by capability, name substring and blacklist. Unknown
// enum values are logged and replaced by the widest answer.
//
// # Concurrency
//
// Catalog is not safe for concurrent use. Service adds a read/write lock and
// collapses concurrent rebuild requests; Handler exposes Service under
// /catalog.
package catalog
