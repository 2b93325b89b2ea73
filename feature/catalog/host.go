package catalog

import (
	"context"
	"sync"

	"content-catalog/core/esp"
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// ContentSource enumerates the content records currently loaded by the host.
type ContentSource interface {
	// FormsByType returns every loaded form with the given structural tag.
	FormsByType(tag esp.Tag) []models.Form
}

// ContainerOpener opens origin files as raw containers, read-only.
type ContainerOpener interface {
	Open(ctx context.Context, name string) (esp.Container, error)
}

// ActorHandle is a weak reference to a live actor instance.
type ActorHandle interface {
	// Resolve returns the actor's base form ID and its own reference ID.
	// ok is false when the handle no longer points at a live actor.
	Resolve() (base, live uint32, ok bool)
}

// LiveInstances exposes the host's tiers of resident actors.
type LiveInstances interface {
	HighActors() []ActorHandle
	MiddleActors() []ActorHandle
	LowActors() []ActorHandle
}

// Blacklist reports origin files excluded from filtered name lists.
type Blacklist interface {
	Contains(origin *models.OriginFile) bool
}

// CellNameLookup resolves a cell's display name from its editor ID.
type CellNameLookup interface {
	CellName(editorID string) (string, bool)
}

// Scheduler runs tasks at a later frame boundary, one at a time, in
// submission order.
type Scheduler interface {
	Post(task func()) bool
}

// Deps bundles the collaborators of a Catalog. Only Content is required.
type Deps struct {
	Content    ContentSource
	Containers ContainerOpener
	Live       LiveInstances
	Blacklist  Blacklist
	// CellNames is consulted first for cell display names, Descriptions
	// second.
	CellNames    CellNameLookup
	Descriptions CellNameLookup
	Scheduler    Scheduler
	Logger       *zap.Logger
	// EditorIDBuffer bounds the editor ID read by the cell scanner.
	EditorIDBuffer int
	// Locker, when set, is held while the deferred reconciliation merges
	// into the NPC collection.
	Locker sync.Locker
}
