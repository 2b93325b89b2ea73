package models

import "content-catalog/core/esp"

// PlayerFormID is the base form of the player character. It is never
// catalogued as an NPC.
const PlayerFormID uint32 = 0x00000007

// Form is one content record as exposed by the host's structured API.
type Form interface {
	FormID() uint32
	Type() esp.Tag
	// Origin returns the last origin file in the form's override chain, or
	// nil when it cannot be resolved.
	Origin() *OriginFile
	Name() string
	EditorID() string
	// Properties computes category-specific details on demand.
	Properties() map[string]string
}

// Record is the catalog's view of one content record, rebuilt on every
// catalog rebuild.
type Record struct {
	Category   Category
	Capability Capability
	Type       esp.Tag
	FormID     uint32
	Origin     *OriginFile
	Name       string
	EditorID   string
	// LiveFormID is the reference ID of a live instance of this NPC, or 0.
	LiveFormID uint32

	form Form
}

// NewRecord builds a record view of form.
func NewRecord(form Form, category Category, capability Capability) *Record {
	return &Record{
		Category:   category,
		Capability: capability,
		Type:       form.Type(),
		FormID:     form.FormID(),
		Origin:     form.Origin(),
		Name:       form.Name(),
		EditorID:   form.EditorID(),
		form:       form,
	}
}

// Properties returns the category-specific details of the underlying form.
// They are computed by the host on every call.
func (r *Record) Properties() map[string]string {
	if r.form == nil {
		return nil
	}
	return r.form.Properties()
}

// HasLiveInstance reports whether a live instance was merged onto r.
func (r *Record) HasLiveInstance() bool {
	return r.LiveFormID != 0
}
