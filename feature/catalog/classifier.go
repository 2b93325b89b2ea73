package catalog

import (
	"content-catalog/core/esp"
	"content-catalog/feature/catalog/models"
)

type classification struct {
	category   models.Category
	capability models.Capability
}

var classifications = map[esp.Tag]classification{
	esp.TagARMO: {models.CategoryItem, models.CapabilityArmor},
	esp.TagBOOK: {models.CategoryItem, models.CapabilityBook},
	esp.TagWEAP: {models.CategoryItem, models.CapabilityWeapon},
	esp.TagMISC: {models.CategoryItem, models.CapabilityMisc},
	esp.TagAMMO: {models.CategoryItem, models.CapabilityAmmo},
	esp.TagALCH: {models.CategoryItem, models.CapabilityAlchemy},
	esp.TagINGR: {models.CategoryItem, models.CapabilityIngredient},
	esp.TagSCRL: {models.CategoryItem, models.CapabilityScroll},
	esp.TagKEYM: {models.CategoryItem, models.CapabilityKey},

	esp.TagNPC: {models.CategoryNPC, models.CapabilityNPC},

	esp.TagSTAT: {models.CategoryStatic, models.CapabilityStatic},
	esp.TagTREE: {models.CategoryStatic, models.CapabilityTree},
	esp.TagACTI: {models.CategoryStatic, models.CapabilityActivator},
	esp.TagCONT: {models.CategoryStatic, models.CapabilityContainer},
	esp.TagDOOR: {models.CategoryStatic, models.CapabilityDoor},
	esp.TagLIGH: {models.CategoryStatic, models.CapabilityLight},
	esp.TagFURN: {models.CategoryStatic, models.CapabilityFurniture},
	esp.TagFLOR: {models.CategoryStatic, models.CapabilityFlora},

	esp.TagCELL: {models.CategoryCell, models.CapabilityCell},
}

// categoryTags lists, per record category, the structural tags scanned.
var categoryTags = map[models.Category][]esp.Tag{
	models.CategoryItem: {
		esp.TagARMO, esp.TagBOOK, esp.TagWEAP, esp.TagMISC, esp.TagAMMO,
		esp.TagALCH, esp.TagINGR, esp.TagSCRL, esp.TagKEYM,
	},
	models.CategoryNPC: {esp.TagNPC},
	models.CategoryStatic: {
		esp.TagSTAT, esp.TagTREE, esp.TagACTI, esp.TagCONT,
		esp.TagDOOR, esp.TagLIGH, esp.TagFURN, esp.TagFLOR,
	},
	models.CategoryCell: {esp.TagCELL},
}

// CatalogedTags returns every structural tag the catalog classifies.
func CatalogedTags() []esp.Tag {
	var out []esp.Tag
	for _, c := range models.RecordCategories {
		out = append(out, categoryTags[c]...)
	}
	return out
}

// Classify returns the category and capability of a structural tag.
func Classify(tag esp.Tag) (models.Category, models.Capability, bool) {
	c, ok := classifications[tag]
	if !ok {
		return models.CategoryAll, models.CapabilityNone, false
	}
	return c.category, c.capability, true
}

// capabilitiesOf returns the capabilities a category's records contribute.
func capabilitiesOf(category models.Category) []models.Capability {
	var out []models.Capability
	for _, tag := range categoryTags[category] {
		out = append(out, classifications[tag].capability)
	}
	return out
}

// Classifier maintains the per-origin capability flags.
type Classifier struct {
	flags map[string]models.CapabilityFlags
}

// NewClassifier returns a classifier with no flags set.
func NewClassifier() *Classifier {
	return &Classifier{flags: make(map[string]models.CapabilityFlags)}
}

// Classify determines the category of form and sets the matching
// capability bit on origin. Forms without a valid origin, unknown tags and
// the player's base NPC are rejected.
func (c *Classifier) Classify(form models.Form, origin *models.OriginFile) (models.Category, models.Capability, bool) {
	category, capability, ok := c.Resolve(form, origin)
	if ok {
		c.Attribute(origin, capability)
	}
	return category, capability, ok
}

// Resolve is Classify without setting any flag.
func (c *Classifier) Resolve(form models.Form, origin *models.OriginFile) (models.Category, models.Capability, bool) {
	if !origin.Valid() {
		return models.CategoryAll, models.CapabilityNone, false
	}
	category, capability, ok := Classify(form.Type())
	if !ok {
		return models.CategoryAll, models.CapabilityNone, false
	}
	if category == models.CategoryNPC && form.FormID() == models.PlayerFormID {
		return models.CategoryAll, models.CapabilityNone, false
	}
	return category, capability, true
}

// Attribute sets capability on origin. The first call for an origin starts
// from an empty flag set.
func (c *Classifier) Attribute(origin *models.OriginFile, capability models.Capability) {
	if !origin.Valid() || !capability.Valid() {
		return
	}
	c.flags[origin.Name] = c.flags[origin.Name].With(capability)
}

// Flags returns the flags of origin; unseen origins have no flags set.
func (c *Classifier) Flags(origin *models.OriginFile) models.CapabilityFlags {
	if !origin.Valid() {
		return 0
	}
	return c.flags[origin.Name]
}

// Has reports whether origin contributed a record of capability.
func (c *Classifier) Has(origin *models.OriginFile, capability models.Capability) bool {
	return c.Flags(origin).Has(capability)
}

// Clear unsets the given capabilities on every origin.
func (c *Classifier) Clear(capabilities []models.Capability) {
	for name, f := range c.flags {
		for _, capability := range capabilities {
			f = f.Without(capability)
		}
		if f == 0 {
			delete(c.flags, name)
			continue
		}
		c.flags[name] = f
	}
}

// Reset unsets every flag.
func (c *Classifier) Reset() {
	c.flags = make(map[string]models.CapabilityFlags)
}
