package models

import "strings"

// Capability is one content kind an origin file can contribute.
type Capability int

const (
	// CapabilityNone means "no capability restriction" in filters.
	CapabilityNone Capability = iota
	CapabilityArmor
	CapabilityBook
	CapabilityWeapon
	CapabilityMisc
	CapabilityAmmo
	CapabilityAlchemy
	CapabilityIngredient
	CapabilityScroll
	CapabilityKey
	CapabilityStatic
	CapabilityTree
	CapabilityActivator
	CapabilityContainer
	CapabilityDoor
	CapabilityLight
	CapabilityFurniture
	CapabilityFlora
	CapabilityNPC
	CapabilityCell

	capabilityEnd
)

var capabilityNames = [...]string{
	CapabilityNone:       "none",
	CapabilityArmor:      "armor",
	CapabilityBook:       "book",
	CapabilityWeapon:     "weapon",
	CapabilityMisc:       "misc",
	CapabilityAmmo:       "ammo",
	CapabilityAlchemy:    "alchemy",
	CapabilityIngredient: "ingredient",
	CapabilityScroll:     "scroll",
	CapabilityKey:        "key",
	CapabilityStatic:     "static",
	CapabilityTree:       "tree",
	CapabilityActivator:  "activator",
	CapabilityContainer:  "container",
	CapabilityDoor:       "door",
	CapabilityLight:      "light",
	CapabilityFurniture:  "furniture",
	CapabilityFlora:      "flora",
	CapabilityNPC:        "npc",
	CapabilityCell:       "cell",
}

// Valid reports whether c names a real capability. CapabilityNone is not valid.
func (c Capability) Valid() bool {
	return c > CapabilityNone && c < capabilityEnd
}

func (c Capability) String() string {
	if c < CapabilityNone || c >= capabilityEnd {
		return "unknown"
	}
	return capabilityNames[c]
}

// ParseCapability parses a capability name case-insensitively. The empty
// string parses as CapabilityNone.
func ParseCapability(s string) (Capability, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CapabilityNone, true
	}
	for c, name := range capabilityNames {
		if name == s {
			return Capability(c), true
		}
	}
	return CapabilityNone, false
}

// AllCapabilities lists every valid capability in declaration order.
func AllCapabilities() []Capability {
	out := make([]Capability, 0, capabilityEnd-1)
	for c := CapabilityNone + 1; c < capabilityEnd; c++ {
		out = append(out, c)
	}
	return out
}

// CapabilityFlags is a bit set with one bit per Capability.
type CapabilityFlags uint32

func (c Capability) bit() CapabilityFlags {
	return 1 << uint(c-1)
}

// Has reports whether c is set. Invalid capabilities are never set.
func (f CapabilityFlags) Has(c Capability) bool {
	return c.Valid() && f&c.bit() != 0
}

// With returns f with c set.
func (f CapabilityFlags) With(c Capability) CapabilityFlags {
	if !c.Valid() {
		return f
	}
	return f | c.bit()
}

// Without returns f with c cleared.
func (f CapabilityFlags) Without(c Capability) CapabilityFlags {
	if !c.Valid() {
		return f
	}
	return f &^ c.bit()
}

// List returns the set capabilities in declaration order.
func (f CapabilityFlags) List() []Capability {
	var out []Capability
	for _, c := range AllCapabilities() {
		if f.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the names of the set capabilities.
func (f CapabilityFlags) Names() []string {
	caps := f.List()
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = c.String()
	}
	return out
}
