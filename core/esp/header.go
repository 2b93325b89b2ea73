package esp

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PluginHeader holds the fields of a container's TES4 record.
type PluginHeader struct {
	Flags   uint32
	Masters []string
}

// IsMaster reports whether the master flag is set.
func (h *PluginHeader) IsMaster() bool { return h.Flags&FlagMaster != 0 }

// IsLight reports whether the light flag is set.
func (h *PluginHeader) IsLight() bool { return h.Flags&FlagLight != 0 }

// IsLocalized reports whether FULL subrecords hold string table IDs
// instead of text.
func (h *PluginHeader) IsLocalized() bool { return h.Flags&FlagLocalized != 0 }

// ReadPluginHeader advances c to its first record and decodes it as the
// plugin header. c must be freshly opened.
func ReadPluginHeader(c Container) (*PluginHeader, error) {
	if !c.NextRecord() {
		if err := c.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotPlugin
	}
	if c.RecordType() != TagHeader {
		return nil, fmt.Errorf("first record is %s: %w", c.RecordType(), ErrNotPlugin)
	}

	h := &PluginHeader{Flags: c.RecordFlags()}
	for c.NextSubrecord() {
		if c.SubrecordType() != TagMAST {
			continue
		}
		buf := make([]byte, c.SubrecordSize())
		n, ok := c.ReadSubrecord(buf)
		if !ok {
			return nil, fmt.Errorf("master list: %w", ErrTruncated)
		}
		h.Masters = append(h.Masters, CString(buf[:n]))
	}
	return h, nil
}

// IsPluginName reports whether name carries a plugin extension.
func IsPluginName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".esm", ".esp", ".esl":
		return true
	default:
		return false
	}
}

// HasLightExtension reports whether name uses the .esl extension, which
// marks a container as light regardless of its header flags.
func HasLightExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".esl")
}
