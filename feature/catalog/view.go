package catalog

import (
	"content-catalog/core/utils"
	"content-catalog/feature/catalog/models"
)

// OriginInfo is the JSON view of an origin file.
type OriginInfo struct {
	Name                  string   `json:"name"`
	Light                 bool     `json:"light"`
	CompileIndex          uint8    `json:"compile_index"`
	SmallFileCompileIndex uint16   `json:"small_file_compile_index"`
	CombinedIndex         uint32   `json:"combined_index"`
	Prefix                string   `json:"prefix"`
	Capabilities          []string `json:"capabilities"`
}

func newOriginInfo(f *models.OriginFile, flags models.CapabilityFlags) OriginInfo {
	caps := flags.Names()
	if caps == nil {
		caps = []string{}
	}
	return OriginInfo{
		Name:                  f.Name,
		Light:                 f.Light,
		CompileIndex:          f.CompileIndex,
		SmallFileCompileIndex: f.SmallFileCompileIndex,
		CombinedIndex:         f.CombinedIndex(),
		Prefix:                f.FormIDPrefix(),
		Capabilities:          caps,
	}
}

// RecordInfo is the JSON view of a record.
type RecordInfo struct {
	Category   string            `json:"category"`
	Capability string            `json:"capability"`
	Type       string            `json:"type"`
	FormID     string            `json:"form_id"`
	Origin     string            `json:"origin"`
	Name       string            `json:"name"`
	EditorID   string            `json:"editor_id"`
	LiveFormID string            `json:"live_form_id,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

func newRecordInfo(r *models.Record, withProperties bool) RecordInfo {
	info := RecordInfo{
		Category:   r.Category.String(),
		Capability: r.Capability.String(),
		Type:       r.Type.String(),
		FormID:     utils.FormatFormID(r.FormID),
		Origin:     r.Origin.String(),
		Name:       r.Name,
		EditorID:   r.EditorID,
	}
	if r.HasLiveInstance() {
		info.LiveFormID = utils.FormatFormID(r.LiveFormID)
	}
	if withProperties {
		info.Properties = r.Properties()
	}
	return info
}

// CellInfo is the JSON view of a cell.
type CellInfo struct {
	Origin   string `json:"origin"`
	Name     string `json:"name"`
	EditorID string `json:"editor_id"`
}

func newCellInfo(c *models.CellRecord) CellInfo {
	return CellInfo{
		Origin:   c.OriginName,
		Name:     c.Name,
		EditorID: c.EditorID,
	}
}
