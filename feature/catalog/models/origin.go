package models

import "fmt"

// LightCompileIndex is the compile index shared by all light origin files.
const LightCompileIndex = 0xFE

// OriginFile is one loaded container file. The host owns OriginFile values;
// the catalog indexes them by Name, which is unique within a load order.
type OriginFile struct {
	Name string
	// Light files share compile index 0xFE and are told apart by
	// SmallFileCompileIndex.
	Light                 bool
	CompileIndex          uint8
	SmallFileCompileIndex uint16
}

// Valid reports whether f can be indexed. Nil files and files without a
// name are invalid.
func (f *OriginFile) Valid() bool {
	return f != nil && f.Name != ""
}

// CombinedIndex returns the load-order key: the compile index for full
// files, 0xFE000 plus the small-file index for light files.
func (f *OriginFile) CombinedIndex() uint32 {
	if f == nil {
		return 0
	}
	if f.Light {
		return LightCompileIndex<<12 | uint32(f.SmallFileCompileIndex)
	}
	return uint32(f.CompileIndex)
}

// FormIDPrefix returns the load-order prefix used in runtime form IDs, e.g.
// "05" for a full file or "FE001" for a light one.
func (f *OriginFile) FormIDPrefix() string {
	if f == nil {
		return ""
	}
	if f.Light {
		return fmt.Sprintf("FE%03X", f.SmallFileCompileIndex)
	}
	return fmt.Sprintf("%02X", f.CompileIndex)
}

func (f *OriginFile) String() string {
	if f == nil {
		return "<nil>"
	}
	return f.Name
}
