package esp

// Tag is the 4-character type code of a record or subrecord.
type Tag [4]byte

// MakeTag builds a Tag from a string. Shorter strings are padded with
// underscores, longer ones are truncated.
func MakeTag(s string) Tag {
	t := Tag{'_', '_', '_', '_'}
	copy(t[:], s)
	return t
}

// String returns the tag as text.
func (t Tag) String() string {
	return string(t[:])
}

// Structural tags.
var (
	TagGroup  = MakeTag("GRUP")
	TagHeader = MakeTag("TES4")
	TagXXXX   = MakeTag("XXXX")
)

// Subrecord tags.
var (
	TagEDID = MakeTag("EDID")
	TagFULL = MakeTag("FULL")
	TagMAST = MakeTag("MAST")
	TagHEDR = MakeTag("HEDR")
)

// Record tags of catalogued content.
var (
	TagARMO = MakeTag("ARMO")
	TagBOOK = MakeTag("BOOK")
	TagWEAP = MakeTag("WEAP")
	TagMISC = MakeTag("MISC")
	TagAMMO = MakeTag("AMMO")
	TagALCH = MakeTag("ALCH")
	TagINGR = MakeTag("INGR")
	TagSCRL = MakeTag("SCRL")
	TagKEYM = MakeTag("KEYM")
	TagNPC  = MakeTag("NPC_")
	TagSTAT = MakeTag("STAT")
	TagTREE = MakeTag("TREE")
	TagACTI = MakeTag("ACTI")
	TagCONT = MakeTag("CONT")
	TagDOOR = MakeTag("DOOR")
	TagLIGH = MakeTag("LIGH")
	TagFURN = MakeTag("FURN")
	TagFLOR = MakeTag("FLOR")
	TagCELL = MakeTag("CELL")
)

// Record header flags.
const (
	FlagMaster     uint32 = 0x00000001
	FlagLocalized  uint32 = 0x00000080
	FlagLight      uint32 = 0x00000200
	FlagCompressed uint32 = 0x00040000
)

// CString returns b up to its first NUL byte.
func CString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
