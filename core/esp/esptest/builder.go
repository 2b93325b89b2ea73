// Package esptest builds synthetic plugin containers for tests.
package esptest

import (
	"bytes"
	"encoding/binary"

	"content-catalog/core/esp"

	"github.com/klauspost/compress/zlib"
)

// Subrecord is one subrecord to write. When Declared is non-zero it is
// written as the size field instead of len(Data), producing a malformed
// subrecord.
type Subrecord struct {
	Type     esp.Tag
	Data     []byte
	Declared uint16
}

// ZString returns s as a NUL-terminated byte slice.
func ZString(s string) []byte {
	return append([]byte(s), 0)
}

// EDID returns an editor ID subrecord.
func EDID(s string) Subrecord {
	return Subrecord{Type: esp.TagEDID, Data: ZString(s)}
}

// FULL returns a display name subrecord.
func FULL(s string) Subrecord {
	return Subrecord{Type: esp.TagFULL, Data: ZString(s)}
}

// Plugin accumulates the bytes of a container.
type Plugin struct {
	buf    bytes.Buffer
	groups []int
}

// NewPlugin starts a container with a TES4 header carrying flags and masters.
func NewPlugin(flags uint32, masters ...string) *Plugin {
	p := &Plugin{}
	subs := []Subrecord{{Type: esp.TagHEDR, Data: make([]byte, 12)}}
	for _, m := range masters {
		subs = append(subs, Subrecord{Type: esp.TagMAST, Data: ZString(m)})
		subs = append(subs, Subrecord{Type: esp.MakeTag("DATA"), Data: make([]byte, 8)})
	}
	return p.RecordWithFlags(esp.TagHeader, 0, flags, subs...)
}

// BeginGroup opens a GRUP. Groups must be closed with EndGroup.
func (p *Plugin) BeginGroup(label esp.Tag, groupType uint32) *Plugin {
	p.groups = append(p.groups, p.buf.Len())
	p.buf.Write(esp.TagGroup[:])
	p.u32(0)
	p.buf.Write(label[:])
	p.u32(groupType)
	p.u32(0)
	p.u32(0)
	return p
}

// EndGroup closes the innermost group and patches its size.
func (p *Plugin) EndGroup() *Plugin {
	start := p.groups[len(p.groups)-1]
	p.groups = p.groups[:len(p.groups)-1]
	b := p.buf.Bytes()
	binary.LittleEndian.PutUint32(b[start+4:start+8], uint32(len(b)-start))
	return p
}

// Record appends an uncompressed record.
func (p *Plugin) Record(typ esp.Tag, formID uint32, subs ...Subrecord) *Plugin {
	return p.RecordWithFlags(typ, formID, 0, subs...)
}

// RecordWithFlags appends a record with explicit header flags. When the
// compressed flag is set the payload is deflated.
func (p *Plugin) RecordWithFlags(typ esp.Tag, formID, flags uint32, subs ...Subrecord) *Plugin {
	payload := encodeSubrecords(subs)
	if flags&esp.FlagCompressed != 0 {
		var z bytes.Buffer
		size := make([]byte, 4)
		binary.LittleEndian.PutUint32(size, uint32(len(payload)))
		z.Write(size)
		w := zlib.NewWriter(&z)
		_, _ = w.Write(payload)
		_ = w.Close()
		payload = z.Bytes()
	}
	p.buf.Write(typ[:])
	p.u32(uint32(len(payload)))
	p.u32(flags)
	p.u32(formID)
	p.u32(0)
	p.u32(0)
	p.buf.Write(payload)
	return p
}

// Raw appends arbitrary bytes, for truncated or corrupt containers.
func (p *Plugin) Raw(b []byte) *Plugin {
	p.buf.Write(b)
	return p
}

// Bytes returns the container bytes.
func (p *Plugin) Bytes() []byte {
	return bytes.Clone(p.buf.Bytes())
}

func (p *Plugin) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	p.buf.Write(b[:])
}

func encodeSubrecords(subs []Subrecord) []byte {
	var out bytes.Buffer
	for _, s := range subs {
		size := len(s.Data)
		if size > 0xFFFF {
			var x [10]byte
			copy(x[0:4], esp.TagXXXX[:])
			binary.LittleEndian.PutUint16(x[4:6], 4)
			binary.LittleEndian.PutUint32(x[6:10], uint32(size))
			out.Write(x[:])
			size = 0
		}
		declared := uint16(size)
		if s.Declared != 0 {
			declared = s.Declared
		}
		var h [6]byte
		copy(h[0:4], s.Type[:])
		binary.LittleEndian.PutUint16(h[4:6], declared)
		out.Write(h[:])
		out.Write(s.Data)
	}
	return out.Bytes()
}
