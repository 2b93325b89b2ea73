package esp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

const (
	recordHeaderSize    = 24
	subrecordHeaderSize = 6

	// maxInflatedSize bounds the buffer allocated for a compressed record.
	maxInflatedSize = 64 << 20
)

var (
	// ErrTruncated is reported when a header or payload extends past the end
	// of the container.
	ErrTruncated = errors.New("esp: truncated container")
	// ErrNotPlugin is reported when a container does not start with a TES4 header.
	ErrNotPlugin = errors.New("esp: missing TES4 header")
	// ErrClosed is reported when a closed container is read.
	ErrClosed = errors.New("esp: container closed")
)

// Container is a read-only cursor over the records and subrecords of one
// plugin file.
type Container interface {
	// NextRecord advances to the next record, descending into groups.
	// It returns false when the records are exhausted or a framing error
	// occurred (see Err).
	NextRecord() bool
	// RecordType returns the tag of the current record.
	RecordType() Tag
	// RecordFormID returns the raw form ID stored in the current record header.
	RecordFormID() uint32
	// RecordFlags returns the flags of the current record header.
	RecordFlags() uint32
	// NextSubrecord advances to the next subrecord of the current record.
	NextSubrecord() bool
	// SubrecordType returns the tag of the current subrecord.
	SubrecordType() Tag
	// SubrecordSize returns the declared payload size of the current subrecord.
	SubrecordSize() int
	// ReadSubrecord copies the current subrecord payload into buf. It fails
	// when the payload does not fit into buf or overruns the record.
	ReadSubrecord(buf []byte) (int, bool)
	// Err returns the framing error that stopped record iteration, if any.
	Err() error
	// Close releases the underlying file.
	Close() error
}

type recordHeader struct {
	typ    Tag
	size   uint32
	flags  uint32
	formID uint32
}

// Reader implements Container over an io.ReaderAt.
type Reader struct {
	src    io.ReaderAt
	closer io.Closer
	size   int64

	pos     int64
	hdr     recordHeader
	dataOff int64

	data    []byte
	loaded  bool
	next    int
	subType Tag
	subSize int
	subOff  int

	closed bool
	err    error
}

// NewReader returns a Reader over size bytes of src. closer may be nil.
func NewReader(src io.ReaderAt, size int64, closer io.Closer) *Reader {
	return &Reader{src: src, size: size, closer: closer}
}

// NewBytesReader returns a Reader over an in-memory container.
func NewBytesReader(b []byte) *Reader {
	return NewReader(bytes.NewReader(b), int64(len(b)), nil)
}

// Open opens the container at path read-only.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return NewReader(f, info.Size(), f), nil
}

// NextRecord implements Container.
func (r *Reader) NextRecord() bool {
	if r.closed {
		r.err = ErrClosed
	}
	for r.err == nil {
		if r.pos >= r.size {
			return false
		}
		if r.pos+recordHeaderSize > r.size {
			r.err = fmt.Errorf("record header at offset %d: %w", r.pos, ErrTruncated)
			return false
		}

		var buf [recordHeaderSize]byte
		if _, err := r.src.ReadAt(buf[:], r.pos); err != nil {
			r.err = fmt.Errorf("failed to read header at offset %d: %w", r.pos, err)
			return false
		}

		typ := Tag(buf[0:4])
		size := binary.LittleEndian.Uint32(buf[4:8])

		if typ == TagGroup {
			// Group size includes its own header; the children follow directly.
			if size < recordHeaderSize {
				r.err = fmt.Errorf("group at offset %d declares size %d: %w", r.pos, size, ErrTruncated)
				return false
			}
			r.pos += recordHeaderSize
			continue
		}

		r.hdr = recordHeader{
			typ:    typ,
			size:   size,
			flags:  binary.LittleEndian.Uint32(buf[8:12]),
			formID: binary.LittleEndian.Uint32(buf[12:16]),
		}
		r.dataOff = r.pos + recordHeaderSize
		r.pos = r.dataOff + int64(size)
		if r.pos > r.size {
			r.err = fmt.Errorf("record %s at offset %d: %w", typ, r.dataOff-recordHeaderSize, ErrTruncated)
			return false
		}

		r.data = nil
		r.loaded = false
		r.next = 0
		r.subType = Tag{}
		r.subSize = 0
		return true
	}
	return false
}

// RecordType implements Container.
func (r *Reader) RecordType() Tag { return r.hdr.typ }

// RecordFormID implements Container.
func (r *Reader) RecordFormID() uint32 { return r.hdr.formID }

// RecordFlags implements Container.
func (r *Reader) RecordFlags() uint32 { return r.hdr.flags }

// load reads the payload of the current record, inflating it when needed.
// A payload that cannot be read leaves the record without subrecords.
func (r *Reader) load() {
	r.loaded = true
	if r.hdr.size == 0 {
		return
	}

	raw := make([]byte, r.hdr.size)
	if _, err := r.src.ReadAt(raw, r.dataOff); err != nil {
		return
	}

	if r.hdr.flags&FlagCompressed == 0 {
		r.data = raw
		return
	}

	if len(raw) < 4 {
		return
	}
	inflated := binary.LittleEndian.Uint32(raw[0:4])
	if inflated > maxInflatedSize {
		return
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw[4:]))
	if err != nil {
		return
	}
	defer zr.Close()

	data := make([]byte, inflated)
	if _, err := io.ReadFull(zr, data); err != nil {
		return
	}
	r.data = data
}

// NextSubrecord implements Container.
func (r *Reader) NextSubrecord() bool {
	if r.closed || r.hdr.typ == (Tag{}) {
		return false
	}
	if !r.loaded {
		r.load()
	}

	off := r.next
	if off+subrecordHeaderSize > len(r.data) {
		return false
	}
	typ := Tag(r.data[off : off+4])
	size := int(binary.LittleEndian.Uint16(r.data[off+4 : off+6]))
	off += subrecordHeaderSize

	if typ == TagXXXX {
		if size != 4 || off+4+subrecordHeaderSize > len(r.data) {
			return false
		}
		size = int(binary.LittleEndian.Uint32(r.data[off : off+4]))
		off += 4
		typ = Tag(r.data[off : off+4])
		off += subrecordHeaderSize
	}

	r.subType = typ
	r.subSize = size
	r.subOff = off
	// An overrunning size moves next past the end, ending iteration.
	r.next = off + size
	return true
}

// SubrecordType implements Container.
func (r *Reader) SubrecordType() Tag { return r.subType }

// SubrecordSize implements Container.
func (r *Reader) SubrecordSize() int { return r.subSize }

// ReadSubrecord implements Container.
func (r *Reader) ReadSubrecord(buf []byte) (int, bool) {
	if r.closed || r.subSize > len(buf) || r.subOff+r.subSize > len(r.data) {
		return 0, false
	}
	return copy(buf, r.data[r.subOff:r.subOff+r.subSize]), true
}

// Err implements Container.
func (r *Reader) Err() error { return r.err }

// Close implements Container. Closing twice is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.data = nil
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
