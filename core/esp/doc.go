// Package esp reads plugin containers (.esm, .esp, .esl) as raw record streams.
//
// A container is a sequence of 24-byte record headers, each followed by its
// payload. GRUP headers wrap nested records; the reader descends into them
// transparently so callers see a flat stream of records. Each record payload
// is a sequence of subrecords: a 4-byte tag, a 2-byte size and the data. An
// XXXX subrecord carries the 32-bit size of the subrecord that follows it.
// Records flagged as compressed are inflated with zlib before their
// subrecords are visited.
//
// The package is read-only and only understands the framing. It never
// interprets record semantics beyond the plugin header (TES4) flags and
// master list.
//
// # Container
//
// The Container interface is the raw-container API the catalog consumes:
//
//	c, err := source.Open(ctx, "Skyrim.esm")
//	defer c.Close()
//	for c.NextRecord() {
//	    if c.RecordType() != esp.TagCELL {
//	        continue
//	    }
//	    for c.NextSubrecord() {
//	        ...
//	    }
//	}
//
// # Sources
//
// DirSource opens containers from a local data directory and BucketSource
// downloads them from an S3/MinIO bucket through core/storage.
package esp
