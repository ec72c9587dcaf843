// Package record binds a compiled layout to a byte buffer and provides typed
// access to its fields.
//
// # Binding
//
// New allocates a zero-filled buffer of exactly the layout size. Wrap borrows a
// caller-supplied buffer; writes through the record are visible to every other
// holder of that buffer. The byte order is fixed at construction and applies to
// every multi-byte integer field:
//
//	l, _ := layout.Compile("uint16 packetId", "cstring method[11]")
//	r := record.New(l, record.BigEndian)
//	_ = r.Set("packetId", 1)
//	_ = r.Set("method", "buy")
//	hex, _ := r.Render(record.RenderHex) // "00016275790000000000000000"
//
// # Text Fields
//
// A cstring field of capacity N holds at most N-1 Latin-1 characters followed
// by a zero byte. Longer input is truncated. Bytes after the terminator are left
// untouched by Set and SetText, so raw views (Bytes, Render, Sum64) may still show
// remnants of a previous longer value.
//
// # Thread Safety
//
// Record is NOT safe for concurrent use. Callers sharing a record, or its
// backing buffer, between goroutines must serialize access themselves.
package record
