package record

import (
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/wippyai/binrec/errors"
)

// RenderMode selects the textual rendering of a record.
type RenderMode string

const (
	RenderHex    RenderMode = "hex"
	RenderBinary RenderMode = "binary"
)

// Len returns the record size in bytes.
func (r *Record) Len() int {
	return len(r.buf)
}

// ForEachByte calls visit once per byte in ascending index order.
func (r *Record) ForEachByte(visit func(b byte, i int)) {
	for i, b := range r.buf {
		visit(b, i)
	}
}

// Render returns every byte as two lowercase hex digits (RenderHex) or eight
// binary digits (RenderBinary), concatenated in byte order.
func (r *Record) Render(mode RenderMode) (string, error) {
	switch mode {
	case RenderHex:
		return hex.EncodeToString(r.buf), nil
	case RenderBinary:
		out := make([]byte, 0, len(r.buf)*8)
		for _, b := range r.buf {
			s := strconv.FormatUint(uint64(b), 2)
			for i := len(s); i < 8; i++ {
				out = append(out, '0')
			}
			out = append(out, s...)
		}
		return string(out), nil
	default:
		return "", errors.UnknownRenderMode(string(mode))
	}
}

// Sum64 returns the xxhash64 digest of the raw record bytes, including any
// stale bytes after cstring terminators.
func (r *Record) Sum64() uint64 {
	return xxhash.Sum64(r.buf)
}
