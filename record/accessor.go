package record

import (
	"fmt"
	"strings"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
)

// Get returns the field value as uint8, uint16, uint32 or string depending on
// the field kind.
func (r *Record) Get(name string) (any, error) {
	e, err := r.entry(errors.PhaseGet, name)
	if err != nil {
		return nil, err
	}

	switch e.Kind {
	case layout.KindUint8:
		return r.buf[e.Offset], nil
	case layout.KindUint16:
		return r.order.binary().Uint16(r.buf[e.Offset:]), nil
	case layout.KindUint32:
		return r.order.binary().Uint32(r.buf[e.Offset:]), nil
	default:
		return r.readCString(e), nil
	}
}

// Set stores value into the field. Integer fields accept any Go integer type
// and keep only the low bits that fit the field width. CString fields accept
// strings and byte slices.
func (r *Record) Set(name string, value any) error {
	e, err := r.entry(errors.PhaseSet, name)
	if err != nil {
		return err
	}

	if e.Kind == layout.KindCString {
		switch v := value.(type) {
		case string:
			r.writeCString(e, v)
		case []byte:
			r.writeCBytes(e, v)
		default:
			return errors.TypeMismatch(errors.PhaseSet, name, fmt.Sprintf("%T", value), e.Kind.String())
		}
		return nil
	}

	u, ok := toUint64(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseSet, name, fmt.Sprintf("%T", value), e.Kind.String())
	}
	r.writeUint(e, u)
	return nil
}

// Uint returns an integer field widened to uint32.
func (r *Record) Uint(name string) (uint32, error) {
	e, err := r.entry(errors.PhaseGet, name)
	if err != nil {
		return 0, err
	}
	if !e.Kind.IsInteger() {
		return 0, errors.TypeMismatch(errors.PhaseGet, name, "uint32", e.Kind.String())
	}
	return r.readUint(e), nil
}

// SetUint stores v into an integer field, truncated to the field width.
func (r *Record) SetUint(name string, v uint32) error {
	e, err := r.entry(errors.PhaseSet, name)
	if err != nil {
		return err
	}
	if !e.Kind.IsInteger() {
		return errors.TypeMismatch(errors.PhaseSet, name, "uint32", e.Kind.String())
	}
	r.writeUint(e, uint64(v))
	return nil
}

// Text returns the text stored in a cstring field.
func (r *Record) Text(name string) (string, error) {
	e, err := r.entry(errors.PhaseGet, name)
	if err != nil {
		return "", err
	}
	if e.Kind != layout.KindCString {
		return "", errors.TypeMismatch(errors.PhaseGet, name, "string", e.Kind.String())
	}
	return r.readCString(e), nil
}

// SetText stores s into a cstring field, truncating to capacity-1 characters
// and writing a terminating zero byte.
func (r *Record) SetText(name string, s string) error {
	e, err := r.entry(errors.PhaseSet, name)
	if err != nil {
		return err
	}
	if e.Kind != layout.KindCString {
		return errors.TypeMismatch(errors.PhaseSet, name, "string", e.Kind.String())
	}
	r.writeCString(e, s)
	return nil
}

// Fields returns a snapshot of every field value keyed by name.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, r.layout.Len())
	for _, e := range r.layout.Entries() {
		v, _ := r.Get(e.Name)
		out[e.Name] = v
	}
	return out
}

func (r *Record) readUint(e layout.Entry) uint32 {
	switch e.Kind {
	case layout.KindUint8:
		return uint32(r.buf[e.Offset])
	case layout.KindUint16:
		return uint32(r.order.binary().Uint16(r.buf[e.Offset:]))
	default:
		return r.order.binary().Uint32(r.buf[e.Offset:])
	}
}

func (r *Record) writeUint(e layout.Entry, v uint64) {
	switch e.Kind {
	case layout.KindUint8:
		r.buf[e.Offset] = uint8(v)
	case layout.KindUint16:
		r.order.binary().PutUint16(r.buf[e.Offset:], uint16(v))
	case layout.KindUint32:
		r.order.binary().PutUint32(r.buf[e.Offset:], uint32(v))
	}
}

// readCString decodes bytes up to the first zero or the field capacity as
// Latin-1. It never reads past the field.
func (r *Record) readCString(e layout.Entry) string {
	field := r.buf[e.Offset:e.End()]

	var b strings.Builder
	b.Grow(len(field))
	for _, c := range field {
		if c == 0 {
			break
		}
		b.WriteRune(rune(c))
	}
	return b.String()
}

// writeCString stores at most capacity-1 characters, one byte per character
// (code points above 0xFF keep their low byte), followed by a zero byte.
// Bytes after the terminator are left as they were.
func (r *Record) writeCString(e layout.Entry, s string) {
	raw := make([]byte, 0, min(len(s), int(e.Length)))
	for _, c := range s {
		if len(raw) >= int(e.Length)-1 {
			break
		}
		raw = append(raw, byte(c))
	}
	r.writeCBytes(e, raw)
}

// writeCBytes copies raw bytes up to the first zero or capacity-1, then writes
// the terminator.
func (r *Record) writeCBytes(e layout.Entry, raw []byte) {
	limit := int(e.Length) - 1
	n := 0
	for n < limit && n < len(raw) && raw[n] != 0 {
		r.buf[int(e.Offset)+n] = raw[n]
		n++
	}
	r.buf[int(e.Offset)+n] = 0
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int8:
		return uint64(v), true
	case int16:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case int:
		return uint64(v), true
	default:
		return 0, false
	}
}
