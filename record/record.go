package record

import (
	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
)

// Record is a layout bound to a byte buffer of exactly Layout().Size() bytes.
type Record struct {
	layout *layout.Layout
	buf    []byte
	order  ByteOrder
}

// New allocates a zero-filled buffer sized to l.
func New(l *layout.Layout, order ByteOrder) *Record {
	return &Record{
		layout: l,
		buf:    make([]byte, l.Size()),
		order:  order,
	}
}

// Wrap binds l to buf without copying. A buffer longer than the layout is
// viewed through its first l.Size() bytes; a shorter one is rejected.
func Wrap(l *layout.Layout, buf []byte, order ByteOrder) (*Record, error) {
	size := int(l.Size())
	if len(buf) < size {
		return nil, errors.BufferSizeMismatch(len(buf), size)
	}
	return &Record{
		layout: l,
		buf:    buf[:size:size],
		order:  order,
	}, nil
}

// Layout returns the compiled layout the record was bound with.
func (r *Record) Layout() *layout.Layout {
	return r.layout
}

// Order returns the record's byte order.
func (r *Record) Order() ByteOrder {
	return r.order
}

// Bytes returns the live backing bytes. Writes to the returned slice are
// visible through the record and vice versa.
func (r *Record) Bytes() []byte {
	return r.buf
}

func (r *Record) entry(phase errors.Phase, name string) (layout.Entry, error) {
	e, ok := r.layout.Lookup(name)
	if !ok {
		return layout.Entry{}, errors.UnknownField(phase, name)
	}
	return e, nil
}
