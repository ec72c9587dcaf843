package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/binrec/errors"
)

// Entry is the compiled position of one field within a record.
type Entry struct {
	Name   string
	Kind   Kind
	Offset uint32
	Length uint32 // element count; capacity for cstring fields
}

// Size returns the number of bytes the entry occupies.
func (e Entry) Size() uint32 {
	return e.Length * e.Kind.UnitSize()
}

// End returns the offset one past the entry's last byte.
func (e Entry) End() uint32 {
	return e.Offset + e.Size()
}

// Layout is an immutable offset table for a flat record.
type Layout struct {
	index   map[string]int
	entries []Entry
	size    uint32
}

// Compile parses descriptors in order and assigns offsets. The first
// malformed descriptor aborts compilation; no partial layout is returned.
func Compile(descriptors ...string) (*Layout, error) {
	ds := make([]Descriptor, 0, len(descriptors))
	for _, s := range descriptors {
		d, err := ParseDescriptor(s)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return build(ds)
}

// CompileDescriptors builds a layout from structured descriptors.
func CompileDescriptors(ds []Descriptor) (*Layout, error) {
	for _, d := range ds {
		if err := d.validate(d.String()); err != nil {
			return nil, err
		}
	}
	return build(ds)
}

func build(ds []Descriptor) (*Layout, error) {
	l := &Layout{
		index:   make(map[string]int, len(ds)),
		entries: make([]Entry, 0, len(ds)),
	}

	offset := uint64(0)
	for _, d := range ds {
		if _, exists := l.index[d.Name]; exists {
			return nil, errors.DuplicateField(d.Name)
		}

		end := offset + d.Footprint()
		if end > math.MaxUint32 {
			return nil, errors.MalformedDescriptor(d.String(), "record exceeds 4 GiB")
		}

		l.index[d.Name] = len(l.entries)
		l.entries = append(l.entries, Entry{
			Name:   d.Name,
			Kind:   d.Kind,
			Offset: uint32(offset),
			Length: d.Count,
		})
		offset = end
	}
	l.size = uint32(offset)

	Logger().Debug("layout compiled",
		zap.Int("fields", len(l.entries)),
		zap.Uint32("size", l.size),
	)
	return l, nil
}

// Size returns the total record size in bytes.
func (l *Layout) Size() uint32 {
	return l.size
}

// Len returns the number of fields.
func (l *Layout) Len() int {
	return len(l.entries)
}

// Lookup returns the entry for the named field.
func (l *Layout) Lookup(name string) (Entry, bool) {
	i, ok := l.index[name]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Entries returns the entries in declaration order. The slice is a copy.
func (l *Layout) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Descriptors renders the layout back into textual descriptors.
func (l *Layout) Descriptors() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = Descriptor{Name: e.Name, Kind: e.Kind, Count: e.Length}.String()
	}
	return out
}
