package wasmmem

import (
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
	"github.com/wippyai/binrec/record"
)

// Bind wraps the window [offset, offset+l.Size()) of mem as a record.
func Bind(mem api.Memory, offset uint32, l *layout.Layout, order record.ByteOrder) (*record.Record, error) {
	view, err := window(mem, offset, l.Size())
	if err != nil {
		return nil, err
	}

	Logger().Debug("record bound to linear memory",
		zap.Uint32("offset", offset),
		zap.Uint32("size", l.Size()),
		zap.Stringer("order", order),
	)
	return record.Wrap(l, view, order)
}

// Load copies the window at offset into a new record.
func Load(mem api.Memory, offset uint32, l *layout.Layout, order record.ByteOrder) (*record.Record, error) {
	view, err := window(mem, offset, l.Size())
	if err != nil {
		return nil, err
	}

	r := record.New(l, order)
	copy(r.Bytes(), view)
	return r, nil
}

// Store copies the record bytes into mem at offset.
func Store(mem api.Memory, offset uint32, r *record.Record) error {
	if mem == nil {
		return errors.InvalidInput(errors.PhaseBind, "nil memory")
	}
	data := r.Bytes()
	if !mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseBind, uint64(offset), uint64(len(data)), uint64(mem.Size()))
	}

	Logger().Debug("record stored to linear memory",
		zap.Uint32("offset", offset),
		zap.Int("size", len(data)),
	)
	return nil
}

func window(mem api.Memory, offset, size uint32) ([]byte, error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "nil memory")
	}
	view, ok := mem.Read(offset, size)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseBind, uint64(offset), uint64(size), uint64(mem.Size()))
	}
	return view, nil
}
