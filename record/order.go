package record

import (
	"encoding/binary"
	"strings"

	"github.com/wippyai/binrec/errors"
)

// ByteOrder selects how multi-byte integer fields are stored.
// The zero value is BigEndian.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "little"
	}
	return "big"
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ParseByteOrder accepts "big", "be", "little" and "le" in any case.
// The empty string selects BigEndian.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "big", "be", "big-endian":
		return BigEndian, nil
	case "little", "le", "little-endian":
		return LittleEndian, nil
	default:
		return BigEndian, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(s).
			Detail("unknown byte order %q", s).
			Build()
	}
}
