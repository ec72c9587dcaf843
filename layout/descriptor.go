package layout

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/wippyai/binrec/errors"
)

var (
	descriptorPattern = regexp.MustCompile(`^(uint8|uint16|uint32|cstring) (\w+)(?:\[(\d+)\])?$`)
	namePattern       = regexp.MustCompile(`^\w+$`)
)

// Descriptor is the structured form of one field declaration.
type Descriptor struct {
	Name  string
	Kind  Kind
	Count uint32
}

// String renders the descriptor in its textual form. A count of 1 is omitted
// for integer fields.
func (d Descriptor) String() string {
	if d.Count == 1 && d.Kind.IsInteger() {
		return d.Kind.String() + " " + d.Name
	}
	return fmt.Sprintf("%s %s[%d]", d.Kind, d.Name, d.Count)
}

// Footprint returns the number of bytes the field occupies.
func (d Descriptor) Footprint() uint64 {
	return uint64(d.Count) * uint64(d.Kind.UnitSize())
}

// ParseDescriptor parses a single textual descriptor. The count defaults to 1
// when the bracket suffix is absent.
func ParseDescriptor(s string) (Descriptor, error) {
	m := descriptorPattern.FindStringSubmatch(s)
	if m == nil {
		return Descriptor{}, errors.MalformedDescriptor(s, "expected \"<uint8|uint16|uint32|cstring> <name>[count]\"")
	}

	kind, _ := ParseKind(m[1])
	d := Descriptor{Kind: kind, Name: m[2], Count: 1}

	if m[3] != "" {
		n, err := strconv.ParseUint(m[3], 10, 32)
		if err != nil {
			return Descriptor{}, errors.New(errors.PhaseCompile, errors.KindMalformedDescriptor).
				Field(d.Name).
				Value(s).
				Cause(err).
				Detail("%q: count %s out of range", s, m[3]).
				Build()
		}
		d.Count = uint32(n)
	}

	if err := d.validate(s); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// validate checks the constraints the grammar alone does not express.
func (d Descriptor) validate(source string) error {
	if !namePattern.MatchString(d.Name) {
		return errors.MalformedDescriptor(source, "field name must be a bare identifier")
	}
	if d.Kind > KindCString {
		return errors.MalformedDescriptor(source, "unknown field type")
	}
	if d.Count == 0 {
		return errors.MalformedDescriptor(source, "count must be at least 1")
	}
	// Integer accessors address a single element, so arrays would be unreachable.
	if d.Kind.IsInteger() && d.Count > 1 {
		return errors.MalformedDescriptor(source, "integer arrays are not supported")
	}
	if d.Footprint() > math.MaxUint32 {
		return errors.MalformedDescriptor(source, "field too large")
	}
	return nil
}
