package layout

// Kind is the closed set of field types a layout can hold.
type Kind uint8

const (
	KindUint8 Kind = iota
	KindUint16
	KindUint32
	KindCString
)

var kindNames = [...]string{
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindCString: "cstring",
}

var kindSizes = [...]uint32{
	KindUint8:   1,
	KindUint16:  2,
	KindUint32:  4,
	KindCString: 1,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// UnitSize returns the byte size of one element of the kind.
func (k Kind) UnitSize() uint32 {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}

func (k Kind) IsInteger() bool {
	return k <= KindUint32
}

// ParseKind maps a descriptor type keyword to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}
