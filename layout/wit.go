package layout

import (
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/binrec/errors"
)

// WIT describes the layout as a WIT record so component-model guests can
// mirror it. Integer fields map to u8/u16/u32 and cstring fields to string;
// field names are converted to kebab-case. Names that do not form a valid WIT
// label, or that collide once kebab-cased, are rejected.
func (l *Layout) WIT(name string) (*wit.TypeDef, error) {
	recordName := KebabName(name)
	if !validLabel(recordName) {
		return nil, errors.New(errors.PhaseRender, errors.KindInvalidInput).
			Value(name).
			Detail("record name %q is not a valid WIT label", name).
			Build()
	}

	fields := make([]wit.Field, 0, len(l.entries))
	owner := make(map[string]string, len(l.entries))
	for _, e := range l.entries {
		label := KebabName(e.Name)
		if !validLabel(label) {
			return nil, errors.New(errors.PhaseRender, errors.KindInvalidInput).
				Field(e.Name).
				Value(label).
				Detail("field %q is not a valid WIT label", e.Name).
				Build()
		}
		if prev, dup := owner[label]; dup {
			return nil, errors.New(errors.PhaseRender, errors.KindInvalidInput).
				Field(e.Name).
				Value(label).
				Detail("fields %q and %q both map to WIT label %q", prev, e.Name, label).
				Build()
		}
		owner[label] = e.Name
		fields = append(fields, wit.Field{
			Name: label,
			Type: witType(e.Kind),
		})
	}

	return &wit.TypeDef{
		Name: &recordName,
		Kind: &wit.Record{Fields: fields},
	}, nil
}

func witType(k Kind) wit.Type {
	switch k {
	case KindUint8:
		return wit.U8{}
	case KindUint16:
		return wit.U16{}
	case KindUint32:
		return wit.U32{}
	default:
		return wit.String{}
	}
}

// KebabName converts an identifier such as "packetId", "HTTPCode" or
// "body_type" to kebab-case ("packet-id", "http-code", "body-type").
func KebabName(s string) string {
	runes := []rune(s)
	var b strings.Builder
	hyphen := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
			b.WriteByte('-')
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			hyphen()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					hyphen()
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// validLabel reports whether s is a lower-case WIT label: hyphen-separated
// words, each starting with a letter.
func validLabel(s string) bool {
	if s == "" {
		return false
	}
	for _, word := range strings.Split(s, "-") {
		if word == "" || word[0] < 'a' || word[0] > 'z' {
			return false
		}
		for i := 1; i < len(word); i++ {
			c := word[i]
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
				return false
			}
		}
	}
	return true
}
