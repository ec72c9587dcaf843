package main

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
	"github.com/wippyai/binrec/record"
)

// layoutFile is the on-disk description of a record layout.
type layoutFile struct {
	Values map[string]any `mapstructure:"values"`
	Name   string         `mapstructure:"name"`
	Endian string         `mapstructure:"endian"`
	Fields []string       `mapstructure:"fields"`
}

// loadLayoutFile reads a YAML, JSON or TOML layout file. BINREC_NAME and
// BINREC_ENDIAN override the file.
func loadLayoutFile(path string) (*layoutFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("BINREC")
	v.AutomaticEnv()
	v.SetDefault("endian", "big")
	v.SetDefault("name", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read layout file "+path)
	}

	var f layoutFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode layout file "+path)
	}
	if len(f.Fields) == 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "layout file "+path+" declares no fields")
	}
	return &f, nil
}

// build compiles the layout and resolves the byte order. Config keys are
// case-folded, so field names differing only in case are rejected here even
// though the layout compiler accepts them.
func (f *layoutFile) build() (*layout.Layout, record.ByteOrder, error) {
	order, err := record.ParseByteOrder(f.Endian)
	if err != nil {
		return nil, record.BigEndian, err
	}
	l, err := layout.Compile(f.Fields...)
	if err != nil {
		return nil, record.BigEndian, err
	}

	folded := make(map[string]string, l.Len())
	for _, e := range l.Entries() {
		key := strings.ToLower(e.Name)
		if prev, dup := folded[key]; dup {
			return nil, record.BigEndian, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Field(e.Name).
				Detail("fields %q and %q differ only in case", prev, e.Name).
				Build()
		}
		folded[key] = e.Name
	}
	return l, order, nil
}

// resolveField finds the entry for key. Config keys arrive lower-cased, so an
// exact match is tried first and a case-insensitive one second; build
// guarantees the second is unambiguous.
func resolveField(l *layout.Layout, key string) (layout.Entry, bool) {
	if e, ok := l.Lookup(key); ok {
		return e, true
	}
	for _, e := range l.Entries() {
		if strings.EqualFold(e.Name, key) {
			return e, true
		}
	}
	return layout.Entry{}, false
}

// convertValue coerces a loosely typed value (from YAML, flags or the editor)
// into the Go type the field's setter expects.
func convertValue(e layout.Entry, raw any) (any, error) {
	if e.Kind == layout.KindCString {
		var s string
		if err := mapstructure.WeakDecode(raw, &s); err != nil {
			return nil, errors.New(errors.PhaseSet, errors.KindTypeMismatch).
				Field(e.Name).
				FieldType(e.Kind.String()).
				Value(raw).
				Cause(err).
				Build()
		}
		return s, nil
	}

	var u uint64
	if err := mapstructure.WeakDecode(raw, &u); err != nil {
		return nil, errors.New(errors.PhaseSet, errors.KindTypeMismatch).
			Field(e.Name).
			FieldType(e.Kind.String()).
			Value(raw).
			Cause(err).
			Build()
	}
	return u, nil
}

// applyValues sets every value on r in key order.
func applyValues(r *record.Record, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		e, ok := resolveField(r.Layout(), k)
		if !ok {
			return errors.UnknownField(errors.PhaseSet, k)
		}
		v, err := convertValue(e, values[k])
		if err != nil {
			return err
		}
		if err := r.Set(e.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// parseAssignments turns "name=value" pairs into a values map.
func parseAssignments(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, errors.InvalidInput(errors.PhaseConfig, "expected name=value, got "+p)
		}
		values[name] = value
	}
	return values, nil
}
