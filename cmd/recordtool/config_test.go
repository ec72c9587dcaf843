package main

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
	"github.com/wippyai/binrec/record"
)

const orderPacketYAML = `name: order-packet
endian: big
fields:
  - uint16 packetId
  - cstring packetType[4]
  - uint32 length
  - cstring body[12]
values:
  packetId: 1
  packetType: buy
  length: 13
  body: hello
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadLayoutFile(t *testing.T) {
	f, err := loadLayoutFile(writeFile(t, "order.yaml", orderPacketYAML))
	if err != nil {
		t.Fatalf("loadLayoutFile: %v", err)
	}
	if f.Name != "order-packet" {
		t.Errorf("name = %q", f.Name)
	}
	if len(f.Fields) != 4 || f.Fields[1] != "cstring packetType[4]" {
		t.Errorf("fields = %v", f.Fields)
	}

	l, order, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if l.Size() != 22 {
		t.Errorf("size = %d, want 22", l.Size())
	}
	if order != record.BigEndian {
		t.Errorf("order = %v", order)
	}
}

func TestLoadLayoutFileDefaults(t *testing.T) {
	path := writeFile(t, "header.json", `{"fields": ["uint8 version", "uint8 flags"]}`)
	f, err := loadLayoutFile(path)
	if err != nil {
		t.Fatalf("loadLayoutFile: %v", err)
	}
	if f.Name != "header" {
		t.Errorf("name = %q, want file stem", f.Name)
	}
	if f.Endian != "big" {
		t.Errorf("endian = %q, want big", f.Endian)
	}
}

func TestLoadLayoutFileEnvOverride(t *testing.T) {
	t.Setenv("BINREC_ENDIAN", "little")
	f, err := loadLayoutFile(writeFile(t, "order.yaml", orderPacketYAML))
	if err != nil {
		t.Fatalf("loadLayoutFile: %v", err)
	}
	_, order, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if order != record.LittleEndian {
		t.Errorf("order = %v, want little", order)
	}
}

func TestLoadLayoutFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		phase   errors.Phase
		kind    errors.Kind
		compile bool
	}{
		{
			name:  "missing file",
			path:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			phase: errors.PhaseConfig,
			kind:  errors.KindInvalidInput,
		},
		{
			name:  "no fields",
			path:  func(t *testing.T) string { return writeFile(t, "empty.yaml", "name: empty\n") },
			phase: errors.PhaseConfig,
			kind:  errors.KindInvalidInput,
		},
		{
			name:    "bad endian",
			path:    func(t *testing.T) string { return writeFile(t, "e.yaml", "endian: middle\nfields: [uint8 a]\n") },
			phase:   errors.PhaseConfig,
			kind:    errors.KindInvalidInput,
			compile: true,
		},
		{
			name:    "names differing only in case",
			path:    func(t *testing.T) string { return writeFile(t, "c.yaml", "fields: [uint8 id, uint16 ID]\n") },
			phase:   errors.PhaseConfig,
			kind:    errors.KindInvalidInput,
			compile: true,
		},
		{
			name:    "bad descriptor",
			path:    func(t *testing.T) string { return writeFile(t, "d.yaml", "fields: [int8 a]\n") },
			phase:   errors.PhaseCompile,
			kind:    errors.KindMalformedDescriptor,
			compile: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := loadLayoutFile(tt.path(t))
			if tt.compile {
				if err != nil {
					t.Fatalf("loadLayoutFile: %v", err)
				}
				_, _, err = f.build()
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("error kind: got %v, want %s", err, tt.kind)
			}
			var e *errors.Error
			if stderrors.As(err, &e) && e.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", e.Phase, tt.phase)
			}
		})
	}
}

func TestResolveField(t *testing.T) {
	l, err := layout.Compile("uint16 packetId", "cstring body[4]")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{key: "packetId", want: "packetId", ok: true},
		{key: "packetid", want: "packetId", ok: true},
		{key: "BODY", want: "body", ok: true},
		{key: "missing", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e, ok := resolveField(l, tt.key)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && e.Name != tt.want {
				t.Errorf("name = %q, want %q", e.Name, tt.want)
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	l, err := layout.Compile("uint32 n", "cstring s[8]")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := l.Lookup("n")
	s, _ := l.Lookup("s")

	tests := []struct {
		name  string
		entry layout.Entry
		in    any
		want  any
		fails bool
	}{
		{name: "int", entry: n, in: 42, want: uint64(42)},
		{name: "decimal string", entry: n, in: "42", want: uint64(42)},
		{name: "hex string", entry: n, in: "0x10", want: uint64(16)},
		{name: "bool", entry: n, in: true, want: uint64(1)},
		{name: "garbage", entry: n, in: "abc", fails: true},
		{name: "string", entry: s, in: "hi", want: "hi"},
		{name: "number as text", entry: s, in: 7, want: "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertValue(tt.entry, tt.in)
			if tt.fails {
				if !errors.IsKind(err, errors.KindTypeMismatch) {
					t.Fatalf("expected type mismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("convertValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestApplyValues(t *testing.T) {
	l, err := layout.Compile("uint16 packetId", "cstring body[4]")
	if err != nil {
		t.Fatal(err)
	}
	r := record.New(l, record.BigEndian)

	if err := applyValues(r, map[string]any{"packetid": 258, "body": "abcdef"}); err != nil {
		t.Fatalf("applyValues: %v", err)
	}
	if got, _ := r.Uint("packetId"); got != 258 {
		t.Errorf("packetId = %d", got)
	}
	if got, _ := r.Text("body"); got != "abc" {
		t.Errorf("body = %q", got)
	}

	err = applyValues(r, map[string]any{"nope": 1})
	if !errors.IsKind(err, errors.KindUnknownField) {
		t.Errorf("expected unknown field, got %v", err)
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"a=1", "b=x=y", "c="})
	if err != nil {
		t.Fatalf("parseAssignments: %v", err)
	}
	want := map[string]any{"a": "1", "b": "x=y", "c": ""}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %#v, want %#v", k, got[k], v)
		}
	}

	for _, bad := range []string{"novalue", "=1"} {
		if _, err := parseAssignments([]string{bad}); !errors.IsKind(err, errors.KindInvalidInput) {
			t.Errorf("%q: expected invalid input, got %v", bad, err)
		}
	}
}
