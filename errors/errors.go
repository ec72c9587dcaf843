package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // descriptor parsing and offset assignment
	PhaseBind    Phase = "bind"    // buffer allocation or wrapping
	PhaseGet     Phase = "get"     // field reads
	PhaseSet     Phase = "set"     // field writes
	PhaseRender  Phase = "render"  // hex/binary rendering and WIT export
	PhaseConfig  Phase = "config"  // layout file loading
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedDescriptor Kind = "malformed_descriptor"
	KindDuplicateField      Kind = "duplicate_field"
	KindUnknownField        Kind = "unknown_field"
	KindUnknownRenderMode   Kind = "unknown_render_mode"
	KindBufferSizeMismatch  Kind = "buffer_size_mismatch"
	KindTypeMismatch        Kind = "type_mismatch"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindInvalidInput        Kind = "invalid_input"
)

// Error is the structured error type used throughout binrec
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Field     string
	GoType    string
	FieldType string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
	}

	if e.GoType != "" || e.FieldType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.FieldType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", field type ")
			b.WriteString(e.FieldType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("field type ")
			b.WriteString(e.FieldType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.FieldType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err, or any error it wraps, is an *Error of the given kind
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Field sets the field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// FieldType sets the record field type name
func (b *Builder) FieldType(t string) *Builder {
	b.err.FieldType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedDescriptor creates an error for a descriptor that does not match the grammar
func MalformedDescriptor(descriptor, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindMalformedDescriptor,
		Value:  descriptor,
		Detail: fmt.Sprintf("%q: %s", descriptor, detail),
	}
}

// DuplicateField creates an error for a field name declared twice in one layout
func DuplicateField(name string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindDuplicateField,
		Field:  name,
		Detail: fmt.Sprintf("field %q declared more than once", name),
	}
}

// UnknownField creates an error for a field name absent from the layout
func UnknownField(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownField,
		Field:  name,
		Detail: fmt.Sprintf("unknown field %q", name),
	}
}

// UnknownRenderMode creates an error for an unsupported render mode
func UnknownRenderMode(mode string) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindUnknownRenderMode,
		Value:  mode,
		Detail: fmt.Sprintf("unknown render mode %q", mode),
	}
}

// BufferSizeMismatch creates an error for a supplied buffer smaller than the layout
func BufferSizeMismatch(have, want int) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindBufferSizeMismatch,
		Value:  have,
		Detail: fmt.Sprintf("buffer has %d bytes, layout needs %d", have, want),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, field, goType, fieldType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeMismatch,
		Field:     field,
		GoType:    goType,
		FieldType: fieldType,
	}
}

// OutOfBounds creates an error for a window that does not fit in the backing memory
func OutOfBounds(phase Phase, offset, length, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Value:  offset,
		Detail: fmt.Sprintf("range [%d, %d) exceeds memory size %d", offset, offset+length, size),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
