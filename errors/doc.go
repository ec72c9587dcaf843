// Package errors provides structured error types for binrec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending field name, the Go and field type names,
// the offending value and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSet, errors.KindTypeMismatch).
//		Field("method").
//		GoType("int").
//		FieldType("cstring").
//		Detail("cstring fields take string values").
//		Build()
//
// Or use convenience constructors for the common failures:
//
//	err := errors.UnknownField(errors.PhaseGet, "nonexistent")
//	err := errors.MalformedDescriptor("int24 weird", "unknown type")
//
// All errors implement the standard error interface and support errors.Is/As.
// Callers that only care about the category use IsKind.
package errors
