// Package layout compiles field descriptors into a binary record layout.
//
// A descriptor names one field of a flat record:
//
//	<type> <name>[<count>]
//
// where type is one of uint8, uint16, uint32 or cstring, name is a bare
// identifier, and the optional count is a decimal element count. For cstring
// fields the count is the capacity including the terminating zero byte.
//
// # Layout Rules
//
//   - Fields are placed in declaration order with no padding or alignment.
//   - Each field occupies count × unit size bytes (uint8=1, uint16=2, uint32=4, cstring=1).
//   - The record size is the offset a hypothetical next field would get.
//
// # Usage
//
//	l, err := layout.Compile(
//		"uint16 packetId",
//		"uint32 statusCode",
//		"cstring method[11]",
//	)
//	// l.Size() == 17
//	e, _ := l.Lookup("method") // e.Offset == 6, e.Length == 11
//
// A Layout is immutable once compiled and safe to share between goroutines.
package layout
