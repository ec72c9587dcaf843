// Package binrec maps named, typed fields onto fixed-size byte buffers.
//
// A layout is declared as an ordered list of textual descriptors such as
// "uint16 packetId" or "cstring body[12]". Fields are packed back to back with
// no padding, and the resulting record gives typed access to each field by
// name while the raw bytes stay available for I/O.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	binrec/              Package documentation
//	├── layout/          Descriptor parsing, offset assignment, WIT export
//	├── record/          Buffer binding, typed accessors, hex/binary rendering
//	├── wasmmem/         Records bound to WebAssembly linear memory (wazero)
//	├── errors/          Structured error types for debugging
//	├── cmd/recordtool/  CLI for inspecting, encoding and editing records
//	└── examples/        Runnable usage examples
//
// # Quick Start
//
// Compile a layout and fill a record:
//
//	l, err := layout.Compile(
//	    "uint16 packetId",
//	    "cstring packetType[4]",
//	    "uint32 length",
//	    "cstring body[12]",
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := record.New(l, record.BigEndian)
//	_ = r.Set("packetId", 1)
//	_ = r.Set("packetType", "buy")
//	_ = r.Set("length", 13)
//	_ = r.Set("body", "hello")
//
//	hex, _ := r.Render(record.RenderHex)
//	fmt.Println(hex) // "0001627579000000000d68656c6c6f00000000000000"
//
// Decode bytes received from elsewhere:
//
//	r, err := record.Wrap(l, payload, record.BigEndian)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	body, _ := r.Text("body")
//
// # Field Types
//
//   - uint8, uint16, uint32: unsigned integers in the record's byte order
//   - cstring name[N]: N bytes holding at most N-1 Latin-1 characters and a
//     zero terminator
//
// Integer fields are scalar; only cstring takes a [N] capacity.
//
// # Thread Safety
//
// A compiled Layout is immutable and safe for concurrent use. Record is NOT
// thread-safe; callers sharing a record or its buffer must synchronize access.
package binrec
