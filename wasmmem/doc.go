// Package wasmmem binds binary records to WebAssembly linear memory.
//
// Bind returns a record whose buffer is a view of guest memory, so reads and
// writes go straight to the guest without copying. Load and Store copy a record
// in or out instead.
//
//	mod, _ := rt.Instantiate(ctx, wasmBytes)
//	r, err := wasmmem.Bind(mod.Memory(), ptr, l, record.LittleEndian)
//	_ = r.Set("statusCode", 200) // visible to the guest immediately
//
// A bound view is invalidated when the guest grows its memory; bind again
// after any call that may have grown it.
package wasmmem
