// Package inspect is the boundary between the formatting engine and a
// host debugging environment.
//
// The host supplies two capabilities: a MemoryReader that returns raw
// bytes for an address range, and an InfoProvider that maps type names
// to descriptors. The Inspector combines them into the end-to-end calls
// a debugger frontend needs:
//
//	ins := inspect.NewInspector(logger, registry, inspect.Config{})
//	text := ins.FormatValue(0x7ffe1000, "DerivedClass", mem)
//
// FormatValue never fails: every engine error is converted to a
// distinguishable display string ("<unknown type>", "<error: truncated>",
// "<error: cyclic layout>", "<error: unreadable memory>") so one bad
// variable cannot take down a locals view that is rendering dozens.
//
// The package also provides Registry, an InfoProvider backed by a name
// table with on-demand synthesis of hardware-modeling integer types and
// the stock SystemC enumerations.
package inspect
