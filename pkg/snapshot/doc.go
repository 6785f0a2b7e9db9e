// Package snapshot captures raw memory images together with the
// variables that live in them, and persists both as a YAML document.
//
// A snapshot decouples the formatting engine from any live debugger: a
// capture taken once (from a stopped process, a core file, or a test
// fixture) can be re-rendered, diffed, and shared without the original
// target. Snapshot implements the engine's memory capability directly,
// so loading a file is all it takes to inspect its variables:
//
//	snap, _ := snapshot.Load("capture.yaml")
//	text := inspector.FormatValue(v.Address, v.TypeName, snap)
//
// Reads follow target semantics: a read crossing the end of a segment
// returns the available prefix, an unmapped address returns an error.
package snapshot
