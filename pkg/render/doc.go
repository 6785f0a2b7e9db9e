// Package render turns a raw object image plus its type descriptor into
// a human-readable value tree.
//
// The renderer walks the type's layout, slices each slot's bytes out of
// the image, decodes leaves with pkg/bitfield, resolves enum names, and
// produces a Node tree that Text serializes one line per slot with
// access-specifier tags:
//
//	DerivedClass {
//	  AccessTestClass [public] {
//	    public_member = 66 [public]
//	    private_member = -42 [private]
//	  }
//	  derived_public = 10 [public]
//	}
//
// Rendering performs no memory I/O and keeps no state between calls:
// all bytes arrive up front in the Instance, so the same inputs always
// produce the same tree and concurrent renders never interfere.
package render
