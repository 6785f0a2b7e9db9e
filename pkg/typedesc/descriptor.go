package typedesc

import (
	"fmt"

	"github.com/remora-debug/remora/pkg/bitfield"
)

// Kind discriminates what a Descriptor describes.
type Kind int

const (
	// KindPrimitive is a fixed-width machine type (int, char, bool,
	// float, double).
	KindPrimitive Kind = iota
	// KindArbitraryInt is an integer with an explicit bit width that
	// need not match any machine width.
	KindArbitraryInt
	// KindStruct is a record with base classes and named fields.
	KindStruct
	// KindEnum is an integer type with symbolic names for some values.
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArbitraryInt:
		return "arbitrary-int"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Access is a C++-style access specifier. It is purely descriptive: the
// engine reads raw memory, so access controls rendering annotations only.
type Access int

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// Restrict returns the more restrictive of a and b. Chaining Restrict
// along an inheritance path yields the effective access of a member as
// seen from the most-derived type.
func (a Access) Restrict(b Access) Access {
	if b > a {
		return b
	}
	return a
}

// Format selects how a decoded primitive value is displayed.
type Format int

const (
	FormatInt Format = iota
	FormatUint
	FormatBool
	FormatChar
	FormatFloat
)

// Display selects how a struct value is rendered.
type Display int

const (
	// DisplayExpand renders a struct as a nested block of its bases
	// and fields.
	DisplayExpand Display = iota
	// DisplaySummary renders a struct as a single "Name(value)" line
	// built from its first arbitrary-width integer slot. Used for
	// hardware-modeling value objects whose internals are noise.
	DisplaySummary
)

// Base is one base-class subobject of a struct.
type Base struct {
	// Offset is the byte offset of the base subobject within the
	// enclosing instance.
	Offset int
	Access Access
	Type   *Descriptor
}

// Field is one named member of a struct.
type Field struct {
	Name   string
	Offset int
	Access Access
	Type   *Descriptor
}

// EnumValue maps one integer value to its symbolic name. Doc optionally
// carries a human-readable description shown in enum listings.
type EnumValue struct {
	Value int64
	Name  string
	Doc   string
}

// Descriptor is static metadata for one type. Which fields are
// meaningful depends on Kind:
//
//   - KindPrimitive: Size, Format, Signed
//   - KindArbitraryInt: Bits, Signed (Size is the storage size,
//     bitfield.ByteLen(Bits) unless wider storage is declared)
//   - KindStruct: Bases, Fields, Display, Align
//   - KindEnum: Bits, Signed, Values
//
// Descriptors are treated as immutable once built. Sharing one
// descriptor between several parents is fine; a descriptor reachable
// from itself is a layout cycle and rejected by Walk.
type Descriptor struct {
	Name string
	// Size is the total byte size of an instance, what sizeof would
	// report.
	Size int
	Kind Kind

	// Align is the byte alignment used by StructBuilder when placing
	// members. Zero means infer from Size.
	Align int

	Bits   uint
	Signed bool
	Format Format

	Bases   []Base
	Fields  []Field
	Display Display

	Values []EnumValue
}

// EnumName returns the symbolic name for v, if the enum declares one.
// Sparse and non-contiguous value sets are expected; a miss is not an
// error.
func (d *Descriptor) EnumName(v int64) (string, bool) {
	for _, ev := range d.Values {
		if ev.Value == v {
			return ev.Name, true
		}
	}
	return "", false
}

// EnumDoc returns the description attached to the name for v, if any.
func (d *Descriptor) EnumDoc(v int64) string {
	for _, ev := range d.Values {
		if ev.Value == v {
			return ev.Doc
		}
	}
	return ""
}

// Validate checks structural invariants that Walk and the renderer rely
// on. It does not follow nested descriptors recursively; Walk catches
// cycles and nil references on traversal.
func (d *Descriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("nil descriptor")
	}
	if d.Size < 0 {
		return fmt.Errorf("type %s: negative size %d", d.Name, d.Size)
	}
	switch d.Kind {
	case KindArbitraryInt, KindEnum:
		if d.Bits == 0 {
			return fmt.Errorf("type %s: %s needs a bit width of at least 1", d.Name, d.Kind)
		}
	case KindStruct:
		for _, b := range d.Bases {
			if b.Type == nil {
				return fmt.Errorf("type %s: base with nil type", d.Name)
			}
			if b.Offset < 0 || b.Offset+b.Type.Size > d.Size {
				return fmt.Errorf("type %s: base %s at offset %d overruns size %d",
					d.Name, b.Type.Name, b.Offset, d.Size)
			}
		}
		for _, f := range d.Fields {
			if f.Type == nil {
				return fmt.Errorf("type %s: field %s with nil type", d.Name, f.Name)
			}
			if f.Offset < 0 || f.Offset+f.Type.Size > d.Size {
				return fmt.Errorf("type %s: field %s at offset %d overruns size %d",
					d.Name, f.Name, f.Offset, d.Size)
			}
		}
	}
	return nil
}

// NewPrimitive returns a fixed-width machine type descriptor. Signedness
// follows the format: FormatInt and FormatChar decode as signed, the
// rest as unsigned bit patterns.
func NewPrimitive(name string, size int, format Format) *Descriptor {
	return &Descriptor{
		Name:   name,
		Size:   size,
		Align:  size,
		Kind:   KindPrimitive,
		Bits:   uint(size) * 8,
		Signed: format == FormatInt || format == FormatChar,
		Format: format,
	}
}

// NewArbitraryInt returns a descriptor for a bare width-bit integer
// occupying its minimal byte storage.
func NewArbitraryInt(name string, bits uint, signed bool) *Descriptor {
	return &Descriptor{
		Name:   name,
		Size:   bitfield.ByteLen(bits),
		Kind:   KindArbitraryInt,
		Bits:   bits,
		Signed: signed,
	}
}

// NewEnum returns an enum descriptor with the given underlying storage
// size and value names.
func NewEnum(name string, size int, signed bool, values []EnumValue) *Descriptor {
	return &Descriptor{
		Name:   name,
		Size:   size,
		Align:  size,
		Kind:   KindEnum,
		Bits:   uint(size) * 8,
		Signed: signed,
		Values: values,
	}
}
