package typedesc

import "fmt"

// PointerSize is the pointer width of inspected images. The engine
// targets LP64 targets, matching the layouts in examples/.
const PointerSize = 8

// StructBuilder assembles a struct descriptor, assigning member offsets
// the way a typical Itanium-ABI compiler lays out a plain record:
// members in declaration order, each placed at the next offset aligned
// to its type's alignment, struct alignment equal to the strictest
// member, total size padded to a multiple of that alignment.
//
// Explicit-offset variants bypass the allocator for layouts read from
// external metadata rather than computed.
type StructBuilder struct {
	d      *Descriptor
	cursor int
}

// NewStruct starts a builder for a struct type called name.
func NewStruct(name string) *StructBuilder {
	return &StructBuilder{d: &Descriptor{Name: name, Kind: KindStruct, Align: 1}}
}

// WithVTable reserves a pointer-sized slot at offset 0 for the virtual
// table pointer of a polymorphic class. Members declared afterwards
// start behind the pointer.
func (b *StructBuilder) WithVTable() *StructBuilder {
	if b.cursor < PointerSize {
		b.cursor = PointerSize
	}
	if b.d.Align < PointerSize {
		b.d.Align = PointerSize
	}
	return b
}

// Base appends a base class at the next aligned offset.
func (b *StructBuilder) Base(t *Descriptor, acc Access) *StructBuilder {
	return b.BaseAt(b.place(t), t, acc)
}

// BaseAt appends a base class at an explicit byte offset.
func (b *StructBuilder) BaseAt(offset int, t *Descriptor, acc Access) *StructBuilder {
	b.d.Bases = append(b.d.Bases, Base{Offset: offset, Access: acc, Type: t})
	b.reserve(offset, t)
	return b
}

// Field appends a named member at the next aligned offset.
func (b *StructBuilder) Field(name string, t *Descriptor, acc Access) *StructBuilder {
	return b.FieldAt(name, b.place(t), t, acc)
}

// FieldAt appends a named member at an explicit byte offset.
func (b *StructBuilder) FieldAt(name string, offset int, t *Descriptor, acc Access) *StructBuilder {
	b.d.Fields = append(b.d.Fields, Field{Name: name, Offset: offset, Access: acc, Type: t})
	b.reserve(offset, t)
	return b
}

// Array appends n consecutive elements as "name[0]" through "name[n-1]",
// strided like a C array of elem.
func (b *StructBuilder) Array(name string, elem *Descriptor, n int, acc Access) *StructBuilder {
	stride := alignUp(elem.Size, alignOf(elem))
	start := b.place(elem)
	for i := 0; i < n; i++ {
		b.FieldAt(fmt.Sprintf("%s[%d]", name, i), start+i*stride, elem, acc)
	}
	return b
}

// Summary marks the type for single-line "Name(value)" rendering.
func (b *StructBuilder) Summary() *StructBuilder {
	b.d.Display = DisplaySummary
	return b
}

// Build pads the size to the struct alignment and returns the finished
// descriptor. An empty struct still occupies one byte.
func (b *StructBuilder) Build() *Descriptor {
	size := b.cursor
	if size == 0 {
		size = 1
	}
	b.d.Size = alignUp(size, b.d.Align)
	return b.d
}

// place returns the next offset aligned for t.
func (b *StructBuilder) place(t *Descriptor) int {
	return alignUp(b.cursor, alignOf(t))
}

// reserve advances the cursor past a member and folds its alignment
// into the struct's.
func (b *StructBuilder) reserve(offset int, t *Descriptor) {
	if t == nil {
		return
	}
	if end := offset + t.Size; end > b.cursor {
		b.cursor = end
	}
	if a := alignOf(t); a > b.d.Align {
		b.d.Align = a
	}
}

func alignOf(d *Descriptor) int {
	if d == nil {
		return 1
	}
	if d.Align > 0 {
		return d.Align
	}
	if d.Size >= PointerSize {
		return PointerSize
	}
	if d.Size > 0 && isPowerOfTwo(d.Size) {
		return d.Size
	}
	return 1
}

func alignUp(value, alignment int) int {
	if alignment <= 1 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
