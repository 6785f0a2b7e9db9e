package typedesc

import (
	"regexp"
	"strconv"
)

// scTypePattern matches hardware-modeling integer type names as debuggers
// report them, with or without the sc_dt namespace qualifier.
var scTypePattern = regexp.MustCompile(`^(?:sc_dt::)?sc_(u?)int< *([0-9]+) *>$`)

// MaxScWidth is the widest sc_int/sc_uint template instantiation. Wider
// values use a different big-integer object layout that stores digits
// out of line, which a flat image read cannot follow.
const MaxScWidth = 64

// ParseScType recognizes names like "sc_uint<8>" or "sc_dt::sc_int<15>"
// and synthesizes the object layout those templates share: a virtual
// table pointer at offset 0 and the value word at offset 8, masked to
// the template width. The descriptor renders as a one-line summary,
// "sc_uint<8>(66)".
//
// Names that are not sc integer templates, or whose width falls outside
// [1, MaxScWidth], return ok == false.
func ParseScType(name string) (*Descriptor, bool) {
	m := scTypePattern.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}
	width, err := strconv.Atoi(m[2])
	if err != nil || width < 1 || width > MaxScWidth {
		return nil, false
	}
	signed := m[1] == ""

	value := NewArbitraryInt(name+"::value", uint(width), signed)
	return NewStruct(name).
		WithVTable().
		FieldAt("m_val", PointerSize, value, AccessProtected).
		Summary().
		Build(), true
}
