package typedesc

import "testing"

// Mirrors the layout a 64-bit Itanium-ABI compiler assigns to a class
// with mixed member sizes and a trailing array.
func TestStructBuilder_MixedMemberLayout(t *testing.T) {
	intT := NewPrimitive("int", 4, FormatInt)
	charT := NewPrimitive("char", 1, FormatChar)
	floatT := NewPrimitive("float", 4, FormatFloat)
	boolT := NewPrimitive("bool", 1, FormatBool)
	doubleT := NewPrimitive("double", 8, FormatFloat)

	d := NewStruct("AccessTestClass").
		Field("public_member", intT, AccessPublic).
		Field("public_char", charT, AccessPublic).
		Field("protected_member", floatT, AccessProtected).
		Field("protected_flag", boolT, AccessProtected).
		Field("private_member", doubleT, AccessPrivate).
		Array("private_array", intT, 3, AccessPrivate).
		Build()

	wantOffsets := map[string]int{
		"public_member":    0,
		"public_char":      4,
		"protected_member": 8,
		"protected_flag":   12,
		"private_member":   16,
		"private_array[0]": 24,
		"private_array[1]": 28,
		"private_array[2]": 32,
	}
	for _, f := range d.Fields {
		want, ok := wantOffsets[f.Name]
		if !ok {
			t.Errorf("unexpected field %q", f.Name)
			continue
		}
		if f.Offset != want {
			t.Errorf("field %s offset = %d, want %d", f.Name, f.Offset, want)
		}
	}
	if len(d.Fields) != len(wantOffsets) {
		t.Errorf("field count = %d, want %d", len(d.Fields), len(wantOffsets))
	}
	if d.Size != 40 {
		t.Errorf("size = %d, want 40", d.Size)
	}
	if d.Align != 8 {
		t.Errorf("align = %d, want 8", d.Align)
	}
}

func TestStructBuilder_BasePlacement(t *testing.T) {
	intT := NewPrimitive("int", 4, FormatInt)
	charT := NewPrimitive("char", 1, FormatChar)
	floatT := NewPrimitive("float", 4, FormatFloat)
	doubleT := NewPrimitive("double", 8, FormatFloat)

	base := NewStruct("AccessTestClass").
		Field("public_member", intT, AccessPublic).
		Field("public_char", charT, AccessPublic).
		Field("protected_member", floatT, AccessProtected).
		Field("private_member", doubleT, AccessPrivate).
		Build()

	derived := NewStruct("DerivedClass").
		Base(base, AccessPublic).
		Field("derived_public", intT, AccessPublic).
		Field("derived_protected", charT, AccessProtected).
		Field("derived_private", floatT, AccessPrivate).
		Build()

	if len(derived.Bases) != 1 || derived.Bases[0].Offset != 0 {
		t.Fatalf("base offset = %v, want single base at 0", derived.Bases)
	}
	if derived.Fields[0].Offset != base.Size {
		t.Errorf("first own field offset = %d, want %d (past base)", derived.Fields[0].Offset, base.Size)
	}
}

func TestStructBuilder_TwoBases(t *testing.T) {
	intT := NewPrimitive("int", 4, FormatInt)
	doubleT := NewPrimitive("double", 8, FormatFloat)

	first := NewStruct("First").Field("a", intT, AccessPublic).Build()
	second := NewStruct("Second").Field("b", doubleT, AccessPublic).Build()

	d := NewStruct("Multi").
		Base(first, AccessPublic).
		Base(second, AccessProtected).
		Field("own", intT, AccessPublic).
		Build()

	if d.Bases[0].Offset != 0 {
		t.Errorf("first base offset = %d, want 0", d.Bases[0].Offset)
	}
	// Second base needs 8-byte alignment, so it lands at 8 past the
	// 4-byte first base.
	if d.Bases[1].Offset != 8 {
		t.Errorf("second base offset = %d, want 8", d.Bases[1].Offset)
	}
	if d.Fields[0].Offset != 16 {
		t.Errorf("own field offset = %d, want 16", d.Fields[0].Offset)
	}
}

func TestStructBuilder_VTableGap(t *testing.T) {
	intT := NewPrimitive("int", 4, FormatInt)
	charT := NewPrimitive("char", 1, FormatChar)

	d := NewStruct("BaseStruct<int>").
		WithVTable().
		Field("base_value", intT, AccessPublic).
		Field("base_char", charT, AccessPublic).
		Build()

	if d.Fields[0].Offset != 8 {
		t.Errorf("first field offset = %d, want 8 (behind vtable pointer)", d.Fields[0].Offset)
	}
	if d.Fields[1].Offset != 12 {
		t.Errorf("second field offset = %d, want 12", d.Fields[1].Offset)
	}
	if d.Size != 16 {
		t.Errorf("size = %d, want 16", d.Size)
	}
}

func TestStructBuilder_EmptyStructHasSizeOne(t *testing.T) {
	d := NewStruct("Empty").Build()
	if d.Size != 1 {
		t.Errorf("empty struct size = %d, want 1", d.Size)
	}
}

func TestStructBuilder_ExplicitOffsets(t *testing.T) {
	v := NewArbitraryInt("v", 7, false)
	d := NewStruct("Packed").
		WithVTable().
		FieldAt("m_val", 8, v, AccessProtected).
		Build()

	if d.Fields[0].Offset != 8 {
		t.Errorf("explicit offset = %d, want 8", d.Fields[0].Offset)
	}
	if d.Size != 16 {
		t.Errorf("size = %d, want 16 (padded to pointer alignment)", d.Size)
	}
}

func TestValidate(t *testing.T) {
	intT := NewPrimitive("int", 4, FormatInt)

	good := NewStruct("Good").Field("x", intT, AccessPublic).Build()
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	overrun := &Descriptor{
		Name: "Overrun", Kind: KindStruct, Size: 2,
		Fields: []Field{{Name: "x", Offset: 0, Access: AccessPublic, Type: intT}},
	}
	if err := overrun.Validate(); err == nil {
		t.Error("Validate() = nil for field overrunning size, want error")
	}

	zeroBits := &Descriptor{Name: "bad", Kind: KindArbitraryInt}
	if err := zeroBits.Validate(); err == nil {
		t.Error("Validate() = nil for zero-width arbitrary int, want error")
	}
}

func TestAccessRestrict(t *testing.T) {
	tests := []struct {
		a, b, want Access
	}{
		{AccessPublic, AccessPublic, AccessPublic},
		{AccessPublic, AccessProtected, AccessProtected},
		{AccessProtected, AccessPublic, AccessProtected},
		{AccessPublic, AccessPrivate, AccessPrivate},
		{AccessPrivate, AccessPublic, AccessPrivate},
		{AccessProtected, AccessPrivate, AccessPrivate},
	}
	for _, tt := range tests {
		if got := tt.a.Restrict(tt.b); got != tt.want {
			t.Errorf("%v.Restrict(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEnumName(t *testing.T) {
	d := NewEnum("State", 4, true, []EnumValue{
		{Value: 0, Name: "STATE_IDLE"},
		{Value: 10, Name: "STATE_PROCESSING"},
		{Value: 30, Name: "STATE_SHUTDOWN"},
	})

	if name, ok := d.EnumName(10); !ok || name != "STATE_PROCESSING" {
		t.Errorf("EnumName(10) = %q, %v, want STATE_PROCESSING, true", name, ok)
	}
	// Sparse gaps are legal, not an error.
	if _, ok := d.EnumName(20); ok {
		t.Error("EnumName(20) = ok for unmapped value, want miss")
	}
}
