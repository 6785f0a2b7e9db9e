package inspect

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/remora-debug/remora/pkg/typedesc"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestRegistry_RegisterAndDescribe(t *testing.T) {
	r := NewRegistry(testLogger())

	d := typedesc.NewStruct("Point").
		Field("x", typedesc.NewPrimitive("int", 4, typedesc.FormatInt), typedesc.AccessPublic).
		Build()
	if err := r.Register(d); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := r.DescribeType("Point")
	if err != nil {
		t.Fatalf("DescribeType() error = %v", err)
	}
	if got != d {
		t.Error("DescribeType returned a different descriptor")
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	r := NewRegistry(testLogger())

	_, err := r.DescribeType("NoSuchThing")
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("DescribeType() error = %v, want ErrUnknownType", err)
	}
}

func TestRegistry_RejectsInvalidDescriptor(t *testing.T) {
	r := NewRegistry(testLogger())

	bad := &typedesc.Descriptor{Name: "bad", Kind: typedesc.KindArbitraryInt}
	if err := r.Register(bad); err == nil {
		t.Error("Register() accepted a zero-width arbitrary int")
	}
	if err := r.Register(nil); err == nil {
		t.Error("Register(nil) succeeded")
	}
}

func TestRegistry_QualifiedNameFallbacks(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.RegisterBuiltins(); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}

	// Qualified registration answers to the bare name.
	d, err := r.DescribeType("sc_severity")
	if err != nil {
		t.Fatalf("DescribeType(sc_severity) error = %v", err)
	}
	if d.Name != "sc_core::sc_severity" {
		t.Errorf("resolved %q, want sc_core::sc_severity", d.Name)
	}

	// Bare registration answers to a qualified query.
	user := typedesc.NewEnum("Color", 4, true, []typedesc.EnumValue{{Value: 0, Name: "RED"}})
	if err := r.Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	d, err = r.DescribeType("demo::Color")
	if err != nil {
		t.Fatalf("DescribeType(demo::Color) error = %v", err)
	}
	if d.Name != "Color" {
		t.Errorf("resolved %q, want Color", d.Name)
	}
}

func TestRegistry_SynthesizesScTypes(t *testing.T) {
	r := NewRegistry(testLogger())

	first, err := r.DescribeType("sc_uint<8>")
	if err != nil {
		t.Fatalf("DescribeType(sc_uint<8>) error = %v", err)
	}
	if first.Display != typedesc.DisplaySummary || first.Size != 16 {
		t.Errorf("synthesized descriptor wrong: display=%v size=%d", first.Display, first.Size)
	}

	second, err := r.DescribeType("sc_uint<8>")
	if err != nil {
		t.Fatalf("second DescribeType error = %v", err)
	}
	// Cache hands every caller the same identity, so fingerprint-keyed
	// caches downstream see one entry per width.
	if first != second {
		t.Error("repeated synthesis returned distinct descriptors")
	}
}

func TestRegistry_BuiltinsCoverPrimitives(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.RegisterBuiltins(); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}

	for _, name := range []string{"int", "bool", "double", "unsigned long long", "uint32_t"} {
		if _, err := r.DescribeType(name); err != nil {
			t.Errorf("DescribeType(%q) error = %v", name, err)
		}
	}
}

func TestRegistry_EnumsListing(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.RegisterBuiltins(); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}

	enums := r.Enums()
	if len(enums) != 3 {
		t.Fatalf("Enums() returned %d descriptors, want 3", len(enums))
	}
	// Sorted, no alias duplicates.
	want := []string{"sc_core::sc_severity", "sc_core::sc_time_unit", "sc_dt::sc_logic_value_t"}
	for i, d := range enums {
		if d.Name != want[i] {
			t.Errorf("enum %d = %s, want %s", i, d.Name, want[i])
		}
	}
}

func TestRegistry_TypeNamesSkipsAliases(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.Register(typedesc.NewEnum("ns::E", 4, true, nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	names := r.TypeNames()
	if len(names) != 1 || names[0] != "ns::E" {
		t.Errorf("TypeNames() = %v, want [ns::E]", names)
	}
}
