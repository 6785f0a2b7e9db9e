package config

import (
	"encoding/binary"
	"testing"

	"github.com/remora-debug/remora/pkg/typedesc"
)

func TestEnumTable_Descriptor(t *testing.T) {
	table := EnumTable{
		Name: "State",
		Values: []EnumEntry{
			{Name: "STATE_IDLE", Value: 0, Doc: "System is idle"},
			{Name: "STATE_WAITING", Value: 10},
			{Name: "STATE_DONE", Value: 30},
		},
	}

	d, err := table.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if d.Kind != typedesc.KindEnum {
		t.Errorf("Kind = %v, want KindEnum", d.Kind)
	}
	if d.Size != 4 || d.Bits != 32 || !d.Signed {
		t.Errorf("got size=%d bits=%d signed=%v, want 4/32/true", d.Size, d.Bits, d.Signed)
	}
	if name, ok := d.EnumName(10); !ok || name != "STATE_WAITING" {
		t.Errorf("EnumName(10) = %q, %v", name, ok)
	}
	if doc := d.EnumDoc(0); doc != "System is idle" {
		t.Errorf("EnumDoc(0) = %q", doc)
	}
	if _, ok := d.EnumName(20); ok {
		t.Error("EnumName(20) resolved an undeclared value")
	}
}

func TestEnumTable_DescriptorSizeAndSign(t *testing.T) {
	table := EnumTable{
		Name:     "flags_t",
		Size:     1,
		Unsigned: true,
		Values:   []EnumEntry{{Name: "F_NONE", Value: 0}},
	}

	d, err := table.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if d.Size != 1 || d.Bits != 8 || d.Signed {
		t.Errorf("got size=%d bits=%d signed=%v, want 1/8/false", d.Size, d.Bits, d.Signed)
	}
}

func TestEnumTable_DescriptorRejects(t *testing.T) {
	tests := []struct {
		name  string
		table EnumTable
	}{
		{"missing name", EnumTable{Values: []EnumEntry{{Name: "A", Value: 0}}}},
		{"bad size", EnumTable{Name: "X", Size: 3, Values: []EnumEntry{{Name: "A", Value: 0}}}},
		{"no values", EnumTable{Name: "X"}},
		{"unnamed value", EnumTable{Name: "X", Values: []EnumEntry{{Value: 1}}}},
		{"duplicate value name", EnumTable{Name: "X", Values: []EnumEntry{
			{Name: "A", Value: 0},
			{Name: "A", Value: 1},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.table.Descriptor(); err == nil {
				t.Error("Descriptor() accepted a broken table")
			}
		})
	}
}

func TestConfig_EnumDescriptors(t *testing.T) {
	cfg := &Config{
		Enums: []EnumTable{
			{Name: "Color", Values: []EnumEntry{{Name: "RED", Value: 0}}},
			{Name: "State", Values: []EnumEntry{{Name: "STATE_IDLE", Value: 0}}},
		},
	}

	descs, err := cfg.EnumDescriptors()
	if err != nil {
		t.Fatalf("EnumDescriptors() error = %v", err)
	}
	if len(descs) != 2 || descs[0].Name != "Color" || descs[1].Name != "State" {
		t.Errorf("EnumDescriptors() = %v", descs)
	}

	cfg.Enums = append(cfg.Enums, EnumTable{Name: "Broken"})
	if _, err := cfg.EnumDescriptors(); err == nil {
		t.Error("EnumDescriptors() accepted a table without values")
	}
}

func TestConfig_Order(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Order() != binary.ByteOrder(binary.LittleEndian) {
		t.Error("default order is not little-endian")
	}
	cfg.Decode.ByteOrder = "big"
	if cfg.Order() != binary.ByteOrder(binary.BigEndian) {
		t.Error("big-endian order not honored")
	}
}
