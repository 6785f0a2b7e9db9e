package integration

import (
	"encoding/binary"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/remora-debug/remora/internal/config"
	"github.com/remora-debug/remora/pkg/inspect"
	"github.com/remora-debug/remora/pkg/render"
	"github.com/remora-debug/remora/pkg/snapshot"
	"github.com/remora-debug/remora/pkg/typedesc"
)

// TestRenderEndToEnd tests the complete rendering pipeline:
// Image -> Builder -> snapshot file -> Registry -> Inspector -> text.
func TestRenderEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")

	// Capture side: lay out three objects and write the snapshot file.
	counter := snapshot.NewImage(16, binary.LittleEndian)
	if err := counter.PutBits(8, 12, false, big.NewInt(2000)); err != nil {
		t.Fatalf("Failed to pack counter: %v", err)
	}
	delta := snapshot.NewImage(16, binary.LittleEndian)
	if err := delta.PutBits(8, 10, true, big.NewInt(-300)); err != nil {
		t.Fatalf("Failed to pack delta: %v", err)
	}

	status := typedesc.NewEnum("Status", 4, true, []typedesc.EnumValue{
		{Value: 0, Name: "STATUS_OK", Doc: "Device is healthy"},
		{Value: 1, Name: "STATUS_DEGRADED", Doc: "Device is running below capacity"},
		{Value: 2, Name: "STATUS_FAILED", Doc: "Device stopped responding"},
	})

	reg := inspect.NewRegistry(zerolog.Nop())
	if err := reg.RegisterBuiltins(); err != nil {
		t.Fatalf("Failed to register built-in types: %v", err)
	}
	intT, err := reg.DescribeType("int")
	if err != nil {
		t.Fatalf("Failed to describe int: %v", err)
	}

	// Device has a virtual method, so its members start after the
	// vtable pointer.
	device := typedesc.NewStruct("Device").
		WithVTable().
		Field("id", intT, typedesc.AccessPublic).
		Field("status", status, typedesc.AccessPrivate).
		Build()
	if err := reg.RegisterAll([]*typedesc.Descriptor{status, device}); err != nil {
		t.Fatalf("Failed to register device types: %v", err)
	}

	deviceImage := snapshot.NewImage(device.Size, binary.LittleEndian)
	if err := deviceImage.PutInt(8, 4, 7); err != nil {
		t.Fatalf("Failed to pack device id: %v", err)
	}
	if err := deviceImage.PutInt(12, 4, 2); err != nil {
		t.Fatalf("Failed to pack device status: %v", err)
	}

	b := snapshot.NewBuilder()
	if err := b.AddSegment(0x1000, counter.Bytes()); err != nil {
		t.Fatalf("Failed to add counter segment: %v", err)
	}
	if err := b.AddSegment(0x2000, delta.Bytes()); err != nil {
		t.Fatalf("Failed to add delta segment: %v", err)
	}
	if err := b.AddSegment(0x3000, deviceImage.Bytes()); err != nil {
		t.Fatalf("Failed to add device segment: %v", err)
	}
	b.AddVariable("counter", 0x1000, "sc_uint<12>").
		AddVariable("delta", 0x2000, "sc_int<10>").
		AddVariable("device", 0x3000, "Device")

	snap, err := b.Snapshot()
	if err != nil {
		t.Fatalf("Failed to build snapshot: %v", err)
	}
	if err := snapshot.Save(path, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	// Consumer side: load the file back and render every variable.
	loaded, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if len(loaded.Variables) != 3 {
		t.Fatalf("Loaded %d variables, want 3", len(loaded.Variables))
	}

	insp := inspect.NewInspector(zerolog.Nop(), reg, inspect.Config{
		Order:  loaded.Order(),
		Render: render.Options{EnumDocs: true},
	})

	if got := insp.FormatValue(0x1000, "sc_uint<12>", loaded); got != "sc_uint<12>(2000)" {
		t.Errorf("counter = %q, want sc_uint<12>(2000)", got)
	}
	if got := insp.FormatValue(0x2000, "sc_int<10>", loaded); got != "sc_int<10>(-300)" {
		t.Errorf("delta = %q, want sc_int<10>(-300)", got)
	}

	deviceText := insp.FormatValue(0x3000, "Device", loaded)
	if !strings.Contains(deviceText, "id = 7 [public]") {
		t.Errorf("device render missing id leaf:\n%s", deviceText)
	}
	if !strings.Contains(deviceText, "status = STATUS_FAILED(2) - Device stopped responding [private]") {
		t.Errorf("device render missing documented enum leaf:\n%s", deviceText)
	}

	// Addresses outside every segment degrade to the error text instead
	// of failing the whole render call.
	if got := insp.FormatValue(0x9000, "Device", loaded); got != inspect.TextUnreadable {
		t.Errorf("unmapped render = %q, want %q", got, inspect.TextUnreadable)
	}
}

// TestConfigEnumsEndToEnd tests that enum tables from a config file flow
// through the registry into rendered output.
func TestConfigEnumsEndToEnd(t *testing.T) {
	t.Setenv("REMORA_CONFIG", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Render.EnumDocs = true
	cfg.Enums = []config.EnumTable{{
		Name: "State",
		Values: []config.EnumEntry{
			{Name: "STATE_IDLE", Value: 0, Doc: "System is waiting for input"},
			{Name: "STATE_ERROR", Value: 20, Doc: "System encountered an error"},
		},
	}}
	if err := config.NewLoader().Save(cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := config.NewLoader().Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	descs, err := loaded.EnumDescriptors()
	if err != nil {
		t.Fatalf("Failed to build enum descriptors: %v", err)
	}

	reg := inspect.NewRegistry(zerolog.Nop())
	if err := reg.RegisterAll(descs); err != nil {
		t.Fatalf("Failed to register configured enums: %v", err)
	}

	im := snapshot.NewImage(4, loaded.Order())
	if err := im.PutInt(0, 4, 20); err != nil {
		t.Fatalf("Failed to pack enum value: %v", err)
	}

	insp := inspect.NewInspector(zerolog.Nop(), reg, inspect.Config{
		Order:  loaded.Order(),
		Render: render.Options{EnumDocs: loaded.Render.EnumDocs},
	})
	got := insp.FormatBytes("State", im.Bytes())
	if want := "STATE_ERROR(20) - System encountered an error"; got != want {
		t.Errorf("FormatBytes() = %q, want %q", got, want)
	}
}
