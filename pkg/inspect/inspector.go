package inspect

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/remora-debug/remora/pkg/bitfield"
	"github.com/remora-debug/remora/pkg/render"
	"github.com/remora-debug/remora/pkg/typedesc"
)

// Replacement display strings for failed renders. Every failure mode
// stays distinguishable in the output; none aborts the caller.
const (
	TextUnknownType = "<unknown type>"
	TextTruncated   = "<error: truncated>"
	TextCyclic      = "<error: cyclic layout>"
	TextUnreadable  = "<error: unreadable memory>"
)

// defaultPlanCacheSize bounds the per-type walk cache.
const defaultPlanCacheSize = 128

// Config adjusts an Inspector.
type Config struct {
	// Render options applied to every render.
	Render render.Options
	// Order is the target byte order, little-endian when nil.
	Order binary.ByteOrder
	// Indent overrides the two-space indentation of nested blocks.
	Indent string
	// PlanCacheSize overrides the walk cache capacity when positive.
	PlanCacheSize int
}

// Inspector ties the metadata and memory capabilities together into the
// engine's end-to-end entry points. One Inspector serves concurrent
// callers; the only shared state is the read-through walk cache.
type Inspector struct {
	log   zerolog.Logger
	info  InfoProvider
	cfg   Config
	plans *lruCache[uint64, []typedesc.Slot]
}

// NewInspector creates an Inspector over the given metadata provider.
func NewInspector(logger zerolog.Logger, info InfoProvider, cfg Config) *Inspector {
	size := cfg.PlanCacheSize
	if size <= 0 {
		size = defaultPlanCacheSize
	}
	return &Inspector{
		log:   logger.With().Str("component", "inspector").Logger(),
		info:  info,
		cfg:   cfg,
		plans: newLRUCache[uint64, []typedesc.Slot](size),
	}
}

// DescribeType resolves a type name through the info provider.
func (ins *Inspector) DescribeType(name string) (*typedesc.Descriptor, error) {
	return ins.info.DescribeType(name)
}

// RenderValue reads sizeof(typeName) bytes at addr and renders them as
// a value tree. Unlike FormatValue it surfaces failures as errors, for
// callers that want to inspect the cause.
func (ins *Inspector) RenderValue(addr uint64, typeName string, mem MemoryReader) (*render.Node, error) {
	d, err := ins.info.DescribeType(typeName)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, d.Size)
	n, err := mem.ReadMemory(addr, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes at 0x%x: %v", ErrUnreadable, d.Size, addr, err)
	}

	// A short read renders against the prefix and fails as truncated,
	// which tells the user more than a flat read error.
	return ins.renderBytes(d, buf[:n])
}

// FormatValue is the end-to-end entry point: resolve the type, read the
// object image, render, serialize. It never fails; errors come back as
// replacement display strings so a bad variable cannot break the list
// it appears in.
func (ins *Inspector) FormatValue(addr uint64, typeName string, mem MemoryReader) string {
	node, err := ins.RenderValue(addr, typeName, mem)
	if err != nil {
		ins.log.Debug().Err(err).Str("type", typeName).Uint64("addr", addr).Msg("render failed")
		return displayError(err)
	}
	return ins.text(node)
}

// FormatBytes renders an already-captured object image, the pure-engine
// variant with no memory capability involved.
func (ins *Inspector) FormatBytes(typeName string, image []byte) string {
	d, err := ins.info.DescribeType(typeName)
	if err != nil {
		ins.log.Debug().Err(err).Str("type", typeName).Msg("describe failed")
		return displayError(err)
	}
	node, err := ins.renderBytes(d, image)
	if err != nil {
		ins.log.Debug().Err(err).Str("type", typeName).Msg("render failed")
		return displayError(err)
	}
	return ins.text(node)
}

func (ins *Inspector) text(node *render.Node) string {
	if ins.cfg.Indent != "" {
		return render.TextIndent(node, ins.cfg.Indent)
	}
	return render.Text(node)
}

func (ins *Inspector) renderBytes(d *typedesc.Descriptor, image []byte) (*render.Node, error) {
	inst := render.Instance{Bytes: image, Type: d, Order: ins.cfg.Order}

	if d.Kind != typedesc.KindStruct || d.Display == typedesc.DisplaySummary {
		return render.RenderSlotsWith(inst, nil, ins.cfg.Render)
	}

	key := typedesc.Fingerprint(d)
	slots, ok := ins.plans.Get(key)
	if !ok {
		var err error
		slots, err = typedesc.Walk(d)
		if err != nil {
			return nil, err
		}
		slots = ins.plans.Put(key, slots)
	}
	return render.RenderSlotsWith(inst, slots, ins.cfg.Render)
}

// displayError maps an engine error onto its replacement display
// string.
func displayError(err error) string {
	switch {
	case errors.Is(err, ErrUnknownType):
		return TextUnknownType
	case errors.Is(err, ErrUnreadable):
		return TextUnreadable
	case errors.Is(err, bitfield.ErrShortBuffer):
		return TextTruncated
	case errors.Is(err, typedesc.ErrCyclicLayout):
		return TextCyclic
	default:
		return fmt.Sprintf("<error: %v>", err)
	}
}
