package render

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/remora-debug/remora/pkg/bitfield"
	"github.com/remora-debug/remora/pkg/typedesc"
)

// Instance pairs a raw object image with its declared type. The buffer
// must hold at least Type.Size bytes; extra trailing bytes are ignored.
type Instance struct {
	Bytes []byte
	Type  *typedesc.Descriptor
	// Order is the image byte order, little-endian when nil.
	Order binary.ByteOrder
}

// Node is one entry of the rendered value tree. Interior nodes carry
// children and no value; leaves carry a value and no children.
type Node struct {
	Label    string
	Access   typedesc.Access
	Value    string
	IsBase   bool
	Children []*Node
}

// Options adjust presentation details without changing the tree shape.
type Options struct {
	// EnumDocs appends the description attached to a named enum value,
	// as "STATE_IDLE(0) - System is waiting for input".
	EnumDocs bool
}

// Render builds the value tree for inst with default options.
func Render(inst Instance) (*Node, error) {
	return RenderWith(inst, Options{})
}

// RenderWith builds the value tree for inst.
//
// The tree is freshly allocated per call and shares nothing with other
// renders. Failures are all-or-nothing for the render: a truncated
// buffer or cyclic layout yields an error and no partial tree.
func RenderWith(inst Instance, opts Options) (*Node, error) {
	d := inst.Type
	if d == nil {
		return nil, fmt.Errorf("render: instance has no type descriptor")
	}
	var slots []typedesc.Slot
	if d.Kind == typedesc.KindStruct && d.Display != typedesc.DisplaySummary {
		var err error
		slots, err = typedesc.Walk(d)
		if err != nil {
			return nil, err
		}
	}
	return RenderSlotsWith(inst, slots, opts)
}

// RenderSlotsWith is RenderWith for callers that already hold the walk
// of inst.Type, letting them reuse one slot sequence across many
// instances of the same type. slots must come from typedesc.Walk on
// exactly inst.Type; the function trusts slot offsets but still
// bounds-checks every read against the buffer.
func RenderSlotsWith(inst Instance, slots []typedesc.Slot, opts Options) (*Node, error) {
	d := inst.Type
	if d == nil {
		return nil, fmt.Errorf("render: instance has no type descriptor")
	}
	if len(inst.Bytes) < d.Size {
		return nil, fmt.Errorf("render %s: %w: need %d bytes, have %d",
			d.Name, bitfield.ErrShortBuffer, d.Size, len(inst.Bytes))
	}

	r := renderer{inst: inst, opts: opts}
	root := &Node{Label: d.Name}

	// Non-struct roots and summary objects render as a single value.
	if d.Kind != typedesc.KindStruct || d.Display == typedesc.DisplaySummary {
		v, err := r.valueAt(d, 0)
		if err != nil {
			return nil, err
		}
		root.Value = v
		return root, nil
	}

	if err := r.attach(root, slots); err != nil {
		return nil, err
	}
	return root, nil
}

type renderer struct {
	inst Instance
	opts Options
}

// attach converts the pre-order slot sequence into child nodes of root,
// using slot depth to rebuild nesting.
func (r *renderer) attach(root *Node, slots []typedesc.Slot) error {
	stack := []*Node{root}
	for i := 0; i < len(slots); {
		s := slots[i]
		stack = stack[:s.Depth+1]
		parent := stack[len(stack)-1]

		n := &Node{
			Label:  s.Path[len(s.Path)-1],
			Access: s.Access,
			IsBase: s.IsBase,
		}
		parent.Children = append(parent.Children, n)

		if s.Type.Kind == typedesc.KindStruct && s.Type.Display == typedesc.DisplaySummary {
			// Collapse the subobject to its one-line summary and skip
			// the slots of its internals.
			v, err := r.valueAt(s.Type, s.Offset)
			if err != nil {
				return err
			}
			n.Value = v
			i = skipSubtree(slots, i)
			continue
		}

		if s.Type.Kind == typedesc.KindStruct {
			stack = append(stack, n)
			i++
			continue
		}

		v, err := r.valueAt(s.Type, s.Offset)
		if err != nil {
			return err
		}
		n.Value = v
		i++
	}
	return nil
}

// skipSubtree returns the index of the first slot after i that is not
// nested below slots[i].
func skipSubtree(slots []typedesc.Slot, i int) int {
	depth := slots[i].Depth
	j := i + 1
	for j < len(slots) && slots[j].Depth > depth {
		j++
	}
	return j
}

// valueAt decodes and formats the value of type d stored at offset in
// the instance image.
func (r *renderer) valueAt(d *typedesc.Descriptor, offset int) (string, error) {
	switch d.Kind {
	case typedesc.KindArbitraryInt:
		v, err := r.decodeAt(d, offset)
		if err != nil {
			return "", err
		}
		return v.String(), nil

	case typedesc.KindPrimitive:
		return r.primitiveAt(d, offset)

	case typedesc.KindEnum:
		return r.enumAt(d, offset)

	case typedesc.KindStruct:
		return r.summaryAt(d, offset)

	default:
		return "", fmt.Errorf("render: type %s has unsupported kind %s", d.Name, d.Kind)
	}
}

// decodeAt extracts the bit field of d starting at offset.
func (r *renderer) decodeAt(d *typedesc.Descriptor, offset int) (*big.Int, error) {
	need := bitfield.ByteLen(d.Bits)
	if offset < 0 || offset+need > len(r.inst.Bytes) {
		return nil, fmt.Errorf("render %s at offset %d: %w: need %d bytes, have %d",
			d.Name, offset, bitfield.ErrShortBuffer, need, len(r.inst.Bytes)-offset)
	}
	return bitfield.Decode(r.inst.Bytes[offset:], d.Bits, d.Signed, r.inst.Order)
}

func (r *renderer) primitiveAt(d *typedesc.Descriptor, offset int) (string, error) {
	v, err := r.decodeAt(d, offset)
	if err != nil {
		return "", err
	}
	switch d.Format {
	case typedesc.FormatBool:
		if v.Sign() == 0 {
			return "false", nil
		}
		return "true", nil

	case typedesc.FormatChar:
		if d.Size == 1 {
			// Quote the storage byte, not the signed value, so high
			// chars come out as a code point rather than a
			// replacement rune.
			return strconv.QuoteRuneToASCII(rune(byte(v.Int64()))), nil
		}
		return strconv.QuoteRuneToASCII(rune(v.Int64())), nil

	case typedesc.FormatFloat:
		switch d.Size {
		case 4:
			f := math.Float32frombits(uint32(v.Uint64()))
			return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
		case 8:
			return strconv.FormatFloat(math.Float64frombits(v.Uint64()), 'g', -1, 64), nil
		default:
			// No native float of this size; show the raw pattern.
			return "0x" + v.Text(16), nil
		}

	default:
		return v.String(), nil
	}
}

func (r *renderer) enumAt(d *typedesc.Descriptor, offset int) (string, error) {
	v, err := r.decodeAt(d, offset)
	if err != nil {
		return "", err
	}
	n := v.Int64()
	name, ok := d.EnumName(n)
	if !ok {
		// Enum storage legally holds any value of the underlying
		// type; an unmapped value is a fallback, not an error.
		return fmt.Sprintf("<unnamed:%d>", n), nil
	}
	if r.opts.EnumDocs {
		if doc := d.EnumDoc(n); doc != "" {
			return fmt.Sprintf("%s(%d) - %s", name, n, doc), nil
		}
	}
	return fmt.Sprintf("%s(%d)", name, n), nil
}

// summaryAt renders a summary-display struct as "Name(value)", taking
// the value from the struct's first arbitrary-width integer field.
func (r *renderer) summaryAt(d *typedesc.Descriptor, offset int) (string, error) {
	for _, f := range d.Fields {
		if f.Type == nil || f.Type.Kind != typedesc.KindArbitraryInt {
			continue
		}
		v, err := r.decodeAt(f.Type, offset+f.Offset)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", d.Name, v), nil
	}
	return fmt.Sprintf("%s(<unknown>)", d.Name), nil
}
