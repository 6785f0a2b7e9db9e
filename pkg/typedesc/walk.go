package typedesc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCyclicLayout indicates a descriptor that contains itself through
// its base or field chain. Such metadata is malformed; recursing into
// it would never terminate.
var ErrCyclicLayout = errors.New("cyclic type layout")

// Slot is one storage location reachable from an instance of the walked
// type. Base subobjects and struct-typed fields appear as their own
// slots before the slots of their contents, so the sequence is a
// pre-order flattening of the layout tree.
type Slot struct {
	// Path qualifies the slot from the walk root: base type names for
	// inheritance steps, field names for member steps. The last
	// element is the slot's own label.
	Path []string
	// Access is the effective access from the walk root, the most
	// restrictive specifier along Path.
	Access Access
	// Offset is the absolute byte offset from the start of the root
	// instance, summed along the containment chain.
	Offset int
	// Depth is the nesting depth, zero for direct bases and fields of
	// the root.
	Depth int
	// IsBase marks base subobject slots.
	IsBase bool
	Type   *Descriptor
}

// PathString returns Path joined with dots, such as "AnotherBase.x".
func (s Slot) PathString() string {
	return strings.Join(s.Path, ".")
}

// Walk flattens root into its ordered slot sequence.
//
// Emission order is declaration order, depth-first, bases before own
// fields. The order depends only on the descriptor, so repeated walks
// of the same type produce identical sequences. Two bases declaring
// the same field name yield two slots with distinct paths; the walker
// never merges or hides either.
//
// A descriptor reachable from itself fails with ErrCyclicLayout.
// Sharing a descriptor between siblings is not a cycle.
func Walk(root *Descriptor) ([]Slot, error) {
	if root == nil {
		return nil, fmt.Errorf("walk: nil type descriptor")
	}
	w := &walker{onPath: make(map[*Descriptor]bool)}
	if err := w.expand(root, nil, AccessPublic, 0, 0); err != nil {
		return nil, err
	}
	return w.slots, nil
}

type walker struct {
	slots  []Slot
	onPath map[*Descriptor]bool
}

func (w *walker) expand(d *Descriptor, path []string, acc Access, offset, depth int) error {
	if w.onPath[d] {
		return fmt.Errorf("%w: %s contains itself", ErrCyclicLayout, d.Name)
	}
	w.onPath[d] = true
	defer delete(w.onPath, d)

	for i, b := range d.Bases {
		if b.Type == nil {
			return fmt.Errorf("walk: %s base %d has nil type", d.Name, i)
		}
		eff := acc.Restrict(b.Access)
		p := child(path, b.Type.Name)
		w.slots = append(w.slots, Slot{
			Path:   p,
			Access: eff,
			Offset: offset + b.Offset,
			Depth:  depth,
			IsBase: true,
			Type:   b.Type,
		})
		if b.Type.Kind == KindStruct {
			if err := w.expand(b.Type, p, eff, offset+b.Offset, depth+1); err != nil {
				return err
			}
		}
	}

	for _, f := range d.Fields {
		if f.Type == nil {
			return fmt.Errorf("walk: %s field %s has nil type", d.Name, f.Name)
		}
		eff := acc.Restrict(f.Access)
		p := child(path, f.Name)
		w.slots = append(w.slots, Slot{
			Path:   p,
			Access: eff,
			Offset: offset + f.Offset,
			Depth:  depth,
			Type:   f.Type,
		})
		if f.Type.Kind == KindStruct {
			if err := w.expand(f.Type, p, eff, offset+f.Offset, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// child extends path without aliasing the parent's backing array, so
// sibling slots cannot clobber each other's Path.
func child(path []string, label string) []string {
	p := make([]string, len(path)+1)
	copy(p, path)
	p[len(path)] = label
	return p
}
