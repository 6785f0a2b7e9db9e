package inspect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/remora-debug/remora/pkg/typedesc"
)

// synthCacheSize bounds the cache of synthesized sc_uint/sc_int
// descriptors. Sessions touch a handful of widths; the bound only
// guards against adversarial name streams.
const synthCacheSize = 64

// Registry is an InfoProvider backed by an explicit name table.
//
// Lookups fall through three stages: exact registered name, registered
// name with the leading namespace qualifier stripped ("sc_core::" and
// friends), then on-demand synthesis of hardware-modeling integer
// templates like "sc_uint<7>". Synthesized descriptors are cached so
// repeated renders of the same width share one descriptor and therefore
// one fingerprint.
type Registry struct {
	log   zerolog.Logger
	mu    sync.RWMutex
	types map[string]*typedesc.Descriptor
	synth *lruCache[string, *typedesc.Descriptor]
}

// NewRegistry returns an empty registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		log:   logger.With().Str("component", "registry").Logger(),
		types: make(map[string]*typedesc.Descriptor),
		synth: newLRUCache[string, *typedesc.Descriptor](synthCacheSize),
	}
}

// Register adds d under its name, replacing any previous descriptor of
// that name. The descriptor must pass validation.
func (r *Registry) Register(d *typedesc.Descriptor) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("register: descriptor must have a name")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("register %s: %w", d.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[d.Name]; exists {
		r.log.Debug().Str("type", d.Name).Msg("replacing registered type")
	}
	r.types[d.Name] = d

	// Qualified names also answer to their bare form, unless something
	// explicitly claims it.
	if i := strings.LastIndex(d.Name, "::"); i >= 0 {
		bare := d.Name[i+2:]
		if _, taken := r.types[bare]; !taken {
			r.types[bare] = d
		}
	}
	return nil
}

// RegisterAll registers every descriptor, stopping at the first failure.
func (r *Registry) RegisterAll(descs []*typedesc.Descriptor) error {
	for _, d := range descs {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// RegisterBuiltins loads the C primitive catalog and the stock SystemC
// enumerations.
func (r *Registry) RegisterBuiltins() error {
	if err := r.RegisterAll(CPrimitives()); err != nil {
		return err
	}
	return r.RegisterAll(SystemCEnums())
}

// DescribeType resolves name to a descriptor or reports ErrUnknownType.
func (r *Registry) DescribeType(name string) (*typedesc.Descriptor, error) {
	r.mu.RLock()
	d, ok := r.types[name]
	if !ok {
		// Debuggers report qualified names; tables may hold bare ones.
		if i := strings.LastIndex(name, "::"); i >= 0 {
			d, ok = r.types[name[i+2:]]
		}
	}
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	if d, ok := r.synth.Get(name); ok {
		return d, nil
	}
	if d, ok := typedesc.ParseScType(name); ok {
		// First writer wins so concurrent misses converge on one
		// descriptor identity.
		return r.synth.Put(name, d), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

// TypeNames returns the registered names in sorted order, without the
// bare-name aliases of qualified types.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name, d := range r.types {
		if name != d.Name {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enums returns the registered enum descriptors sorted by name.
func (r *Registry) Enums() []*typedesc.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var enums []*typedesc.Descriptor
	for name, d := range r.types {
		if name != d.Name || d.Kind != typedesc.KindEnum {
			continue
		}
		enums = append(enums, d)
	}
	sort.Slice(enums, func(i, j int) bool { return enums[i].Name < enums[j].Name })
	return enums
}
