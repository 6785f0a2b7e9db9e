package config

import (
	"encoding/binary"
	"fmt"

	"github.com/remora-debug/remora/pkg/typedesc"
)

// SchemaVersion is the configuration schema version.
const SchemaVersion = "1"

// Color modes for rendered output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the ~/.remora/config.yaml config file.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Render  RenderConfig  `yaml:"render,omitempty"`
	Decode  DecodeConfig  `yaml:"decode,omitempty"`
	Enums   []EnumTable   `yaml:"enums,omitempty"` // user enum tables, registered next to the built-in ones
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level   string `yaml:"level,omitempty" env:"REMORA_LOG_LEVEL"`       // trace, debug, info, warn, error
	Pretty  bool   `yaml:"pretty,omitempty" env:"REMORA_LOG_PRETTY"`     // console writer instead of JSON
	NoColor bool   `yaml:"no_color,omitempty" env:"REMORA_LOG_NO_COLOR"` // strip ANSI from pretty output
}

// RenderConfig controls how values are formatted.
type RenderConfig struct {
	Indent   string `yaml:"indent,omitempty" env:"REMORA_RENDER_INDENT"` // per-level indentation of nested blocks
	EnumDocs bool   `yaml:"enum_docs,omitempty" env:"REMORA_ENUM_DOCS"`  // append value descriptions to enums
	Color    string `yaml:"color,omitempty" env:"REMORA_COLOR"`          // "auto", "always", "never"
}

// DecodeConfig sets defaults for interpreting raw bytes when the input
// carries no byte order of its own.
type DecodeConfig struct {
	ByteOrder string `yaml:"byte_order,omitempty" env:"REMORA_BYTE_ORDER"` // "little" or "big"
}

// EnumTable declares one enum type in the config file:
//
//	enums:
//	  - name: State
//	    values:
//	      - {name: STATE_IDLE, value: 0, doc: System is idle}
//	      - {name: STATE_WAITING, value: 10}
type EnumTable struct {
	Name     string      `yaml:"name"`
	Size     int         `yaml:"size,omitempty"`     // storage size in bytes, defaults to 4
	Unsigned bool        `yaml:"unsigned,omitempty"` // plain C++ enums are signed, so that is the default
	Values   []EnumEntry `yaml:"values"`
}

// EnumEntry is one named enum value with an optional description.
type EnumEntry struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
	Doc   string `yaml:"doc,omitempty"`
}

// Order returns the configured default byte order. Anything but "big"
// means little-endian.
func (c *Config) Order() binary.ByteOrder {
	if c.Decode.ByteOrder == "big" {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Descriptor converts the table into a registerable enum descriptor.
func (t EnumTable) Descriptor() (*typedesc.Descriptor, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	size := t.Size
	if size == 0 {
		size = 4
	}

	values := make([]typedesc.EnumValue, 0, len(t.Values))
	for _, v := range t.Values {
		values = append(values, typedesc.EnumValue{
			Value: v.Value,
			Name:  v.Name,
			Doc:   v.Doc,
		})
	}
	return typedesc.NewEnum(t.Name, size, !t.Unsigned, values), nil
}

// EnumDescriptors converts every configured enum table. The first
// broken table aborts the conversion so a typo doesn't silently drop a
// type.
func (c *Config) EnumDescriptors() ([]*typedesc.Descriptor, error) {
	if len(c.Enums) == 0 {
		return nil, nil
	}
	descs := make([]*typedesc.Descriptor, 0, len(c.Enums))
	for _, table := range c.Enums {
		d, err := table.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("enum table %q: %w", table.Name, err)
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func (t EnumTable) validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch t.Size {
	case 0, 1, 2, 4, 8:
	default:
		return fmt.Errorf("invalid size %d (want 1, 2, 4 or 8)", t.Size)
	}
	if len(t.Values) == 0 {
		return fmt.Errorf("enum %q has no values", t.Name)
	}
	seen := make(map[string]bool, len(t.Values))
	for _, v := range t.Values {
		if v.Name == "" {
			return fmt.Errorf("enum %q has a value without a name", t.Name)
		}
		if seen[v.Name] {
			return fmt.Errorf("enum %q declares %s twice", t.Name, v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}
