package snapshot

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoSegment indicates a read at an address no segment maps.
var ErrNoSegment = errors.New("address not in any segment")

// ProcessInfo records where a capture came from.
type ProcessInfo struct {
	PID        int32  `yaml:"pid"`
	Executable string `yaml:"executable,omitempty"`
	Hostname   string `yaml:"hostname,omitempty"`
	OS         string `yaml:"os,omitempty"`
}

// Variable names one inspectable object inside the captured image.
// Variables keep their insertion order, which render-all commands
// treat as declaration order.
type Variable struct {
	Name     string `yaml:"name"`
	Address  uint64 `yaml:"address"`
	TypeName string `yaml:"type"`
}

// Segment is one contiguous run of captured memory.
type Segment struct {
	Base uint64
	Data []byte
}

// segmentDoc is the YAML wire form: addresses in hex for eyeballing,
// data hex-encoded in one run.
type segmentDoc struct {
	Base string `yaml:"base"`
	Data string `yaml:"data"`
}

// MarshalYAML implements yaml.Marshaler.
func (s Segment) MarshalYAML() (interface{}, error) {
	return segmentDoc{
		Base: fmt.Sprintf("0x%x", s.Base),
		Data: hex.EncodeToString(s.Data),
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Segment) UnmarshalYAML(value *yaml.Node) error {
	var doc segmentDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}

	var base uint64
	if _, err := fmt.Sscanf(doc.Base, "0x%x", &base); err != nil {
		return fmt.Errorf("segment base %q: %w", doc.Base, err)
	}
	data, err := hex.DecodeString(doc.Data)
	if err != nil {
		return fmt.Errorf("segment data at %s: %w", doc.Base, err)
	}

	s.Base = base
	s.Data = data
	return nil
}

// Snapshot is a self-contained capture: memory segments, the variables
// inside them, and provenance metadata.
type Snapshot struct {
	ID         string      `yaml:"id"`
	CapturedAt time.Time   `yaml:"captured_at"`
	Process    ProcessInfo `yaml:"process"`
	ByteOrder  string      `yaml:"byte_order,omitempty"`
	Segments   []Segment   `yaml:"segments"`
	Variables  []Variable  `yaml:"variables,omitempty"`
}

// Order returns the capture's byte order, little-endian by default.
func (s *Snapshot) Order() binary.ByteOrder {
	if s.ByteOrder == "big" {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Lookup finds a variable by name.
func (s *Snapshot) Lookup(name string) (Variable, bool) {
	for _, v := range s.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// ReadMemory copies captured bytes starting at addr into buf and
// returns how many it supplied. Reads continue across segments that
// abut exactly; a gap ends the read with the bytes gathered so far.
// Addresses outside every segment fail with ErrNoSegment.
func (s *Snapshot) ReadMemory(addr uint64, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		seg := s.segmentFor(addr + uint64(total))
		if seg == nil {
			break
		}
		off := addr + uint64(total) - seg.Base
		n := copy(buf[total:], seg.Data[off:])
		total += n
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: 0x%x", ErrNoSegment, addr)
	}
	return total, nil
}

func (s *Snapshot) segmentFor(addr uint64) *Segment {
	for i := range s.Segments {
		seg := &s.Segments[i]
		if addr >= seg.Base && addr < seg.Base+uint64(len(seg.Data)) {
			return seg
		}
	}
	return nil
}

// Validate checks the capture is coherent: segments must not overlap
// and every variable must point into a segment.
func (s *Snapshot) Validate() error {
	segs := make([]Segment, len(s.Segments))
	copy(segs, s.Segments)
	sort.Slice(segs, func(i, j int) bool { return segs[i].Base < segs[j].Base })
	for i := 1; i < len(segs); i++ {
		prevEnd := segs[i-1].Base + uint64(len(segs[i-1].Data))
		if segs[i].Base < prevEnd {
			return fmt.Errorf("segments overlap at 0x%x", segs[i].Base)
		}
	}

	for _, v := range s.Variables {
		if v.Name == "" {
			return fmt.Errorf("variable at 0x%x has no name", v.Address)
		}
		if v.TypeName == "" {
			return fmt.Errorf("variable %s has no type", v.Name)
		}
		if s.segmentFor(v.Address) == nil {
			return fmt.Errorf("variable %s at 0x%x lies outside every segment", v.Name, v.Address)
		}
	}
	return nil
}
