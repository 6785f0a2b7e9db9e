package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/process"
)

// Builder assembles a Snapshot incrementally. Segments may arrive in
// any order; the builder keeps them sorted by base address and rejects
// overlaps at insertion, so the result always validates.
type Builder struct {
	snap Snapshot
}

// NewBuilder starts a capture stamped with a fresh ID, the current
// time, and best-effort metadata about the capturing process.
func NewBuilder() *Builder {
	return &Builder{
		snap: Snapshot{
			ID:         uuid.New().String(),
			CapturedAt: time.Now().UTC(),
			Process:    captureProcess(),
		},
	}
}

// SetByteOrder records the target byte order of the captured image.
func (b *Builder) SetByteOrder(order binary.ByteOrder) *Builder {
	if order == binary.ByteOrder(binary.BigEndian) {
		b.snap.ByteOrder = "big"
	} else {
		b.snap.ByteOrder = "little"
	}
	return b
}

// AddSegment captures data at base. The bytes are copied.
func (b *Builder) AddSegment(base uint64, data []byte) error {
	end := base + uint64(len(data))
	for _, seg := range b.snap.Segments {
		segEnd := seg.Base + uint64(len(seg.Data))
		if base < segEnd && seg.Base < end {
			return fmt.Errorf("segment [0x%x, 0x%x) overlaps existing [0x%x, 0x%x)",
				base, end, seg.Base, segEnd)
		}
	}

	b.snap.Segments = append(b.snap.Segments, Segment{
		Base: base,
		Data: append([]byte(nil), data...),
	})
	sort.Slice(b.snap.Segments, func(i, j int) bool {
		return b.snap.Segments[i].Base < b.snap.Segments[j].Base
	})
	return nil
}

// AddVariable names an object inside the capture. Insertion order is
// preserved into the snapshot.
func (b *Builder) AddVariable(name string, addr uint64, typeName string) *Builder {
	b.snap.Variables = append(b.snap.Variables, Variable{
		Name:     name,
		Address:  addr,
		TypeName: typeName,
	})
	return b
}

// Snapshot validates and returns the finished capture.
func (b *Builder) Snapshot() (*Snapshot, error) {
	snap := b.snap
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot incoherent: %w", err)
	}
	return &snap, nil
}

// captureProcess records the capturing process's identity. Everything
// here is advisory provenance; failures degrade to empty fields.
func captureProcess() ProcessInfo {
	info := ProcessInfo{PID: int32(os.Getpid())}

	if hostInfo, err := host.Info(); err == nil {
		info.Hostname = hostInfo.Hostname
		info.OS = hostInfo.OS
	} else if name, err := os.Hostname(); err == nil {
		info.Hostname = name
	}

	if proc, err := process.NewProcess(info.PID); err == nil {
		if exe, err := proc.Exe(); err == nil {
			info.Executable = exe
		}
	}
	return info
}
