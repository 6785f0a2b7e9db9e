package inspect

import (
	"errors"

	"github.com/remora-debug/remora/pkg/typedesc"
)

var (
	// ErrUnknownType indicates the info provider has no descriptor for
	// a requested type name.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnreadable indicates the memory capability could not supply
	// any bytes for a requested address range.
	ErrUnreadable = errors.New("unreadable memory")
)

// MemoryReader supplies raw bytes from the inspected target. It is the
// one external capability the engine depends on for data; the engine
// never writes and never executes code in the target.
//
// ReadMemory fills buf starting at addr and returns how many bytes it
// could provide. Short reads at the end of a mapped region return the
// available prefix and no error; addresses with no mapping at all
// return an error.
type MemoryReader interface {
	ReadMemory(addr uint64, buf []byte) (int, error)
}

// InfoProvider supplies static type metadata, standing in for a
// debugger's symbol or DWARF layer. DescribeType returns ErrUnknownType
// (possibly wrapped) for names it cannot resolve.
type InfoProvider interface {
	DescribeType(name string) (*typedesc.Descriptor, error)
}
