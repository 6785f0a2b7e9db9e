package typedesc

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a 64-bit structural hash of d. Two descriptors
// that would render identically hash identically, so the value serves
// as a cache key for per-type render plans without comparing whole
// descriptor trees.
//
// Shared subtrees and even cyclic references are handled by hashing a
// back-reference instead of re-descending, so Fingerprint terminates on
// metadata that Walk would reject.
func Fingerprint(d *Descriptor) uint64 {
	return xxh3.Hash(appendDesc(nil, d, make(map[*Descriptor]int)))
}

const (
	fpNil  = 0
	fpRef  = 1
	fpFull = 2
)

func appendDesc(b []byte, d *Descriptor, seen map[*Descriptor]int) []byte {
	if d == nil {
		return append(b, fpNil)
	}
	if idx, ok := seen[d]; ok {
		b = append(b, fpRef)
		return binary.AppendUvarint(b, uint64(idx))
	}
	seen[d] = len(seen)

	b = append(b, fpFull)
	b = appendString(b, d.Name)
	b = binary.AppendVarint(b, int64(d.Size))
	b = binary.AppendVarint(b, int64(d.Kind))
	b = binary.AppendUvarint(b, uint64(d.Bits))
	b = appendBool(b, d.Signed)
	b = binary.AppendVarint(b, int64(d.Format))
	b = binary.AppendVarint(b, int64(d.Display))

	b = binary.AppendUvarint(b, uint64(len(d.Bases)))
	for _, base := range d.Bases {
		b = binary.AppendVarint(b, int64(base.Offset))
		b = binary.AppendVarint(b, int64(base.Access))
		b = appendDesc(b, base.Type, seen)
	}

	b = binary.AppendUvarint(b, uint64(len(d.Fields)))
	for _, f := range d.Fields {
		b = appendString(b, f.Name)
		b = binary.AppendVarint(b, int64(f.Offset))
		b = binary.AppendVarint(b, int64(f.Access))
		b = appendDesc(b, f.Type, seen)
	}

	b = binary.AppendUvarint(b, uint64(len(d.Values)))
	for _, v := range d.Values {
		b = binary.AppendVarint(b, v.Value)
		b = appendString(b, v.Name)
		b = appendString(b, v.Doc)
	}
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}
