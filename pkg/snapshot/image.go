package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/remora-debug/remora/pkg/bitfield"
)

// Image assembles one object's raw bytes before they join a segment.
// It is the write-side mirror of the engine's decoding: every Put packs
// through the same bit-field encoder the renderer decodes with, so a
// value placed at an offset reads back exactly.
type Image struct {
	buf   []byte
	order binary.ByteOrder
}

// NewImage allocates a zeroed image of size bytes. A nil order means
// little-endian.
func NewImage(size int, order binary.ByteOrder) *Image {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Image{buf: make([]byte, size), order: order}
}

// Bytes returns the backing buffer. The Image retains ownership; copy
// before mutating further if the slice escapes.
func (im *Image) Bytes() []byte {
	return im.buf
}

// PutBits packs v as a width-bit integer at the byte offset.
func (im *Image) PutBits(offset int, width uint, signed bool, v *big.Int) error {
	enc, err := bitfield.Encode(v, width, signed, im.order)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(enc) > len(im.buf) {
		return fmt.Errorf("write of %d bytes at offset %d past image end %d", len(enc), offset, len(im.buf))
	}
	copy(im.buf[offset:], enc)
	return nil
}

// PutInt packs a signed integer into size bytes at offset.
func (im *Image) PutInt(offset, size int, v int64) error {
	return im.PutBits(offset, uint(size)*8, true, big.NewInt(v))
}

// PutUint packs an unsigned integer into size bytes at offset.
func (im *Image) PutUint(offset, size int, v uint64) error {
	return im.PutBits(offset, uint(size)*8, false, new(big.Int).SetUint64(v))
}

// PutFloat32 packs an IEEE 754 single at offset.
func (im *Image) PutFloat32(offset int, f float32) error {
	return im.PutUint(offset, 4, uint64(math.Float32bits(f)))
}

// PutFloat64 packs an IEEE 754 double at offset.
func (im *Image) PutFloat64(offset int, f float64) error {
	return im.PutUint(offset, 8, math.Float64bits(f))
}

// PutBool packs a one-byte boolean at offset.
func (im *Image) PutBool(offset int, v bool) error {
	var b uint64
	if v {
		b = 1
	}
	return im.PutUint(offset, 1, b)
}

// PutByte stores one raw byte at offset.
func (im *Image) PutByte(offset int, c byte) error {
	return im.PutUint(offset, 1, uint64(c))
}
