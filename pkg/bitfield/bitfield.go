package bitfield

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrShortBuffer indicates the buffer holds fewer bytes than the
	// width requires.
	ErrShortBuffer = errors.New("buffer too short for bit width")

	// ErrZeroWidth indicates a width of zero bits, which has no
	// representable values.
	ErrZeroWidth = errors.New("bit width must be at least 1")

	// ErrOutOfRange indicates a value outside the representable range
	// of the given width and signedness.
	ErrOutOfRange = errors.New("value out of range for bit width")
)

// ByteLen returns the number of bytes needed to store width bits.
func ByteLen(width uint) int {
	return int((width + 7) / 8)
}

// Decode extracts a width-bit integer from the leading bytes of buf.
//
// Exactly ByteLen(width) bytes are consumed; trailing bytes are ignored
// so callers may pass a whole object image. The consumed bytes are
// interpreted per order, masked down to width bits, and sign-extended
// in two's complement when signed is set. The result is freshly
// allocated and buf is never modified.
func Decode(buf []byte, width uint, signed bool, order binary.ByteOrder) (*big.Int, error) {
	if width == 0 {
		return nil, ErrZeroWidth
	}
	n := ByteLen(width)
	if len(buf) < n {
		return nil, fmt.Errorf("%w: need %d bytes for %d bits, have %d", ErrShortBuffer, n, width, len(buf))
	}

	raw := make([]byte, n)
	copy(raw, buf[:n])
	if isLittleEndian(order) {
		reverse(raw)
	}

	v := new(big.Int).SetBytes(raw)

	// Mask holds only the declared bits. Storage rounds up to whole
	// bytes, so the top byte may carry unrelated bits.
	v.And(v, mask(width))

	if signed && v.Bit(int(width-1)) == 1 {
		// Two's complement: value - 2^width.
		v.Sub(v, modulus(width))
	}
	return v, nil
}

// Encode packs v into ByteLen(width) bytes in the given byte order.
//
// It is the inverse of Decode: for any in-range v,
// Decode(Encode(v)) returns a value equal to v. Values outside
// Bounds(width, signed) yield ErrOutOfRange.
func Encode(v *big.Int, width uint, signed bool, order binary.ByteOrder) ([]byte, error) {
	if width == 0 {
		return nil, ErrZeroWidth
	}
	lo, hi := Bounds(width, signed)
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return nil, fmt.Errorf("%w: %s not in [%s, %s]", ErrOutOfRange, v, lo, hi)
	}

	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, modulus(width))
	}

	out := u.FillBytes(make([]byte, ByteLen(width)))
	if isLittleEndian(order) {
		reverse(out)
	}
	return out, nil
}

// Bounds returns the inclusive [min, max] range representable in width
// bits. Unsigned widths span [0, 2^width-1]; signed widths span
// [-2^(width-1), 2^(width-1)-1]. Both values are freshly allocated.
func Bounds(width uint, signed bool) (min, max *big.Int) {
	if width == 0 {
		return new(big.Int), new(big.Int)
	}
	if !signed {
		max = new(big.Int).Sub(modulus(width), big.NewInt(1))
		return new(big.Int), max
	}
	half := new(big.Int).Lsh(big.NewInt(1), width-1)
	min = new(big.Int).Neg(half)
	max = new(big.Int).Sub(half, big.NewInt(1))
	return min, max
}

// Fits reports whether v is representable in width bits with the given
// signedness.
func Fits(v *big.Int, width uint, signed bool) bool {
	if width == 0 {
		return false
	}
	lo, hi := Bounds(width, signed)
	return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
}

func mask(width uint) *big.Int {
	return new(big.Int).Sub(modulus(width), big.NewInt(1))
}

func modulus(width uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), width)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// isLittleEndian probes order rather than comparing against the two
// stdlib implementations, so custom ByteOrder values work too.
func isLittleEndian(order binary.ByteOrder) bool {
	if order == nil {
		return true
	}
	var probe [2]byte
	order.PutUint16(probe[:], 0x01)
	return probe[0] == 0x01
}
