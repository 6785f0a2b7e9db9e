// Package bitfield extracts and packs arbitrary-width integers from raw
// byte buffers.
//
// Hardware-modeling types store logical values whose bit width is not a
// machine width: a 7-bit counter lives in one byte, a 1000-bit vector in
// 125 bytes. The package decodes such fields into arbitrary-precision
// values and encodes them back, handling byte order, masking to the
// declared width, and two's-complement sign extension.
//
// Core functionality:
//   - Decode raw bytes into a *big.Int at any bit width
//   - Encode a *big.Int back into its minimal byte representation
//   - Range queries for the representable interval of a width
//
// All functions are pure: they never mutate their inputs and are safe for
// concurrent use.
package bitfield
