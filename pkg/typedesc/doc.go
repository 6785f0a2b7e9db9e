// Package typedesc models the static type metadata the formatting engine
// consumes: primitive and arbitrary-width integer types, enumerations, and
// C++-style struct layouts with base classes, member offsets, and access
// specifiers.
//
// Descriptors are plain data. They describe where values live inside a raw
// object image but are never tied to a particular instance, so one
// descriptor can drive any number of concurrent renders.
//
// Core functionality:
//   - Descriptor, Base, Field, EnumValue metadata types
//   - Walk, the layout walker that flattens a descriptor into an ordered,
//     access-annotated slot sequence with cycle detection
//   - StructBuilder, which assigns member offsets under common Itanium-style
//     alignment rules for building descriptors by hand
//   - Fingerprint, a structural hash used as a cache identity
//   - ParseScType, which recognizes hardware-modeling integer type names
//     such as "sc_uint<7>" and synthesizes their object layout
package typedesc
