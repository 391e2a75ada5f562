// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

// Package msgpack implements the MessagePack binary interchange format.
//
// A msgpack message is a single tag-dispatched value: a leading tag byte
// selects the kind of the value and, for numeric and length-bearing kinds,
// the size of an optional payload that follows. Composite values (arrays,
// maps, extensions) nest by recursively encoding their elements.
//
// Encode always picks the smallest tag whose range covers the value being
// encoded; Decode dispatches on the tag byte and reads exactly the bytes
// of one value, recursing into composites as needed. Values round-trip
// losslessly except that all floating-point values are decoded to the
// binary64 Float variant of Value regardless of whether the wire form was
// binary32 or binary64, and that a map whose keys repeat decodes to one
// pair per distinct key, holding the last value at the first key's place.
//
// The encoding of a value is determined entirely by its tag byte:
//
//	Byte 0 (tag)
//	+----------------+
//	|0        7 bits | positive fixint: the tag IS the value, 0..127
//	+----------------+
//	|111     5 bits  | negative fixint: two's-complement value, -32..-1
//	+----------------+
//	|1000    4 bits  | fixmap: tag low nibble is the pair count, 0..15
//	+----------------+
//	|1001    4 bits  | fixarray: tag low nibble is the element count, 0..15
//	+----------------+
//	|101     5 bits  | fixstr: tag low 5 bits are the byte length, 0..31
//	+----------------+
//
// Everything else is a named tag in 0xc0..0xdf whose payload layout is
// fixed by the format and reproduced in the encodeUint/encodeSint/
// encodeStr family of functions in encode.go and their decode
// counterparts in decode.go.
package msgpack
