// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

package msgpack

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cmpValues(a, b Value) bool { return a.Equal(b) }

func TestDecodeScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"nil", "\xc0", Nil},
		{"false", "\xc2", Bool(false)},
		{"true", "\xc3", Bool(true)},
		{"uint-42", "\x2a", UInt(42)},
		{"sint-neg1", "\xff", SInt(-1)},
		{"uint-200", "\xcc\xc8", UInt(200)},
		{"str-hello", "\xa5hello", Str("hello")},
		{"array-123", "\x93\x01\x02\x03", Array([]Value{UInt(1), UInt(2), UInt(3)})},
		{"map-ab", "\x82\xa1a\x01\xa1b\x02", Map([]Pair{{Str("a"), UInt(1)}, {Str("b"), UInt(2)}})},
		{"ext-type1", "\xd4\x01\x01", MakeExt(1, []byte{0x01})},
		{"ext-type6", "\xc7\x03\x06\x01\x02\x03", MakeExt(6, []byte{0x01, 0x02, 0x03})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode([]byte(test.in))
			if err != nil {
				t.Fatalf("Decode(%q): unexpected error: %v", test.in, err)
			}
			if diff := cmp.Diff(test.want, got, cmp.Comparer(cmpValues)); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", test.in, diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		Nil,
		Bool(true),
		Bool(false),
		UInt(0),
		UInt(127),
		UInt(128),
		UInt(255),
		UInt(256),
		UInt(65535),
		UInt(65536),
		UInt(1<<32 - 1),
		UInt(1 << 32),
		UInt(1<<64 - 1),
		SInt(-1),
		SInt(-32),
		SInt(-33),
		SInt(-128),
		SInt(-129),
		SInt(-32768),
		SInt(-32769),
		SInt(-1 << 31),
		SInt(-1<<31 - 1),
		SInt(-1 << 63),
		Float(3.14),
		Float(0),
		Str(""),
		Str(strings.Repeat("a", 31)),
		Str(strings.Repeat("a", 32)),
		Str(strings.Repeat("a", 256)),
		Bin([]byte{}),
		Bin([]byte{1, 2, 3}),
		Array(nil),
		Array([]Value{UInt(1), Str("x"), Bool(true)}),
		Map(nil),
		Map([]Pair{{Str("a"), UInt(1)}, {Str("b"), UInt(2)}}),
		MakeExt(-1, []byte{0xde, 0xad}),
		MakeExt(127, []byte{}),
		MakeExt(0, make([]byte, 17)),
	}
	for _, v := range values {
		enc, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%v): unexpected error: %v", v, err)
		}
		got, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%v)) = _, %v", v, err)
		}
		if !got.Equal(v) {
			t.Errorf("Decode(Encode(%v)) = %v, want %v", v, got, v)
		}
	}
}

func TestDecodeReservedTag(t *testing.T) {
	_, err := Decode([]byte{0xc1})
	if !errors.Is(err, ErrReservedTag) {
		t.Errorf("Decode(0xc1) error = %v, want ErrReservedTag", err)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	enc, err := Encode(UInt(1))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = Decode(append(enc, 0x00))
	if !errors.Is(err, ErrTrailingBytes) {
		t.Errorf("Decode with trailing byte error = %v, want ErrTrailingBytes", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	enc, err := Encode(Map([]Pair{{Str("a"), UInt(1)}, {Str("b"), UInt(2)}}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for n := 0; n < len(enc); n++ {
		if _, err := Decode(enc[:n]); !errors.Is(err, ErrTruncated) {
			t.Errorf("Decode(prefix of length %d) error = %v, want ErrTruncated", n, err)
		}
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	// fixstr tag with length 1, followed by an invalid UTF-8 byte.
	_, err := Decode([]byte{0xa1, 0xff})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Decode invalid utf8 error = %v, want ErrInvalidUTF8", err)
	}
}

func TestDecodeNestingTooDeep(t *testing.T) {
	// Build maxNestingDepth+1 nested single-element fixarrays: 0x91 0x91 ... 0xc0
	depth := maxNestingDepth + 1
	buf := make([]byte, depth+1)
	for i := 0; i < depth; i++ {
		buf[i] = 0x91
	}
	buf[depth] = tagNil
	_, err := Decode(buf)
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Decode(deeply nested array) error = %v, want ErrNestingTooDeep", err)
	}
}

func TestDecodeDuplicateMapKeyLastWriteWins(t *testing.T) {
	// {"a": 1, "a": 2} encoded directly (Encode never produces duplicate
	// keys on its own, but Decode must still tolerate them on the wire).
	in := []byte{0x82, 0xa1, 'a', 0x01, 0xa1, 'a', 0x02}
	got, err := Decode(in)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	pairs, ok := got.AsMap()
	if !ok || len(pairs) != 1 {
		t.Fatalf("Decode duplicate-key map = %v, want single pair", got)
	}
	if !pairs[0].Value.Equal(UInt(2)) {
		t.Errorf("Decode duplicate-key map value = %v, want 2 (last write wins)", pairs[0].Value)
	}
}
