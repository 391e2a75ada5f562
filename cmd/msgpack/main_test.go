// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

package main

import (
	"encoding/hex"
	"testing"

	"github.com/creachadair/msgpack"
	"github.com/creachadair/msgpack/internal/textual"
)

func TestEncodeDecodePipeline(t *testing.T) {
	v, err := textual.FromJSON([]byte(`{"a":1,"b":[true,null,"x"]}`))
	if err != nil {
		t.Fatalf("FromJSON: unexpected error: %v", err)
	}
	packed, err := msgpack.Encode(v)
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	back, err := msgpack.Decode(packed)
	if err != nil {
		t.Fatalf("Decode(%s): unexpected error: %v", hex.EncodeToString(packed), err)
	}
	if !back.Equal(v) {
		t.Errorf("pipeline round trip mismatch: got %v, want %v", back, v)
	}
}
