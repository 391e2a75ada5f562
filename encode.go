// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

package msgpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Tag bytes named per the format's fixed dispatch table.
const (
	tagNil       = 0xc0
	tagFalse     = 0xc2
	tagTrue      = 0xc3
	tagBin8      = 0xc4
	tagBin16     = 0xc5
	tagBin32     = 0xc6
	tagExt8      = 0xc7
	tagExt16     = 0xc8
	tagExt32     = 0xc9
	tagFloat32   = 0xca
	tagFloat64   = 0xcb
	tagUInt8     = 0xcc
	tagUInt16    = 0xcd
	tagUInt32    = 0xce
	tagUInt64    = 0xcf
	tagInt8      = 0xd0
	tagInt16     = 0xd1
	tagInt32     = 0xd2
	tagInt64     = 0xd3
	tagFixExt1   = 0xd4
	tagFixExt2   = 0xd5
	tagFixExt4   = 0xd6
	tagFixExt8   = 0xd7
	tagFixExt16  = 0xd8
	tagStr8      = 0xd9
	tagStr16     = 0xda
	tagStr32     = 0xdb
	tagArray16   = 0xdc
	tagArray32   = 0xdd
	tagMap16     = 0xde
	tagMap32     = 0xdf
	tagReserved  = 0xc1
	fixIntMax    = 0x7f
	fixMapBase   = 0x80
	fixArrayBase = 0x90
	fixStrBase   = 0xa0
	negFixMin    = 0xe0

	maxUint32 = 1<<32 - 1
)

// Encode maps a Value tree to its MessagePack byte sequence, selecting the
// smallest tag whose range covers each value along the way. It fails with
// ErrValueTooLarge when a length or integer magnitude exceeds the format's
// limits, and never emits a partial buffer.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeInto(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeInto(buf *bytes.Buffer, v Value) error {
	switch v.Kind() {
	case KindNil:
		buf.WriteByte(tagNil)
		return nil
	case KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteByte(tagTrue)
		} else {
			buf.WriteByte(tagFalse)
		}
		return nil
	case KindUInt:
		n, _ := v.AsUInt()
		return encodeUint(buf, n)
	case KindSInt:
		n, _ := v.AsSInt()
		return encodeSint(buf, n)
	case KindFloat:
		f, _ := v.AsFloat()
		return encodeFloat(buf, f)
	case KindStr:
		s, _ := v.AsStr()
		return encodeStr(buf, s)
	case KindBin:
		b, _ := v.AsBin()
		return encodeBin(buf, b)
	case KindArray:
		elems, _ := v.AsArray()
		return encodeArray(buf, elems)
	case KindMap:
		pairs, _ := v.AsMap()
		return encodeMap(buf, pairs)
	case KindExt:
		ext, _ := v.AsExt()
		return encodeExt(buf, ext)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedValueKind, v.Kind())
	}
}

func encodeUint(buf *bytes.Buffer, n uint64) error {
	switch {
	case n <= fixIntMax:
		buf.WriteByte(byte(n))
	case n <= math.MaxUint8:
		buf.WriteByte(tagUInt8)
		buf.WriteByte(byte(n))
	case n <= math.MaxUint16:
		buf.WriteByte(tagUInt16)
		writeBE16(buf, uint16(n))
	case n <= maxUint32:
		buf.WriteByte(tagUInt32)
		writeBE32(buf, uint32(n))
	default:
		buf.WriteByte(tagUInt64)
		writeBE64(buf, n)
	}
	return nil
}

func encodeSint(buf *bytes.Buffer, n int64) error {
	switch {
	case n >= -32 && n < 0:
		buf.WriteByte(byte(n))
	case n >= math.MinInt8:
		buf.WriteByte(tagInt8)
		buf.WriteByte(byte(n))
	case n >= math.MinInt16:
		buf.WriteByte(tagInt16)
		writeBE16(buf, uint16(n))
	case n >= math.MinInt32:
		buf.WriteByte(tagInt32)
		writeBE32(buf, uint32(n))
	default:
		buf.WriteByte(tagInt64)
		writeBE64(buf, uint64(n))
	}
	return nil
}

func encodeFloat(buf *bytes.Buffer, f float64) error {
	buf.WriteByte(tagFloat64)
	writeBE64(buf, math.Float64bits(f))
	return nil
}

func encodeStr(buf *bytes.Buffer, s string) error {
	n := len(s)
	switch {
	case n <= 31:
		buf.WriteByte(byte(fixStrBase | n))
	case n <= math.MaxUint8:
		buf.WriteByte(tagStr8)
		buf.WriteByte(byte(n))
	case n <= math.MaxUint16:
		buf.WriteByte(tagStr16)
		writeBE16(buf, uint16(n))
	case uint64(n) <= maxUint32:
		buf.WriteByte(tagStr32)
		writeBE32(buf, uint32(n))
	default:
		return ErrValueTooLarge
	}
	buf.WriteString(s)
	return nil
}

func encodeBin(buf *bytes.Buffer, b []byte) error {
	n := len(b)
	switch {
	case n <= math.MaxUint8:
		buf.WriteByte(tagBin8)
		buf.WriteByte(byte(n))
	case n <= math.MaxUint16:
		buf.WriteByte(tagBin16)
		writeBE16(buf, uint16(n))
	case uint64(n) <= maxUint32:
		buf.WriteByte(tagBin32)
		writeBE32(buf, uint32(n))
	default:
		return ErrValueTooLarge
	}
	buf.Write(b)
	return nil
}

func encodeArray(buf *bytes.Buffer, elems []Value) error {
	n := len(elems)
	switch {
	case n <= 15:
		buf.WriteByte(byte(fixArrayBase | n))
	case n <= math.MaxUint16:
		buf.WriteByte(tagArray16)
		writeBE16(buf, uint16(n))
	case uint64(n) <= maxUint32:
		buf.WriteByte(tagArray32)
		writeBE32(buf, uint32(n))
	default:
		return ErrValueTooLarge
	}
	for i, elem := range elems {
		if err := encodeInto(buf, elem); err != nil {
			return fmt.Errorf("encoding array element %d: %w", i, err)
		}
	}
	return nil
}

func encodeMap(buf *bytes.Buffer, pairs []Pair) error {
	n := len(pairs)
	switch {
	case n <= 15:
		buf.WriteByte(byte(fixMapBase | n))
	case n <= math.MaxUint16:
		buf.WriteByte(tagMap16)
		writeBE16(buf, uint16(n))
	case uint64(n) <= maxUint32:
		buf.WriteByte(tagMap32)
		writeBE32(buf, uint32(n))
	default:
		return ErrValueTooLarge
	}
	for i, pair := range pairs {
		if err := encodeInto(buf, pair.Key); err != nil {
			return fmt.Errorf("encoding map key %d: %w", i, err)
		}
		if err := encodeInto(buf, pair.Value); err != nil {
			return fmt.Errorf("encoding map value %d: %w", i, err)
		}
	}
	return nil
}

func encodeExt(buf *bytes.Buffer, ext Ext) error {
	n := len(ext.Data)
	switch n {
	case 1:
		buf.WriteByte(tagFixExt1)
	case 2:
		buf.WriteByte(tagFixExt2)
	case 4:
		buf.WriteByte(tagFixExt4)
	case 8:
		buf.WriteByte(tagFixExt8)
	case 16:
		buf.WriteByte(tagFixExt16)
	default:
		switch {
		case n <= math.MaxUint8:
			buf.WriteByte(tagExt8)
			buf.WriteByte(byte(n))
		case n <= math.MaxUint16:
			buf.WriteByte(tagExt16)
			writeBE16(buf, uint16(n))
		case uint64(n) <= maxUint32:
			buf.WriteByte(tagExt32)
			writeBE32(buf, uint32(n))
		default:
			return ErrValueTooLarge
		}
	}
	buf.WriteByte(byte(ext.Type))
	buf.Write(ext.Data)
	return nil
}

func writeBE16(buf *bytes.Buffer, n uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], n)
	buf.Write(tmp[:])
}

func writeBE32(buf *bytes.Buffer, n uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], n)
	buf.Write(tmp[:])
}

func writeBE64(buf *bytes.Buffer, n uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], n)
	buf.Write(tmp[:])
}
