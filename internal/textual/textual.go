// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

// Package textual is the JSON-style textual representation used at the
// boundary between the msgpack core codec and the command-line front-end.
// It is deliberately kept out of the core: the core operates purely on
// Values and byte buffers, per the format's scope.
package textual

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/creachadair/msgpack"
)

// extTypeKey and extDataKey name the sentinel object shape used to render
// an Ext value through JSON, which has no native binary or extension
// concept. binKey does the same for Bin. These shapes round-trip
// losslessly; a plain json.Marshal of bytes (as base64 in a plain string)
// would be ambiguous against an ordinary string value, which is why a
// tagged object is used instead.
const (
	extTypeKey = "__ext_type__"
	extDataKey = "__ext_data__"
	binKey     = "__bin__"
)

// FromJSON parses a JSON document into a msgpack.Value. Plain JSON null,
// bool, string, array, and object map to Nil, Bool, Str, Array, and Map
// respectively. JSON numbers map to UInt when non-negative and integral,
// SInt when negative and integral, and Float otherwise. Objects shaped
// like {"__bin__": "<hex>"} or {"__ext_type__": N, "__ext_data__": "<hex>"}
// are recognized as the escape hatches for Bin and Ext values.
func FromJSON(data []byte) (msgpack.Value, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return msgpack.Value{}, fmt.Errorf("parsing json: %w", err)
	}
	return fromAny(raw)
}

func fromAny(raw interface{}) (msgpack.Value, error) {
	switch t := raw.(type) {
	case nil:
		return msgpack.Nil, nil
	case bool:
		return msgpack.Bool(t), nil
	case json.Number:
		return numberToValue(t)
	case string:
		return msgpack.Str(t), nil
	case []interface{}:
		elems := make([]msgpack.Value, len(t))
		for i, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return msgpack.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = v
		}
		return msgpack.Array(elems), nil
	case map[string]interface{}:
		if v, ok, err := fromSentinelObject(t); ok || err != nil {
			return v, err
		}
		pairs := make([]msgpack.Pair, 0, len(t))
		for k, val := range t {
			v, err := fromAny(val)
			if err != nil {
				return msgpack.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			pairs = append(pairs, msgpack.Pair{Key: msgpack.Str(k), Value: v})
		}
		return msgpack.Map(pairs), nil
	default:
		return msgpack.Value{}, fmt.Errorf("unsupported json value of type %T", raw)
	}
}

func fromSentinelObject(obj map[string]interface{}) (msgpack.Value, bool, error) {
	if raw, ok := obj[binKey]; ok && len(obj) == 1 {
		s, ok := raw.(string)
		if !ok {
			return msgpack.Value{}, true, fmt.Errorf("%s must be a hex string", binKey)
		}
		data, err := hex.DecodeString(s)
		if err != nil {
			return msgpack.Value{}, true, fmt.Errorf("decoding %s: %w", binKey, err)
		}
		return msgpack.Bin(data), true, nil
	}
	if _, ok := obj[extTypeKey]; ok {
		if len(obj) != 2 {
			return msgpack.Value{}, true, fmt.Errorf("%s object must have exactly %s and %s", extTypeKey, extTypeKey, extDataKey)
		}
		typNum, ok := obj[extTypeKey].(json.Number)
		if !ok {
			return msgpack.Value{}, true, fmt.Errorf("%s must be a number", extTypeKey)
		}
		typ, err := typNum.Int64()
		if err != nil || typ < -128 || typ > 127 {
			return msgpack.Value{}, true, fmt.Errorf("%s out of signed 8-bit range", extTypeKey)
		}
		dataStr, ok := obj[extDataKey].(string)
		if !ok {
			return msgpack.Value{}, true, fmt.Errorf("%s must be a hex string", extDataKey)
		}
		data, err := hex.DecodeString(dataStr)
		if err != nil {
			return msgpack.Value{}, true, fmt.Errorf("decoding %s: %w", extDataKey, err)
		}
		return msgpack.MakeExt(int8(typ), data), true, nil
	}
	return msgpack.Value{}, false, nil
}

func numberToValue(n json.Number) (msgpack.Value, error) {
	if i, err := n.Int64(); err == nil {
		return msgpack.Int(i), nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return msgpack.UInt(u), nil
	}
	f, err := n.Float64()
	if err != nil {
		return msgpack.Value{}, fmt.Errorf("parsing number %q: %w", n, err)
	}
	return msgpack.Float(f), nil
}

// ToJSON renders a msgpack.Value as a JSON document. Bin and Ext are
// rendered via the sentinel object shapes documented on FromJSON, so that
// they survive a round trip through the CLI. Map key order is not kept,
// non-string map keys come back as Str, and a Float with an integral value
// is written as a plain JSON integer.
func ToJSON(v msgpack.Value) ([]byte, error) {
	rendered, err := toAny(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rendered)
}

func toAny(v msgpack.Value) (interface{}, error) {
	switch v.Kind() {
	case msgpack.KindNil:
		return nil, nil
	case msgpack.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case msgpack.KindUInt:
		n, _ := v.AsUInt()
		return n, nil
	case msgpack.KindSInt:
		n, _ := v.AsSInt()
		return n, nil
	case msgpack.KindFloat:
		f, _ := v.AsFloat()
		return f, nil
	case msgpack.KindStr:
		s, _ := v.AsStr()
		return s, nil
	case msgpack.KindBin:
		b, _ := v.AsBin()
		return map[string]interface{}{binKey: hex.EncodeToString(b)}, nil
	case msgpack.KindArray:
		elems, _ := v.AsArray()
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			any, err := toAny(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = any
		}
		return out, nil
	case msgpack.KindMap:
		pairs, _ := v.AsMap()
		out := make(map[string]interface{}, len(pairs))
		for _, p := range pairs {
			key, ok := p.Key.AsStr()
			if !ok {
				// JSON object keys must be strings; a non-string key is
				// rendered as its own JSON text (UInt 1 becomes "1").
				// The key's kind is not kept, and a rendered key equal
				// to another key of the same map overwrites that entry.
				rendered, err := ToJSON(p.Key)
				if err != nil {
					return nil, fmt.Errorf("rendering non-string map key: %w", err)
				}
				key = string(rendered)
			}
			val, err := toAny(p.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = val
		}
		return out, nil
	case msgpack.KindExt:
		ext, _ := v.AsExt()
		return map[string]interface{}{
			extTypeKey: int64(ext.Type),
			extDataKey: hex.EncodeToString(ext.Data),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %v", v.Kind())
	}
}
