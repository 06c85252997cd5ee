// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedJSON holds the key order and raw values of a JSON object exactly as
// they appeared on disk. The catalog format's round-trip invariant (§8
// property 3) requires both group order and any field this package doesn't
// model itself (future stringUnit/localization keys) to survive a
// load-then-write cycle unchanged; encoding/json's map decoding loses key
// order, so this is a small hand-rolled object model instead of a struct.
//
// No library in the retrieval pack offers an order-preserving JSON object
// (gopkg.in/yaml.v3 has one for YAML, encoding/json does not); this is kept
// on the standard library for that reason.
type orderedJSON struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *orderedJSON) set(key string, raw json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

func (o *orderedJSON) get(key string) (json.RawMessage, bool) {
	raw, ok := o.values[key]
	return raw, ok
}

func (o *orderedJSON) delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// parseOrderedObject decodes a JSON object's top-level fields, preserving
// key order and leaving each value as a RawMessage for the caller to
// interpret or simply re-emit verbatim.
func parseOrderedObject(raw json.RawMessage) (orderedJSON, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return orderedJSON{}, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return orderedJSON{}, fmt.Errorf("catalog: expected JSON object, got %v", tok)
	}

	var o orderedJSON
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return o, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return o, fmt.Errorf("catalog: expected string object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return o, err
		}
		o.set(key, value)
	}

	if _, err := dec.Token(); err != nil { // consume closing '}'
		return o, err
	}

	return o, nil
}

// writeObject serializes a set of known fields (in the given order) plus
// any remaining fields in extra (appended after, in their original order)
// as a single JSON object.
func writeObject(buf *bytes.Buffer, known []fieldKV, extra orderedJSON) {
	buf.WriteByte('{')
	first := true

	for _, kv := range known {
		if kv.raw == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(buf, kv.key)
		buf.WriteByte(':')
		buf.Write(kv.raw)
	}

	for _, k := range extra.keys {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(buf, k)
		buf.WriteByte(':')
		buf.Write(extra.values[k])
	}

	buf.WriteByte('}')
}

type fieldKV struct {
	key string
	raw json.RawMessage
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func mustRaw(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
