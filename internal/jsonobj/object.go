package jsonobj

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object that remembers the order of its keys.
// Values are kept as raw JSON so untouched fields are written back verbatim.
type Object struct {
	keys   []string
	values map[string]json.RawMessage
}

// Keys returns the object keys in document order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// Get returns the raw value stored under key
func (o *Object) Get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetString returns the string stored under key. A missing key or a JSON
// null reports ok=false; any other non-string value is an error.
func (o *Object) GetString(key string) (string, bool, error) {
	raw, ok := o.values[key]
	if !ok || isNull(raw) {
		return "", false, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, fmt.Errorf("field %q is not a string", key)
	}
	return s, true, nil
}

// SetRaw stores a raw JSON value. New keys are appended at the end.
func (o *Object) SetRaw(key string, value json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Set encodes value and stores it under key
func (o *Object) Set(key string, value any) error {
	raw, err := Encode(value)
	if err != nil {
		return fmt.Errorf("error encoding field %q: %w", key, err)
	}
	o.SetRaw(key, raw)
	return nil
}

// UnmarshalJSON decodes a JSON object keeping key order. For duplicate keys
// the last value wins and the first position is kept.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	o.keys = nil
	o.values = make(map[string]json.RawMessage)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("error decoding field %q: %w", key, err)
		}
		o.SetRaw(key, raw)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the object compactly in key order
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := Encode(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode marshals v without escaping HTML characters, so text such as
// "<" or "&" survives unchanged.
func Encode(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
