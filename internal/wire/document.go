package wire

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Document is a parsed inbound frame. The transport parses each frame once
// and hands the document to the simulation loop; the per-message Deserialize
// functions validate it against their own shape.
type Document struct {
	Type   uint64
	fields map[string]json.RawMessage
}

// ParseDocument parses a raw frame into a Document. It only requires the
// frame to be a JSON object with a numeric "type" field; all other
// validation belongs to the target message type.
func ParseDocument(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing frame: %w", err)
	}

	raw, ok := fields["type"]
	if !ok {
		return nil, fmt.Errorf("frame has no type field")
	}

	var t uint64
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parsing type field: %w", err)
	}

	return &Document{Type: t, fields: fields}, nil
}

// Has reports whether the named field is present, regardless of its value.
func (d *Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// String returns the named field as a string, or "" when absent or not a
// string.
func (d *Document) String(key string) string {
	var v string
	d.decode(key, &v)
	return v
}

// Uint64 returns the named field as a uint64, or 0 when absent or not a
// number.
func (d *Document) Uint64(key string) uint64 {
	var v uint64
	d.decode(key, &v)
	return v
}

// Int64 returns the named field as an int64, or 0 when absent or not a
// number.
func (d *Document) Int64(key string) int64 {
	var v int64
	d.decode(key, &v)
	return v
}

// Bool returns the named field as a bool, or false when absent or not a
// bool.
func (d *Document) Bool(key string) bool {
	var v bool
	d.decode(key, &v)
	return v
}

func (d *Document) decode(key string, out any) bool {
	raw, ok := d.fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// requires reports whether every named field is present, warning about the
// first one missing.
func (d *Document) requires(name string, keys ...string) bool {
	for _, k := range keys {
		if !d.Has(k) {
			slog.Warn("deserialize failed, missing field", "message", name, "field", k)
			return false
		}
	}
	return true
}

// matches reports whether the document's discriminator is the expected one.
func (d *Document) matches(name string, t uint64) bool {
	if d.Type != t {
		slog.Warn("deserialize failed, wrong type", "message", name, "type", d.Type)
		return false
	}
	return true
}
