package entities

import (
	"bytes"
	"encoding/json"
)

// Record is a semi-structured JSON object that remembers the order in which
// its keys were first set.
//
// Supported value types:
//   - nil, bool, string, int64, float64, time.Time
//   - *Record for nested objects
//   - []any for arrays (elements use the same value types)
//
// Only a handful of keys (order_id, order_timestamp, customer, payment, items,
// quantity, unit_price, order_total) carry meaning; everything else passes through.

type Record struct {
	keys   []string
	values map[string]any
}

func NewRecord() *Record {
	return &Record{values: map[string]any{}}
}

// Set stores v under key. Re-setting an existing key keeps its original position.
func (r *Record) Set(key string, v any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone returns a shallow copy; nested records and slices are shared.
func (r *Record) Clone() *Record {
	out := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// MarshalJSON writes the object with its keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
