package restchain

import (
	"encoding/json"
)

// Value is a navigable view over a JSON document. Member access mirrors
// the document structure: Get descends into objects, Index into arrays,
// and the typed accessors return the leaf value or the type's zero value
// when the shape does not match.
type Value struct {
	data   interface{}
	exists bool
}

// NewValue wraps an already decoded JSON value.
func NewValue(data interface{}) Value {
	return Value{data: data, exists: true}
}

// ParseValue decodes raw JSON into a Value.
func ParseValue(raw []byte) (Value, error) {
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return Value{}, err
	}
	return Value{data: data, exists: true}, nil
}

// Exists reports whether the value is present in the document. Missing
// object keys and out-of-range indexes yield a non-existent Value.
func (v Value) Exists() bool {
	return v.exists
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.exists && v.data == nil
}

// Get descends into an object member by key.
func (v Value) Get(key string) Value {
	obj, ok := v.data.(map[string]interface{})
	if !ok {
		return Value{}
	}
	child, ok := obj[key]
	if !ok {
		return Value{}
	}
	return Value{data: child, exists: true}
}

// Index descends into an array element.
func (v Value) Index(i int) Value {
	arr, ok := v.data.([]interface{})
	if !ok || i < 0 || i >= len(arr) {
		return Value{}
	}
	return Value{data: arr[i], exists: true}
}

// Len returns the length of an array or object, 0 for anything else.
func (v Value) Len() int {
	switch t := v.data.(type) {
	case []interface{}:
		return len(t)
	case map[string]interface{}:
		return len(t)
	}
	return 0
}

// Keys returns the member names of an object, nil for anything else.
// Order is unspecified.
func (v Value) Keys() []string {
	obj, ok := v.data.(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return keys
}

// String returns the string value, or "" if the value is not a string.
func (v Value) String() string {
	s, _ := v.data.(string)
	return s
}

// Float returns the numeric value, or 0 if the value is not a number.
func (v Value) Float() float64 {
	f, _ := v.data.(float64)
	return f
}

// Int returns the numeric value truncated to int64, or 0 if the value is
// not a number.
func (v Value) Int() int64 {
	return int64(v.Float())
}

// Bool returns the boolean value, or false if the value is not a bool.
func (v Value) Bool() bool {
	b, _ := v.data.(bool)
	return b
}

// Interface returns the underlying decoded value: map[string]interface{},
// []interface{}, string, float64, bool or nil.
func (v Value) Interface() interface{} {
	return v.data
}

// Decode unmarshals the value into target, which must be a pointer.
func (v Value) Decode(target interface{}) error {
	raw, err := json.Marshal(v.data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

// MarshalJSON renders the value back to JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.data)
}
