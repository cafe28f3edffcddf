package value

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered string-keyed mapping. Setting an existing key
// replaces its value in place without moving it.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

// Set stores v under key and returns the object so calls can be chained.
func (o *Object) Set(key string, v Value) *Object {
	o.m.Set(key, v)
	return o
}

// Get returns the value stored under key, null included.
func (o *Object) Get(key string) (Value, bool) {
	return o.m.Get(key)
}

// Lookup is Get that also treats an explicit null as missing.
func (o *Object) Lookup(key string) (Value, bool) {
	v, ok := o.m.Get(key)
	if !ok || v.IsNull() {
		return Value{}, false
	}
	return v, true
}

// GetFold finds the first key equal to name under Unicode case folding and
// returns the key as it was spelled in the document.
func (o *Object) GetFold(name string) (string, Value, bool) {
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, name) {
			return pair.Key, pair.Value, true
		}
	}
	return "", Value{}, false
}

// Len returns the number of entries. A nil object is empty.
func (o *Object) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Each(func(k string, _ Value) {
		keys = append(keys, k)
	})
	return keys
}

// Values returns the values in key order.
func (o *Object) Values() []Value {
	values := make([]Value, 0, o.Len())
	o.Each(func(_ string, v Value) {
		values = append(values, v)
	})
	return values
}

// Each calls fn for every entry in insertion order.
func (o *Object) Each(fn func(key string, v Value)) {
	if o == nil || o.m == nil {
		return
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Has reports whether key is present, null or not.
func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

// Equal reports whether both objects hold equal values under the same keys
// in the same order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o.Len() == 0 {
		return true
	}
	a, b := o.m.Oldest(), other.m.Oldest()
	for a != nil && b != nil {
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return a == nil && b == nil
}
