package envfile

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Values is the result of a parse: keys in the order they were first
// assigned, each holding its last assigned value.
type Values struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewValues returns an empty Values.
func NewValues() *Values {
	return &Values{m: orderedmap.New[string, string]()}
}

// ValuesOf builds a Values from key-value pairs given as alternating
// arguments. A trailing key without a value is ignored.
func ValuesOf(kv ...string) *Values {
	v := NewValues()
	for i := 0; i+1 < len(kv); i += 2 {
		v.set(kv[i], kv[i+1])
	}
	return v
}

func (v *Values) set(key, value string) {
	v.m.Set(key, value)
}

// Get returns the value for key and whether the key was assigned.
func (v *Values) Get(key string) (string, bool) {
	return v.m.Get(key)
}

// Len returns the number of distinct keys.
func (v *Values) Len() int {
	return v.m.Len()
}

// Keys returns the keys in definition order.
func (v *Values) Keys() []string {
	keys := make([]string, 0, v.m.Len())
	for p := v.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Each calls fn for every pair in definition order.
func (v *Values) Each(fn func(key, value string)) {
	for p := v.m.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Map copies the pairs into a plain map.
func (v *Values) Map() map[string]string {
	out := make(map[string]string, v.m.Len())
	v.Each(func(key, value string) {
		out[key] = value
	})
	return out
}

// MarshalJSON encodes v as a JSON object with keys in definition order.
func (v *Values) MarshalJSON() ([]byte, error) {
	return v.m.MarshalJSON()
}
