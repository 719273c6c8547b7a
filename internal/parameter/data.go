package parameter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Data is an insertion-ordered mapping from parameter name to
// ParameterKind. Order is load-bearing: GET-path assembly walks the
// map in declaration order (see ascotgo/controller/request).
// Inserting a name that already exists is a no-op, mirroring the
// reference OutputMap's "last write does not move position, first
// write wins" semantics exercised by its duplicate-insert test.
type Data struct {
	keys   []string
	values map[string]ParameterKind
}

// NewData returns an empty Data.
func NewData() *Data {
	return &Data{values: map[string]ParameterKind{}}
}

// Add appends a (name, kind) pair. A duplicate name is ignored, keeping
// the first-inserted kind and position.
func (d *Data) Add(name string, kind ParameterKind) *Data {
	if _, exists := d.values[name]; exists {
		return d
	}
	d.keys = append(d.keys, name)
	d.values[name] = kind
	return d
}

// Get returns the kind declared for name, if any.
func (d *Data) Get(name string) (ParameterKind, bool) {
	k, ok := d.values[name]
	return k, ok
}

// Keys returns the parameter names in declaration order.
func (d *Data) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of declared parameters.
func (d *Data) Len() int { return len(d.keys) }

// IsEmpty reports whether no parameters are declared.
func (d *Data) IsEmpty() bool { return len(d.keys) == 0 }

// Range calls fn for every (name, kind) pair in declaration order,
// stopping early if fn returns false.
func (d *Data) Range(fn func(name string, kind ParameterKind) bool) {
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}

type namedKind struct {
	Name string        `json:"name"`
	Kind ParameterKind `json:"kind"`
}

// MarshalJSON renders Data as a JSON array of {name, kind} objects, in
// declaration order, preserving the order-sensitivity that a plain JSON
// object (whose key order most decoders do not guarantee) would lose.
func (d *Data) MarshalJSON() ([]byte, error) {
	items := make([]namedKind, 0, len(d.keys))
	for _, k := range d.keys {
		items = append(items, namedKind{Name: k, Kind: d.values[k]})
	}
	return json.Marshal(items)
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var items []namedKind
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&items); err != nil {
		return err
	}
	d.keys = nil
	d.values = map[string]ParameterKind{}
	for _, it := range items {
		d.Add(it.Name, it.Kind)
	}
	return nil
}

// Values is an insertion-ordered mapping from parameter name to
// ParameterValue, supplied by a caller at invocation time. Order is
// irrelevant for JSON-body dispatch but, when present, is used to
// preserve caller intent; GET-path assembly always walks the route's
// declared Data order instead (see spec: declaration order, not caller
// order, governs positional path segments).
type Values struct {
	keys   []string
	values map[string]ParameterValue
}

func NewValues() *Values {
	return &Values{values: map[string]ParameterValue{}}
}

func (v *Values) Set(name string, value ParameterValue) *Values {
	if _, exists := v.values[name]; !exists {
		v.keys = append(v.keys, name)
	}
	v.values[name] = value
	return v
}

func (v *Values) Get(name string) (ParameterValue, bool) {
	val, ok := v.values[name]
	return val, ok
}

func (v *Values) Len() int { return len(v.keys) }

func (v *Values) Range(fn func(name string, value ParameterValue) bool) {
	for _, k := range v.keys {
		if !fn(k, v.values[k]) {
			return
		}
	}
}

// ValidationError is returned by Check when a caller-supplied Values
// does not conform to a declared Data.
type ValidationError struct {
	Name string
	Msg  string
}

func (e *ValidationError) Error() string { return e.Msg }

// Check validates values against the declared parameter schema data,
// per spec §4.5: an undeclared name is rejected, and a declared name
// whose value shape disagrees with its kind's shape is rejected. Check
// performs no I/O and is always called before any request is
// dispatched.
func Check(data *Data, values *Values) error {
	var err error
	values.Range(func(name string, val ParameterValue) bool {
		kind, declared := data.Get(name)
		if !declared {
			err = &ValidationError{Name: name, Msg: fmt.Sprintf("%s does not exist", name)}
			return false
		}
		if kind.Shape() != val.Shape() {
			err = &ValidationError{Name: name, Msg: fmt.Sprintf("%s must be of type %s", name, kind.Shape())}
			return false
		}
		return true
	})
	return err
}
