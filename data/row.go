package data

import (
	"fmt"
	"iter"
	"strings"
)

// Row is an insertion-ordered mapping from field name to Value.
//
// Rows are values: Set, Delete and SetPath return a new Row and leave the
// receiver untouched. The zero Row is empty and ready to use.
type Row struct {
	keys []string
	vals map[string]Value
}

// Make builds a row from alternating key/value pairs. Keys must be strings
// and values anything Of accepts. It panics otherwise, which makes it
// suitable for literals in tests and examples.
//
//	data.Make("id", 1, "role", "admin")
func Make(kvs ...any) Row {
	if len(kvs)%2 != 0 {
		panic(fmt.Sprintf("data.Make: odd number of arguments (%d)", len(kvs)))
	}
	r := Row{keys: make([]string, 0, len(kvs)/2), vals: make(map[string]Value, len(kvs)/2)}
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic(fmt.Sprintf("data.Make: key at position %d is %T, not string", i, kvs[i]))
		}
		v, err := Of(kvs[i+1])
		if err != nil {
			panic(fmt.Sprintf("data.Make: field %q: %v", key, err))
		}
		if _, exists := r.vals[key]; !exists {
			r.keys = append(r.keys, key)
		}
		r.vals[key] = v
	}
	return r
}

// Len returns the number of fields.
func (r Row) Len() int { return len(r.keys) }

// IsEmpty reports whether the row has no fields.
func (r Row) IsEmpty() bool { return len(r.keys) == 0 }

// Keys returns the field names in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Has reports whether the row has a field called name.
func (r Row) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Get returns the value of the named field.
func (r Row) Get(name string) (Value, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// All iterates fields in insertion order.
func (r Row) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range r.keys {
			if !yield(k, r.vals[k]) {
				return
			}
		}
	}
}

// Set returns a copy of r with name set to v. An existing field keeps its
// position; a new field is appended.
func (r Row) Set(name string, v Value) Row {
	out := r.clone(1)
	if _, exists := out.vals[name]; !exists {
		out.keys = append(out.keys, name)
	}
	out.vals[name] = v
	return out
}

// Delete returns a copy of r without the named fields.
func (r Row) Delete(names ...string) Row {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if r.Has(n) {
			drop[n] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return r
	}
	out := Row{keys: make([]string, 0, len(r.keys)), vals: make(map[string]Value, len(r.vals))}
	for _, k := range r.keys {
		if _, gone := drop[k]; gone {
			continue
		}
		out.keys = append(out.keys, k)
		out.vals[k] = r.vals[k]
	}
	return out
}

// Equal reports whether r and o hold the same fields with equal values.
// Field order is ignored.
func (r Row) Equal(o Row) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for k, v := range r.vals {
		ov, ok := o.vals[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Map returns the native Go form of the row.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.vals[k].Interface()
	}
	return out
}

// String renders the row as {k:v ...} in field order.
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(r.vals[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// clone copies the row's top level. Nested rows are shared, which is safe
// because no Row is ever modified after construction.
func (r Row) clone(extra int) Row {
	out := Row{
		keys: make([]string, len(r.keys), len(r.keys)+extra),
		vals: make(map[string]Value, len(r.vals)+extra),
	}
	copy(out.keys, r.keys)
	for k, v := range r.vals {
		out.vals[k] = v
	}
	return out
}
