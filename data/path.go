package data

import "strings"

// DefaultDelimiter separates segments of a dotted field path.
const DefaultDelimiter = "."

// Path is a field path split into segments.
type Path []string

// ParsePath splits s on delim. An empty delimiter yields a single segment.
func ParsePath(s, delim string) Path {
	if delim == "" {
		return Path{s}
	}
	return strings.Split(s, delim)
}

// String joins the path with the default delimiter.
func (p Path) String() string { return strings.Join(p, DefaultDelimiter) }

// GetPath reads the value at path through nested maps.
func (r Row) GetPath(path Path) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}
	cur := r
	for i, seg := range path {
		v, ok := cur.Get(seg)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if cur, ok = v.AsMap(); !ok {
			return Value{}, false
		}
	}
	return Value{}, false
}

// SetPath returns a new row with v written at path. Missing intermediate
// segments are created as empty maps. An intermediate segment holding
// anything other than a map is discarded and replaced by a fresh map, so
// overriding "a.b" where a is a scalar yields a == {b: v}. Siblings along
// the path are carried over unchanged.
func (r Row) SetPath(path Path, v Value) Row {
	switch len(path) {
	case 0:
		return r
	case 1:
		return r.Set(path[0], v)
	}
	var child Row
	if cur, ok := r.Get(path[0]); ok {
		child, _ = cur.AsMap()
	}
	return r.Set(path[0], Map(child.SetPath(path[1:], v)))
}

// Overlay writes every field of override onto r, in override's field order.
// Override keys are dotted paths split on delim.
func (r Row) Overlay(override Row, delim string) Row {
	out := r
	for k, v := range override.All() {
		out = out.SetPath(ParsePath(k, delim), v)
	}
	return out
}

// Flatten turns nested maps into dotted keys joined with delim, keeping
// field order. Lists and scalars are leaves. An empty nested map is kept as
// a leaf so it still overrides.
func (r Row) Flatten(delim string) Row {
	out := Row{}
	r.flattenInto(&out, "", delim)
	return out
}

func (r Row) flattenInto(out *Row, prefix, delim string) {
	for k, v := range r.All() {
		key := k
		if prefix != "" {
			key = prefix + delim + k
		}
		if m, ok := v.AsMap(); ok && !m.IsEmpty() {
			m.flattenInto(out, key, delim)
			continue
		}
		*out = out.Set(key, v)
	}
}
