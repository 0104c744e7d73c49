package collection

import "github.com/kbukum/fixturekit/data"

// Column extracts the named field from every row. Rows without the field
// are skipped.
//
// Without indexKey the result is keyed 0..n-1. With indexKey each value is
// keyed by that row's indexKey field: Int values become integer keys and
// anything else a name key built from Value.String. When two rows share an
// index key the later value overwrites the earlier one, which keeps its
// position. Rows lacking indexKey get the next free integer key.
func Column(c *Collection[data.Row], name string, indexKey ...string) *Collection[data.Value] {
	out := &Collection[data.Value]{entries: make([]Entry[data.Value], 0, c.Count())}
	for _, r := range c.All() {
		v, ok := r.Get(name)
		if !ok {
			continue
		}
		if len(indexKey) == 0 {
			out.put(Index(out.next), v)
			continue
		}
		kv, ok := r.Get(indexKey[0])
		if !ok {
			out.put(Index(out.next), v)
			continue
		}
		out.put(KeyOf(kv), v)
	}
	return out
}

// ColumnValues extracts several columns at once. Each name maps to the
// values of that column in row order; rows lacking a column contribute
// nothing to it.
func ColumnValues(c *Collection[data.Row], names ...string) map[string][]data.Value {
	out := make(map[string][]data.Value, len(names))
	for _, name := range names {
		out[name] = Column(c, name).Values()
	}
	return out
}

// KeyOf converts a field value into a collection key.
func KeyOf(v data.Value) Key {
	if i, ok := v.AsInt(); ok {
		return Index(int(i))
	}
	return Name(v.String())
}
