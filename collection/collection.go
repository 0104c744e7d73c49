package collection

import (
	"iter"
	"strconv"

	"github.com/kbukum/fixturekit/pipeline"
)

// Key addresses an entry: either an integer index or a string name.
type Key struct {
	name  string
	index int
	named bool
}

// Index returns an integer key.
func Index(i int) Key { return Key{index: i} }

// Name returns a string key.
func Name(s string) Key { return Key{name: s, named: true} }

// Int returns the integer held by k.
func (k Key) Int() (int, bool) { return k.index, !k.named }

// Name returns the string held by k.
func (k Key) Name() (string, bool) { return k.name, k.named }

func (k Key) String() string {
	if k.named {
		return strconv.Quote(k.name)
	}
	return strconv.Itoa(k.index)
}

// Entry is one keyed element of a collection.
type Entry[T any] struct {
	Key   Key
	Value T
}

// Collection is an immutable ordered sequence of keyed values.
//
// Every transformation returns a new Collection with its own backing slice,
// so holding on to an older instance is always safe.
type Collection[T any] struct {
	entries []Entry[T]
	next    int
}

// New creates a collection keyed 0..len(items)-1.
func New[T any](items ...T) *Collection[T] {
	entries := make([]Entry[T], len(items))
	for i, item := range items {
		entries[i] = Entry[T]{Key: Index(i), Value: item}
	}
	return &Collection[T]{entries: entries, next: len(items)}
}

// FromEntries creates a collection from keyed entries. A repeated key
// overwrites the earlier value in place.
func FromEntries[T any](entries ...Entry[T]) *Collection[T] {
	c := &Collection[T]{entries: make([]Entry[T], 0, len(entries))}
	for _, e := range entries {
		c.put(e.Key, e.Value)
	}
	return c
}

// Map applies fn to every entry, preserving keys, order and count. The
// first error fn returns is handed back unchanged.
func (c *Collection[T]) Map(fn func(Key, T) (T, error)) (*Collection[T], error) {
	p := pipeline.Map(pipeline.FromSlice(c.entries), func(e Entry[T]) (Entry[T], error) {
		v, err := fn(e.Key, e.Value)
		if err != nil {
			return Entry[T]{}, err
		}
		return Entry[T]{Key: e.Key, Value: v}, nil
	})
	entries, err := pipeline.Collect(p)
	if err != nil {
		return nil, err
	}
	return &Collection[T]{entries: entries, next: c.next}, nil
}

// Filter keeps the entries for which fn returns true. Surviving entries
// keep their original keys and relative order.
func (c *Collection[T]) Filter(fn func(Key, T) (bool, error)) (*Collection[T], error) {
	p := pipeline.Filter(pipeline.FromSlice(c.entries), func(e Entry[T]) (bool, error) {
		return fn(e.Key, e.Value)
	})
	entries, err := pipeline.Collect(p)
	if err != nil {
		return nil, err
	}
	return &Collection[T]{entries: entries, next: c.next}, nil
}

// Take keeps the first n entries with their keys. A negative n keeps none.
func (c *Collection[T]) Take(n int) *Collection[T] {
	// FromSlice never fails, so neither does Collect.
	entries, _ := pipeline.Collect(pipeline.Take(pipeline.FromSlice(c.entries), n))
	return &Collection[T]{entries: entries, next: c.next}
}

// First returns the first value in current order, or false when empty.
func (c *Collection[T]) First() (T, bool) {
	if len(c.entries) == 0 {
		var zero T
		return zero, false
	}
	return c.entries[0].Value, true
}

// Count returns the number of entries.
func (c *Collection[T]) Count() int { return len(c.entries) }

// Has reports whether an entry with key k exists.
func (c *Collection[T]) Has(k Key) bool { return c.find(k) >= 0 }

// Get returns the value stored under k.
func (c *Collection[T]) Get(k Key) (T, bool) {
	if i := c.find(k); i >= 0 {
		return c.entries[i].Value, true
	}
	var zero T
	return zero, false
}

// Set returns a copy with v stored under k. An existing entry is replaced
// in place; otherwise the entry is appended.
func (c *Collection[T]) Set(k Key, v T) *Collection[T] {
	out := c.clone(1)
	out.put(k, v)
	return out
}

// Append returns a copy with v added under the next free integer key.
func (c *Collection[T]) Append(v T) *Collection[T] {
	return c.Set(Index(c.next), v)
}

// Remove returns a copy without the entry stored under k.
func (c *Collection[T]) Remove(k Key) *Collection[T] {
	i := c.find(k)
	if i < 0 {
		return c.clone(0)
	}
	out := &Collection[T]{entries: make([]Entry[T], 0, len(c.entries)-1), next: c.next}
	out.entries = append(out.entries, c.entries[:i]...)
	out.entries = append(out.entries, c.entries[i+1:]...)
	return out
}

// All iterates (key, value) pairs in current order.
func (c *Collection[T]) All() iter.Seq2[Key, T] {
	return func(yield func(Key, T) bool) {
		for _, e := range c.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns the keys in current order.
func (c *Collection[T]) Keys() []Key {
	out := make([]Key, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Key
	}
	return out
}

// Values returns the values in current order.
func (c *Collection[T]) Values() []T {
	out := make([]T, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Value
	}
	return out
}

func (c *Collection[T]) find(k Key) int {
	for i, e := range c.entries {
		if e.Key == k {
			return i
		}
	}
	return -1
}

// put writes in place and is only called on collections nobody else holds.
func (c *Collection[T]) put(k Key, v T) {
	if i := c.find(k); i >= 0 {
		c.entries[i].Value = v
		return
	}
	c.entries = append(c.entries, Entry[T]{Key: k, Value: v})
	if idx, ok := k.Int(); ok && idx >= c.next {
		c.next = idx + 1
	}
}

func (c *Collection[T]) clone(extra int) *Collection[T] {
	entries := make([]Entry[T], len(c.entries), len(c.entries)+extra)
	copy(entries, c.entries)
	return &Collection[T]{entries: entries, next: c.next}
}
