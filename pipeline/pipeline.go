package pipeline

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next() (T, bool, error)
}

// Pipeline represents a lazy, pull-based sequence.
// No work happens until values are pulled via Collect or Iter.
type Pipeline[T any] struct {
	create func() Iterator[T]
}

// --- Constructors ---

// FromSlice creates a pipeline over items. The slice is read, never written.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func() Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// --- Terminals ---

// Collect runs the pipeline and returns all values as a slice. On error the
// values produced before the failure are returned alongside it.
func Collect[T any](p *Pipeline[T]) ([]T, error) {
	iter := p.create()
	result := make([]T, 0)
	for {
		val, ok, err := iter.Next()
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// Iter returns a fresh Iterator for this pipeline.
func (p *Pipeline[T]) Iter() Iterator[T] {
	return p.create()
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next() (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}
