package pipeline

// Map transforms each value using fn.
func Map[I, O any](p *Pipeline[I], fn func(I) (O, error)) *Pipeline[O] {
	return &Pipeline[O]{
		create: func() Iterator[O] {
			return &mapIter[I, O]{source: p.create(), fn: fn}
		},
	}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](p *Pipeline[T], fn func(T) (bool, error)) *Pipeline[T] {
	return &Pipeline[T]{
		create: func() Iterator[T] {
			return &filterIter[T]{source: p.create(), fn: fn}
		},
	}
}

// Take yields at most n values and then stops pulling from the source.
func Take[T any](p *Pipeline[T], n int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func() Iterator[T] {
			return &takeIter[T]{source: p.create(), remaining: n}
		},
	}
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(I) (O, error)
}

func (it *mapIter[I, O]) Next() (result O, ok bool, err error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) (bool, error)
}

func (it *filterIter[T]) Next() (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		keep, err := it.fn(val)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next() (result T, ok bool, err error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}
