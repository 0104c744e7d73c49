// Package pipeline provides lazy, pull-based sequence operators.
//
// A Pipeline does no work until values are pulled via Collect or an
// Iterator. Each stage pulls from the previous one on demand, so Take can
// stop a chain of Map and Filter stages after the first match without
// evaluating the rest of the source.
//
// Pipelines are synchronous: there are no goroutines, channels or
// cancellation points. A stage function that returns an error stops the
// pipeline and the error is handed to the caller exactly as returned.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Take: stop after n values
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(src, func(n int) (int, error) { return n * 2, nil })
//	evens := pipeline.Filter(doubled, func(n int) (bool, error) { return n > 4, nil })
//	results, err := pipeline.Collect(evens)
//
// Every call to Collect or Iter re-reads the source, so a Pipeline is a
// recipe rather than a cached result.
package pipeline
