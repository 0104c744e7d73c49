// Package postprocess provides reusable fixture post-process hooks.
//
// A hook reshapes a row between the default override and field hiding,
// typically to turn stored columns into the payload shape a test sends:
//
//	fx := fixture.New(users, fixture.WithPostProcess(postprocess.Chain(
//	    postprocess.SplitName("name", "first_name", "last_name"),
//	    postprocess.UUID("uuid", postprocess.NamespaceFixture, "id"),
//	)))
package postprocess

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/fixture"
)

// NamespaceFixture is the default namespace for UUID hooks.
var NamespaceFixture = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kbukum/fixturekit"))

// Chain runs fns left to right. The first error stops the chain and is
// returned unchanged.
func Chain(fns ...fixture.PostProcessFunc) fixture.PostProcessFunc {
	return func(r data.Row) (data.Row, error) {
		for _, fn := range fns {
			var err error
			if r, err = fn(r); err != nil {
				return data.Row{}, err
			}
		}
		return r, nil
	}
}

// Rename moves field from to field to. A missing source field is a no-op.
// The renamed field is appended after the remaining fields.
func Rename(from, to string) fixture.PostProcessFunc {
	return func(r data.Row) (data.Row, error) {
		v, ok := r.Get(from)
		if !ok {
			return r, nil
		}
		return r.Delete(from).Set(to, v), nil
	}
}

// SplitName splits a full name on its first run of whitespace into first
// and last. The source field is kept. A single word leaves last empty.
func SplitName(field, first, last string) fixture.PostProcessFunc {
	return func(r data.Row) (data.Row, error) {
		v, ok := r.Get(field)
		if !ok || v.IsNull() {
			return r, nil
		}
		s, ok := v.AsString()
		if !ok {
			return data.Row{}, errors.InvalidInput(field, "expected a string, got "+v.Kind().String())
		}
		parts := strings.Fields(s)
		var f, l string
		if len(parts) > 0 {
			f = parts[0]
			l = strings.Join(parts[1:], " ")
		}
		return r.Set(first, data.String(f)).Set(last, data.String(l)), nil
	}
}

// Compute sets field to the value fn derives from the row.
func Compute(field string, fn func(data.Row) (data.Value, error)) fixture.PostProcessFunc {
	return func(r data.Row) (data.Row, error) {
		v, err := fn(r)
		if err != nil {
			return data.Row{}, err
		}
		return r.Set(field, v), nil
	}
}

// UUID sets field to a name-based (version 5) UUID derived from the values
// of the from fields, so the same row always gets the same id. Missing
// fields contribute "null".
func UUID(field string, namespace uuid.UUID, from ...string) fixture.PostProcessFunc {
	return Compute(field, func(r data.Row) (data.Value, error) {
		parts := make([]string, len(from))
		for i, name := range from {
			v, _ := r.Get(name)
			parts[i] = v.String()
		}
		id := uuid.NewSHA1(namespace, []byte(strings.Join(parts, "\x1f")))
		return data.String(id.String()), nil
	})
}
