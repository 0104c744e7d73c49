package fixture

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/kbukum/fixturekit/collection"
	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/logger"
)

// DefaultPrimaryKey is the primary key column used unless configured.
const DefaultPrimaryKey = "id"

// Source is the raw tabular data behind a fixture.
// data.Table is the in-memory implementation.
type Source interface {
	RowCount() int
	Row(index int) (data.Row, bool)
	Value(index int, column string) (data.Value, bool)
}

// PostProcessFunc reshapes a row after defaults are applied and before
// hidden fields are removed. An error is returned to the caller unchanged.
type PostProcessFunc func(data.Row) (data.Row, error)

// Fixture produces test rows from a Source.
//
// Configuration (primary key, hidden fields, default override) applies to
// every later read. A Fixture is not safe for concurrent reconfiguration.
type Fixture struct {
	src         Source
	primaryKey  string
	hidden      []string
	defaults    data.Row
	postProcess PostProcessFunc
	delimiter   string
	log         *logger.Logger
}

// New creates a fixture over src.
func New(src Source, opts ...Option) *Fixture {
	f := &Fixture{
		src:        src,
		primaryKey: DefaultPrimaryKey,
		delimiter:  data.DefaultDelimiter,
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromRows creates a fixture over an in-memory table.
func FromRows(rows ...data.Row) *Fixture {
	return New(data.Table(rows))
}

// PrimaryKey returns the primary key column name.
func (f *Fixture) PrimaryKey() string { return f.primaryKey }

// SetPrimaryKey changes the primary key column used by ByPrimaryKey.
func (f *Fixture) SetPrimaryKey(name string) *Fixture {
	f.primaryKey = name
	f.log.Debug("primary key set", logger.Fields(logger.FieldColumn, name))
	return f
}

// SetHidden replaces the set of top-level fields removed from output.
func (f *Fixture) SetHidden(names ...string) *Fixture {
	f.hidden = slices.Clone(names)
	f.log.Debug("hidden fields set", logger.Fields("hidden", names))
	return f
}

// SetDefaultOverride replaces the override applied to every row before
// post-processing. Keys may be dotted paths.
func (f *Fixture) SetDefaultOverride(defaults data.Row) *Fixture {
	f.defaults = defaults
	f.log.Debug("default override set", logger.Fields(logger.FieldCount, defaults.Len()))
	return f
}

// RowCount returns the number of raw rows.
func (f *Fixture) RowCount() int { return f.src.RowCount() }

// Raw returns the untransformed row at index.
func (f *Fixture) Raw(index int) (data.Row, bool) {
	r, ok := f.src.Row(index)
	if !ok {
		f.log.Debug("row out of range", logger.Fields(logger.FieldIndex, index))
	}
	return r, ok
}

// AllRaw returns every untransformed row.
func (f *Fixture) AllRaw() data.Table {
	n := f.src.RowCount()
	out := make(data.Table, 0, n)
	for i := 0; i < n; i++ {
		if r, ok := f.src.Row(i); ok {
			out = append(out, r)
		}
	}
	return out
}

// Value returns the raw value of column in the row at index, or Null when
// either is absent.
func (f *Fixture) Value(column string, index int) data.Value {
	v, ok := f.src.Value(index, column)
	if !ok {
		return data.Null()
	}
	return v
}

// Get returns the transformed row at index. The chain always runs in this
// order: default override, post-process, hide, then override. Since the
// per-call override comes last it can bring back a hidden field.
func (f *Fixture) Get(override data.Row, index int) (data.Row, bool, error) {
	raw, ok := f.Raw(index)
	if !ok {
		return data.Row{}, false, nil
	}
	r, err := f.transform(raw, override)
	if err != nil {
		return data.Row{}, false, err
	}
	return r, true, nil
}

// ByPrimaryKey returns the first row whose primary key equals id, passed
// through the transform chain. id is converted with data.Of and compared
// strictly, so 2 does not match "2".
func (f *Fixture) ByPrimaryKey(id any, override data.Row) (data.Row, bool, error) {
	key, err := data.Of(id)
	if err != nil {
		return data.Row{}, false, errors.InvalidInput("id", err.Error())
	}
	matched, err := f.match(data.Row{}.Set(f.primaryKey, key))
	if err != nil {
		return data.Row{}, false, err
	}
	raw, ok := matched.First()
	if !ok {
		f.log.Debug("primary key not found", logger.Fields(logger.FieldColumn, f.primaryKey, "id", key.String()))
		return data.Row{}, false, nil
	}
	r, err := f.transform(raw, override)
	if err != nil {
		return data.Row{}, false, err
	}
	return r, true, nil
}

// Where returns every row matching filters, each passed through the
// transform chain. Filters are an AND of exact, typed equality checks on
// top-level columns; an empty set matches all rows. A row lacking a
// filtered column fails the call with ErrCodeMissingColumn.
func (f *Fixture) Where(filters, override data.Row) (data.Table, error) {
	matched, err := f.match(filters)
	if err != nil {
		return nil, err
	}
	out, err := matched.Map(func(_ collection.Key, r data.Row) (data.Row, error) {
		return f.transform(r, override)
	})
	if err != nil {
		return nil, err
	}
	return data.Table(out.Values()), nil
}

// All returns every row through the transform chain.
func (f *Fixture) All(override data.Row) (data.Table, error) {
	return f.Where(data.Row{}, override)
}

// Values returns the raw values of columns from the rows matching filters,
// in row order. Rows lacking a requested column contribute nothing to it.
func (f *Fixture) Values(filters data.Row, columns ...string) (map[string][]data.Value, error) {
	matched, err := f.match(filters)
	if err != nil {
		return nil, err
	}
	return collection.ColumnValues(matched, columns...), nil
}

// Rows returns the raw rows as a collection keyed by row number.
func (f *Fixture) Rows() *collection.Collection[data.Row] {
	return collection.New(f.AllRaw()...)
}

func (f *Fixture) match(filters data.Row) (*collection.Collection[data.Row], error) {
	rows := f.Rows()
	if filters.IsEmpty() {
		return rows, nil
	}
	matched, err := rows.Filter(func(k collection.Key, r data.Row) (bool, error) {
		for col, want := range filters.All() {
			got, ok := r.Get(col)
			if !ok {
				idx, _ := k.Int()
				return false, errors.MissingColumn(col, idx)
			}
			if !got.Equal(want) {
				return false, nil
			}
		}
		return true, nil
	})
	if err != nil {
		f.log.Debug("filter failed", logger.ErrorFields("match", err))
		return nil, err
	}
	return matched, nil
}

func (f *Fixture) transform(raw, override data.Row) (data.Row, error) {
	r := raw.Overlay(f.defaults, f.delimiter)
	if f.postProcess != nil {
		var err error
		if r, err = f.postProcess(r); err != nil {
			return data.Row{}, err
		}
	}
	r = r.Delete(f.hidden...).Overlay(override, f.delimiter)
	if f.log.Enabled(zerolog.TraceLevel) {
		f.log.Trace("row transformed", logger.Fields(logger.FieldCount, r.Len(), "override", override.Len()))
	}
	return r, nil
}
