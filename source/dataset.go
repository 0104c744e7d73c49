package source

import (
	"slices"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
)

// Dataset is an ordered set of named tables.
type Dataset struct {
	names  []string
	tables map[string]data.Table
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{tables: make(map[string]data.Table)}
}

// Add stores t under name. Adding an existing name replaces its table and
// keeps its position.
func (d *Dataset) Add(name string, t data.Table) {
	if _, ok := d.tables[name]; !ok {
		d.names = append(d.names, name)
	}
	d.tables[name] = t
}

// Names returns the table names in the order they were added.
func (d *Dataset) Names() []string { return slices.Clone(d.names) }

// Len returns the number of tables.
func (d *Dataset) Len() int { return len(d.names) }

// Table returns the named table, or an ErrCodeNotFound error.
func (d *Dataset) Table(name string) (data.Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, errors.NotFound("table", name)
	}
	return t.Clone(), nil
}

// fromValue reads the shape shared by the YAML and JSON formats: a mapping
// of table name to a list of row mappings. A null table is empty.
func fromValue(v data.Value) (*Dataset, error) {
	ds := NewDataset()
	if v.IsNull() {
		return ds, nil
	}
	root, ok := v.AsMap()
	if !ok {
		return nil, errors.InvalidFormat("dataset", "a mapping of table name to rows")
	}
	for name, tv := range root.All() {
		if tv.IsNull() {
			ds.Add(name, data.Table{})
			continue
		}
		items, ok := tv.AsList()
		if !ok {
			return nil, errors.InvalidFormat(name, "a list of rows")
		}
		t := make(data.Table, 0, len(items))
		for i, item := range items {
			row, ok := item.AsMap()
			if !ok {
				return nil, errors.InvalidFormat(name, "a mapping of column to value").
					WithDetail("index", i)
			}
			t = append(t, row)
		}
		ds.Add(name, t)
	}
	return ds, nil
}
