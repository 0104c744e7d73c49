package data

// Table is an ordered sequence of rows. A row's index is its row number.
//
// Table satisfies fixture.Source, so an in-memory slice of rows can back a
// fixture directly.
type Table []Row

// RowCount returns the number of rows.
func (t Table) RowCount() int { return len(t) }

// Row returns the row at index, or false when index is out of range.
func (t Table) Row(index int) (Row, bool) {
	if index < 0 || index >= len(t) {
		return Row{}, false
	}
	return t[index], true
}

// Value returns column of the row at index, or false when either is absent.
func (t Table) Value(index int, column string) (Value, bool) {
	r, ok := t.Row(index)
	if !ok {
		return Value{}, false
	}
	return r.Get(column)
}

// Clone returns a copy of the table's backing slice. Rows are values, so
// this is enough to make the copy independent.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Equal reports whether both tables hold equal rows in the same order.
func (t Table) Equal(o Table) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
