// Package data defines the value model fixtures are built from.
//
// A Value is a tagged union of null, bool, int, float, string, nested Row
// and list. A Row is an insertion-ordered field mapping and a Table an
// ordered slice of rows. Rows never change after construction: Set, Delete,
// SetPath and Overlay all return new rows, copying only the spine they
// touch.
//
// Field names may address nested maps with a dotted path:
//
//	r := data.Make("id", 1)
//	r = r.SetPath(data.ParsePath("address.city", "."), data.String("Lyon"))
//	// {id:1 address:{city:Lyon}}
//
// Equality is strict: Int(2) does not equal Float(2) or String("2").
package data
