// Package source loads fixture datasets from files.
//
// A Dataset is an ordered set of named data.Tables. Each table is a
// fixture.Source and can back a fixture directly:
//
//	ds, err := source.Load("testdata/users.yml")
//	users, err := ds.Table("users")
//	fx := fixture.New(users)
//
// Supported formats, picked by file extension:
//
//	.yml .yaml  mapping of table name to a list of rows, field order kept
//	.json       object of table name to an array of rows, field order kept
//	.toml       [[table]] arrays of tables, sorted by name
//	.csv        one table named after the file, header row gives columns
//	.xml        flat XML dataset, one element per row
//
// CSV and XML cells are text and are typed with ParseCell.
package source
