// Package fixture turns raw table rows into test-ready fixture rows.
//
// A Fixture reads from a Source (data.Table in memory, or anything loaded by
// the source package) and runs every emitted row through a fixed chain:
//
//  1. the default override is laid over the raw row,
//  2. the post-process hook runs,
//  3. hidden fields are removed,
//  4. the per-call override is laid over the result.
//
// Overrides are data.Row values whose keys may be dotted paths:
//
//	fx := fixture.FromRows(rows...)
//	fx.SetHidden("password").SetDefaultOverride(data.Make("password", 12345))
//	u, ok, err := fx.Get(data.Make("profile.age", 30), 0)
//
// Writing "profile.age" where profile is not a map replaces it with a new
// map. Lookups past the last row report absence and never fail. Filters
// compare with typed equality and fail with ErrCodeMissingColumn when a row
// lacks a filtered column.
package fixture
