// Package collection implements an immutable, keyed sequence with
// functional operators.
//
// A Collection keeps entries in order, each under an integer or string Key.
// Map and Filter run through a lazy pipeline over a snapshot of the entries
// and materialize into a fresh slice, so no two collections ever share a
// backing array and the receiver is never changed:
//
//	users := collection.New(rows...)
//	admins, err := users.Filter(func(_ collection.Key, r data.Row) (bool, error) {
//	    role, _ := r.Get("role")
//	    return role.Equal(data.String("admin")), nil
//	})
//	emails := collection.Column(admins, "email")
//
// Filter keeps original keys, so an entry filtered out of the middle leaves
// a gap in integer keys, exactly as a row number would.
package collection
