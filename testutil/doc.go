// Package testutil adapts fixtures to Go tests.
//
// Fixture reads return errors and absence flags; inside a test both are
// usually fatal. THelper wraps a *fixture.Fixture and fails the test
// instead:
//
//	func TestCheckout(t *testing.T) {
//	    cat := testutil.Catalog(t, "testdata/fixtures.yml")
//	    users := testutil.Fixture(t, cat, "users")
//	    buyer := users.ByPrimaryKey(4, data.Make("credit", 100))
//	    admins := users.Where(data.Make("role", "admin"), data.Row{})
//	}
//
// Failures are reported through t.Fatalf at the caller's line.
package testutil
