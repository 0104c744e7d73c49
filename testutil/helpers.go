package testutil

import (
	"testing"

	"github.com/kbukum/fixturekit/catalog"
	"github.com/kbukum/fixturekit/config"
	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/logger"
)

// THelper provides testing.T integration for fixture reads.
type THelper struct {
	t  testing.TB
	fx *fixture.Fixture
}

// T wraps a testing.TB and a fixture. Reads fail the test instead of
// returning errors or absence.
//
// Example:
//
//	func TestSignup(t *testing.T) {
//	    user := testutil.T(t, users).Get(data.Make("email", "a@b.c"), 0)
//	}
func T(t testing.TB, fx *fixture.Fixture) *THelper {
	return &THelper{t: t, fx: fx}
}

// Fixture returns the wrapped fixture.
func (h *THelper) Fixture() *fixture.Fixture { return h.fx }

// Get returns the transformed row at index.
func (h *THelper) Get(override data.Row, index int) data.Row {
	h.t.Helper()
	r, ok, err := h.fx.Get(override, index)
	if err != nil {
		h.t.Fatalf("fixture row %d: %v", index, err)
	}
	if !ok {
		h.t.Fatalf("fixture row %d: out of range (%d rows)", index, h.fx.RowCount())
	}
	return r
}

// ByPrimaryKey returns the transformed row whose primary key equals id.
func (h *THelper) ByPrimaryKey(id any, override data.Row) data.Row {
	h.t.Helper()
	r, ok, err := h.fx.ByPrimaryKey(id, override)
	if err != nil {
		h.t.Fatalf("fixture %s=%v: %v", h.fx.PrimaryKey(), id, err)
	}
	if !ok {
		h.t.Fatalf("fixture %s=%v: no such row", h.fx.PrimaryKey(), id)
	}
	return r
}

// Where returns the transformed rows matching filters.
func (h *THelper) Where(filters, override data.Row) data.Table {
	h.t.Helper()
	rows, err := h.fx.Where(filters, override)
	if err != nil {
		h.t.Fatalf("fixture where %s: %v", filters, err)
	}
	return rows
}

// All returns every transformed row.
func (h *THelper) All(override data.Row) data.Table {
	h.t.Helper()
	rows, err := h.fx.All(override)
	if err != nil {
		h.t.Fatalf("fixture all: %v", err)
	}
	return rows
}

// Values returns raw column values of the rows matching filters.
func (h *THelper) Values(filters data.Row, columns ...string) map[string][]data.Value {
	h.t.Helper()
	out, err := h.fx.Values(filters, columns...)
	if err != nil {
		h.t.Fatalf("fixture values %v where %s: %v", columns, filters, err)
	}
	return out
}

// Catalog loads the catalog config at path and opens it. Fixture logging
// is discarded unless opts set a logger.
func Catalog(t testing.TB, path string, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()
	cfg, err := config.Load("fixtures", config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("load catalog config %s: %v", path, err)
	}
	cat, err := catalog.Open(cfg, append([]catalog.Option{catalog.WithLogger(logger.NewNop())}, opts...)...)
	if err != nil {
		t.Fatalf("open catalog %s: %v", path, err)
	}
	return cat
}

// Fixture returns the named fixture from cat wrapped in a THelper.
func Fixture(t testing.TB, cat *catalog.Catalog, name string) *THelper {
	t.Helper()
	fx, err := cat.Fixture(name)
	if err != nil {
		t.Fatalf("fixture %s: %v", name, err)
	}
	return T(t, fx)
}
