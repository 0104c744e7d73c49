package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/version"
)

var (
	usersFile   = filepath.Join("testdata", "users.yml")
	catalogFile = filepath.Join("testdata", "fixtures.yml")
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestTables(t *testing.T) {
	out, err := run(t, "-f", usersFile, "tables")
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "groups"}, decode[[]string](t, out))

	out, err = run(t, "-c", catalogFile, "tables")
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, decode[[]string](t, out))
}

func TestCount(t *testing.T) {
	out, err := run(t, "-f", usersFile, "count")
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))

	out, err = run(t, "-f", usersFile, "-t", "groups", "count")
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestGet_ByIndexWithOverride(t *testing.T) {
	out, err := run(t, "-f", usersFile, "--hide", "password", "get", "1", "--set", "address.city=Paris", "--set", "role=guest")
	require.NoError(t, err)

	row := decode[map[string]any](t, out)
	assert.Equal(t, "guest", row["role"])
	assert.NotContains(t, row, "password")
	assert.Equal(t, map[string]any{"city": "Paris", "zip": "22201"}, row["address"])
}

func TestGet_ByPrimaryKeyIsTyped(t *testing.T) {
	out, err := run(t, "-f", usersFile, "get", "--pk", "2")
	require.NoError(t, err)
	assert.Equal(t, "Grace", decode[map[string]any](t, out)["first_name"])

	_, err = run(t, "-f", usersFile, "get", "--pk", "3")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound), "got %v", err)

	out, err = run(t, "-f", usersFile, "get", "--pk", `"3"`)
	require.NoError(t, err)
	assert.Equal(t, "Kianna", decode[map[string]any](t, out)["first_name"])
}

func TestGet_ArgumentErrors(t *testing.T) {
	_, err := run(t, "-f", usersFile, "get")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = run(t, "-f", usersFile, "get", "0", "--pk", "1")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = run(t, "-f", usersFile, "get", "-1")
	assert.Error(t, err)

	_, err = run(t, "-f", usersFile, "get", "9")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = run(t, "-f", usersFile, "get", "0", "--set", "role")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestWhere_CatalogSettings(t *testing.T) {
	out, err := run(t, "-c", catalogFile, "where", "--filter", "role=admin")
	require.NoError(t, err)

	rows := decode[[]map[string]any](t, out)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotContains(t, r, "password")
		assert.Equal(t, true, r["active"])
	}
}

func TestWhere_DefaultFlagReplacesCatalogDefaults(t *testing.T) {
	out, err := run(t, "-c", catalogFile, "--default", "password='12345'", "--hide", "role", "where", "--filter", "id=1")
	require.NoError(t, err)

	rows := decode[[]map[string]any](t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, "12345", rows[0]["password"])
	assert.NotContains(t, rows[0], "active")
	assert.NotContains(t, rows[0], "role")
}

func TestWhere_Limit(t *testing.T) {
	out, err := run(t, "-f", usersFile, "where", "--filter", "role=admin", "--limit", "1")
	require.NoError(t, err)
	rows := decode[[]map[string]any](t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada", rows[0]["first_name"])

	out, err = run(t, "-f", usersFile, "raw", "--limit", "2")
	require.NoError(t, err)
	assert.Len(t, decode[[]map[string]any](t, out), 2)
}

func TestWhere_MissingColumn(t *testing.T) {
	_, err := run(t, "-f", usersFile, "where", "--filter", "nickname=x")
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingColumn), "got %v", err)
}

func TestValues(t *testing.T) {
	out, err := run(t, "-f", usersFile, "values", "id", "first_name", "--filter", "role=admin")
	require.NoError(t, err)
	assert.Equal(t, map[string][]any{
		"id":         {float64(1), float64(2)},
		"first_name": {"Ada", "Grace"},
	}, decode[map[string][]any](t, out))
}

func TestRawAndValue(t *testing.T) {
	out, err := run(t, "-c", catalogFile, "raw", "0")
	require.NoError(t, err)
	row := decode[map[string]any](t, out)
	assert.Equal(t, "12345", row["password"])
	assert.NotContains(t, row, "active")

	out, err = run(t, "-f", usersFile, "raw")
	require.NoError(t, err)
	assert.Len(t, decode[[]map[string]any](t, out), 3)

	out, err = run(t, "-f", usersFile, "value", "first_name", "2")
	require.NoError(t, err)
	assert.Equal(t, `"Kianna"`, strings.TrimSpace(out))

	out, err = run(t, "-f", usersFile, "value", "first_name", "7")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestOutputFormats(t *testing.T) {
	out, err := run(t, "-f", usersFile, "-o", "yaml", "get", "0", "--hide", "password,address")
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nfirst_name: Ada\nrole: admin\n", out)

	out, err = run(t, "-f", usersFile, "-o", "table", "--hide", "password,address", "where")
	require.NoError(t, err)
	assert.Contains(t, out, "first_name")
	assert.Contains(t, out, "Kianna")

	out, err = run(t, "-f", usersFile, "-o", "dump", "value", "id", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "(int64) 1")

	_, err = run(t, "-f", usersFile, "-o", "xml", "count")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}

func TestUnknownTable(t *testing.T) {
	_, err := run(t, "-f", usersFile, "-t", "nope", "count")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "-o", "table")
	require.NoError(t, err)
	assert.Equal(t, "fixturectl "+version.Get().String()+"\n", out)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Get().Version, decode[map[string]any](t, out)["version"])
}

func TestParseAssignments(t *testing.T) {
	r, err := parseAssignments("set", []string{"b=2", "a.x=[1, 2]", "s='2'", "e=", "n=null"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a.x", "s", "e", "n"}, r.Keys())

	b, _ := r.Get("b")
	assert.Equal(t, "2", b.String())
	_, isInt := b.AsInt()
	assert.True(t, isInt)

	s, _ := r.Get("s")
	_, isString := s.AsString()
	assert.True(t, isString)

	n, _ := r.Get("n")
	assert.True(t, n.IsNull())

	e, _ := r.Get("e")
	assert.Equal(t, "", e.String())
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, "warn", verbosityLevel(0))
	assert.Equal(t, "info", verbosityLevel(1))
	assert.Equal(t, "debug", verbosityLevel(2))
	assert.Equal(t, "trace", verbosityLevel(5))
}

func TestCatalogTableNameMatchesRegardlessOfCase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ds.yml"), []byte("Users:\n  - id: 1\n"), 0o644))
	cfgPath := filepath.Join(dir, "fixtures.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tables:\n  Users:\n    source: ds.yml\n"), 0o644))

	out, err := run(t, "-c", cfgPath, "tables")
	require.NoError(t, err)
	assert.Equal(t, []string{"Users"}, decode[[]string](t, out))

	for _, name := range []string{"Users", "users"} {
		out, err = run(t, "-c", cfgPath, "-t", name, "count")
		require.NoError(t, err, name)
		assert.Equal(t, "1", strings.TrimSpace(out), name)
	}
}

func TestMatchName(t *testing.T) {
	assert.Equal(t, "Users", matchName([]string{"Users", "orders"}, "users"))
	assert.Equal(t, "users", matchName([]string{"Users", "users"}, "users"))
	assert.Equal(t, "USERS", matchName([]string{"Users", "users"}, "USERS"))
	assert.Equal(t, "ghosts", matchName([]string{"Users"}, "ghosts"))
}
