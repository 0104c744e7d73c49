package source

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/fixture"
)

func mustTable(t *testing.T, ds *Dataset, name string) data.Table {
	t.Helper()
	tbl, err := ds.Table(name)
	require.NoError(t, err)
	return tbl
}

func TestLoad_YAML(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "users.yml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "admins", "groups"}, ds.Names())

	users := mustTable(t, ds, "users")
	require.Len(t, users, 3)
	assert.Equal(t, []string{"id", "first_name", "role", "profile"}, users[1].Keys())

	score, ok := users[1].GetPath(data.Path{"profile", "score"})
	require.True(t, ok)
	assert.True(t, score.Equal(data.Float(9.5)))

	pw, ok := users[2].Get("password")
	require.True(t, ok)
	assert.True(t, pw.IsNull())

	admins := mustTable(t, ds, "admins")
	require.Len(t, admins, 1)
	assert.True(t, admins[0].Equal(users[0]))

	assert.Empty(t, mustTable(t, ds, "groups"))
}

func TestLoad_JSONMatchesYAML(t *testing.T) {
	js, err := Load(filepath.Join("testdata", "users.json"))
	require.NoError(t, err)
	ym, err := Load(filepath.Join("testdata", "users.yml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "groups"}, js.Names())
	assert.True(t, mustTable(t, js, "users").Equal(mustTable(t, ym, "users")))
	assert.Empty(t, mustTable(t, js, "groups"))
}

func TestLoad_TOML(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "users.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"groups", "users"}, ds.Names())

	users := mustTable(t, ds, "users")
	require.Len(t, users, 2)
	assert.Equal(t, []string{"first_name", "id", "joined", "role"}, users[0].Keys())

	joined, _ := users[0].Get("joined")
	assert.True(t, joined.Equal(data.String("1979-05-27")))

	age, ok := users[1].GetPath(data.Path{"profile", "age"})
	require.True(t, ok)
	assert.True(t, age.Equal(data.Int(36)))
}

func TestLoad_CSV(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "users.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, ds.Names())

	users := mustTable(t, ds, "users")
	require.Len(t, users, 3)
	assert.True(t, users[0].Equal(data.Make(
		"id", 1, "first_name", "Ada", "role", "admin", "score", 9.5, "active", true, "password", nil,
	)))
	assert.True(t, users[2].Equal(data.Make(
		"id", 3, "first_name", "Kianna, Jr.", "role", "user", "score", 100.0, "active", true, "password", "s3cret",
	)))
}

func TestLoad_XML(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "dataset.xml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "groups"}, ds.Names())

	users := mustTable(t, ds, "users")
	require.Len(t, users, 3)
	assert.True(t, users[1].Equal(data.Make("id", 2, "first_name", "Grace", "role", "admin", "nickname", "")))
	assert.False(t, users[0].Has("score"))
	assert.Empty(t, mustTable(t, ds, "groups"))
}

func TestLoad_BackingAFixture(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "users.yml"))
	require.NoError(t, err)

	fx := fixture.New(mustTable(t, ds, "users"))
	got, err := fx.Values(data.Make("role", "admin"), "id")
	require.NoError(t, err)
	assert.True(t, data.List(got["id"]...).Equal(data.MustOf([]any{1, 2})))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/users.ini")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnsupportedFormat))

	_, err = Load("testdata/missing.yml")
	assert.True(t, errors.HasCode(err, errors.ErrCodeLoadFailed))
}

func TestLoadFormat_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
		code   errors.ErrorCode
	}{
		{"yaml syntax", FormatYAML, "users: [", errors.ErrCodeLoadFailed},
		{"yaml scalar root", FormatYAML, "hello", errors.ErrCodeInvalidFormat},
		{"yaml rows not a list", FormatYAML, "users: 3", errors.ErrCodeInvalidFormat},
		{"yaml row not a map", FormatYAML, "users: [1]", errors.ErrCodeInvalidFormat},
		{"json syntax", FormatJSON, `{"users": [`, errors.ErrCodeLoadFailed},
		{"toml syntax", FormatTOML, "[[users]\n", errors.ErrCodeLoadFailed},
		{"toml scalar table", FormatTOML, "title = 'x'\n", errors.ErrCodeInvalidFormat},
		{"csv ragged", FormatCSV, "a,b\n1\n", errors.ErrCodeLoadFailed},
		{"xml wrong root", FormatXML, "<users/>", errors.ErrCodeInvalidFormat},
		{"unknown format", Format("ini"), "", errors.ErrCodeUnsupportedFormat},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFormat(strings.NewReader(tc.src), tc.format, "users")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.code), "got %v", err)
		})
	}
}

func TestLoadFormat_Empty(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatJSON, FormatTOML} {
		ds, err := LoadFormat(strings.NewReader(""), f, "x")
		require.NoError(t, err, f)
		assert.Equal(t, 0, ds.Len(), f)
	}

	ds, err := LoadFormat(strings.NewReader(""), FormatCSV, "x")
	require.NoError(t, err)
	assert.Empty(t, mustTable(t, ds, "x"))
}

func TestDataset(t *testing.T) {
	ds := NewDataset()
	ds.Add("a", data.Table{data.Make("id", 1)})
	ds.Add("b", nil)
	ds.Add("a", data.Table{data.Make("id", 2)})
	assert.Equal(t, []string{"a", "b"}, ds.Names())

	a := mustTable(t, ds, "a")
	assert.True(t, a.Equal(data.Table{data.Make("id", 2)}))

	_, err := ds.Table("nope")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestFormatParsing(t *testing.T) {
	f, err := FormatOf("x/Y.YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("ini")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in   string
		want data.Value
	}{
		{"", data.Null()},
		{"true", data.Bool(true)},
		{"false", data.Bool(false)},
		{"TRUE", data.String("TRUE")},
		{"42", data.Int(42)},
		{"-7", data.Int(-7)},
		{"2.5", data.Float(2.5)},
		{"NaN", data.String("NaN")},
		{"Inf", data.String("Inf")},
		{"abc", data.String("abc")},
	}
	for _, tc := range tests {
		assert.True(t, tc.want.Equal(ParseCell(tc.in)), "ParseCell(%q) = %s", tc.in, ParseCell(tc.in))
	}
}
