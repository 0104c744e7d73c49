package data

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRow_MarshalJSON_KeepsOrder(t *testing.T) {
	r := Make("z", 1, "a", "x", "m", Make("k", nil, "l", []any{true, 1.5}))
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"x","m":{"k":null,"l":[true,1.5]}}`, string(b))
}

func TestTable_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Table{Make("id", 1), Make("id", 2)})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1},{"id":2}]`, string(b))
}

func TestDecodeJSON_RoundTrip(t *testing.T) {
	src := `{"z":1,"a":"x","f":2.5,"m":{"k":null,"l":[true,false]}}`
	v, err := DecodeJSON(jsontext.NewDecoder(strings.NewReader(src)))
	require.NoError(t, err)

	r, ok := v.AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "f", "m"}, r.Keys())

	z, _ := r.Get("z")
	assert.Equal(t, KindInt, z.Kind())
	f, _ := r.Get("f")
	assert.Equal(t, KindFloat, f.Kind())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, src, string(b))
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := DecodeJSON(jsontext.NewDecoder(strings.NewReader(`{"a":`)))
	assert.Error(t, err)
}

func TestRow_YAMLRoundTrip(t *testing.T) {
	r := Make("z", 1, "a", "2", "f", 3.0, "b", false, "n", nil, "m", Make("x", []any{1, "y"}))
	out, err := yaml.Marshal(r)
	require.NoError(t, err)

	var back Row
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, r.Keys(), back.Keys())
	assert.True(t, r.Equal(back), "got %s from\n%s", back, out)
}

func TestRow_UnmarshalYAML_NotAMapping(t *testing.T) {
	var r Row
	err := yaml.Unmarshal([]byte("- 1\n- 2\n"), &r)
	assert.Error(t, err)
}

func TestFromYAMLNode_Aliases(t *testing.T) {
	src := "base: &b {role: admin}\nuser: *b\n"
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))

	v, err := FromYAMLNode(&node)
	require.NoError(t, err)
	r, _ := v.AsMap()
	role, ok := r.GetPath(Path{"user", "role"})
	require.True(t, ok)
	assert.True(t, role.Equal(String("admin")))
}

func TestValue_UnmarshalYAML_Scalars(t *testing.T) {
	tests := []struct {
		src  string
		want Value
	}{
		{"2", Int(2)},
		{"0x10", Int(16)},
		{"2.5", Float(2.5)},
		{"true", Bool(true)},
		{"~", Null()},
		{`"2"`, String("2")},
		{"hello", String("hello")},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			var v Value
			require.NoError(t, yaml.Unmarshal([]byte(tc.src), &v))
			assert.True(t, tc.want.Equal(v), "got %s (%s)", v, v.Kind())
		})
	}
}
