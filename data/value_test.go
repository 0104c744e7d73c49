package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{"nil", nil, KindNull},
		{"bool", true, KindBool},
		{"int", 5, KindInt},
		{"int32", int32(5), KindInt},
		{"uint8", uint8(5), KindInt},
		{"float32", float32(1.5), KindFloat},
		{"float64", 1.5, KindFloat},
		{"string", "x", KindString},
		{"typed slice", []string{"a", "b"}, KindList},
		{"any slice", []any{1, "a"}, KindList},
		{"typed map", map[string]int{"a": 1}, KindMap},
		{"row", Make("a", 1), KindMap},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Of(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestOf_Unsupported(t *testing.T) {
	_, err := Of(struct{}{})
	assert.Error(t, err)

	_, err = Of(map[int]string{1: "a"})
	assert.Error(t, err)

	_, err = Of(uint64(1 << 63))
	assert.Error(t, err)

	assert.Panics(t, func() { MustOf(make(chan int)) })
}

func TestValue_StrictEquality(t *testing.T) {
	assert.True(t, Int(2).Equal(Int(2)))
	assert.False(t, Int(2).Equal(Float(2)))
	assert.False(t, Int(2).Equal(String("2")))
	assert.False(t, Bool(false).Equal(Null()))
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, List(Int(1), String("a")).Equal(List(Int(1), String("a"))))
	assert.False(t, List(Int(1), String("a")).Equal(List(String("a"), Int(1))))
	assert.True(t, Map(Make("a", 1, "b", 2)).Equal(Map(Make("b", 2, "a", 1))))
}

func TestValue_Accessors(t *testing.T) {
	i, ok := Int(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = Int(7).AsString()
	assert.False(t, ok)

	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	l := List(Int(1))
	items, ok := l.AsList()
	require.True(t, ok)
	items[0] = Int(99)
	again, _ := l.AsList()
	assert.True(t, again[0].Equal(Int(1)), "AsList must return a copy")
}

func TestValue_Interface(t *testing.T) {
	v := MustOf(map[string]any{"a": []any{1, "x", nil}, "b": 1.5})
	assert.Equal(t, map[string]any{
		"a": []any{int64(1), "x", nil},
		"b": 1.5,
	}, v.Interface())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "1.5", Float(1.5).String())
	assert.Equal(t, "Bob", String("Bob").String())
	assert.Equal(t, "[1 a]", List(Int(1), String("a")).String())
	assert.Equal(t, "{a:1 b:{c:true}}", Make("a", 1, "b", Make("c", true)).String())
	assert.Equal(t, "map", KindMap.String())
}

func TestFromMap_SortsKeys(t *testing.T) {
	r, err := FromMap(map[string]any{"b": 1, "a": 2, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
}
