package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSONPreservesObjectKeyOrder(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)
	obj := v.(*Object)
	require.Equal(t, []string{"z", "a", "m"}, obj.Keys())
}

func TestDecodeJSONNestedArrayAndObject(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"list":[1,2,{"x":true,"y":null}],"s":"hi"}`))
	require.NoError(t, err)
	obj := v.(*Object)
	list, ok := obj.Get("list")
	require.True(t, ok)
	arr := list.(Array)
	require.Equal(t, float64(1), arr[0])
	nested := arr[2].(*Object)
	x, _ := nested.Get("x")
	require.Equal(t, true, x)
	y, ok := nested.Get("y")
	require.True(t, ok)
	require.Nil(t, y)
}

func TestEncodeJSONRoundTripsObjectOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("z", float64(1))
	obj.Set("a", "two")
	obj.Set("m", Array{float64(1), false})

	b, err := EncodeJSON(obj)
	require.NoError(t, err)
	require.JSONEq(t, `{"z":1,"a":"two","m":[1,false]}`, string(b))
	require.Equal(t, `{"z":1,"a":"two","m":[1,false]}`, string(b))
}

func TestEncodeJSONEmbedsRawJSONVerbatim(t *testing.T) {
	obj := NewObject()
	obj.Set("id", "r1")
	obj.Set("ast", RawJSON(`{"type":"PROGRAM","body":[]}`))

	b, err := EncodeJSON(obj)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"r1","ast":{"type":"PROGRAM","body":[]}}`, string(b))
}

func TestDecodeThenEncodeRoundTrip(t *testing.T) {
	src := `{"b":2,"a":1,"arr":[1,2,3],"n":null}`
	v, err := DecodeJSON([]byte(src))
	require.NoError(t, err)
	b, err := EncodeJSON(v)
	require.NoError(t, err)
	require.Equal(t, src, string(b))
}
