package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	require.False(t, Truthy(nil))
	require.False(t, Truthy(false))
	require.True(t, Truthy(true))
	require.False(t, Truthy(float64(0)))
	require.True(t, Truthy(float64(0.1)))
	require.False(t, Truthy(""))
	require.True(t, Truthy("x"))
	require.False(t, Truthy(Array{}))
	require.True(t, Truthy(Array{1.0}))
	require.False(t, Truthy(NewObject()))
}

func TestEqualityEpsilonNumbers(t *testing.T) {
	require.True(t, Equal(0.3, 0.1+0.2), "usual binary floating-point summation noise must still compare equal")
	require.False(t, Equal(1.0, 1.1))
	require.False(t, Equal(1.0, 1.0+1e-12), "a difference this large is not floating-point noise")
}

func TestEqualityMismatchedTypesAlwaysFalse(t *testing.T) {
	require.False(t, Equal(1.0, "1"))
	require.False(t, Equal(nil, false))
	require.False(t, Equal(Array{1.0}, Array{1.0}))
}

func TestEqualityStrings(t *testing.T) {
	require.True(t, Equal("abc", "abc"))
	require.False(t, Equal("abc", "abd"))
}

func TestCanonicalStringRules(t *testing.T) {
	require.Equal(t, "null", CanonicalString(nil))
	require.Equal(t, "true", CanonicalString(true))
	require.Equal(t, "false", CanonicalString(false))
	require.Equal(t, "3", CanonicalString(3.0))
	require.Equal(t, "3.5", CanonicalString(3.5))
	require.Equal(t, "hi", CanonicalString("hi"))
	require.Equal(t, "[array]", CanonicalString(Array{1.0}))
	require.Equal(t, "[object]", CanonicalString(NewObject()))
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", 1.0)
	o.Set("a", 2.0)
	o.Set("b", 3.0) // update, should not move position
	require.Equal(t, []string{"b", "a"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	require.Equal(t, 3.0, v)
}

func TestObjectCloneIsShallowAndIndependentKeyOrder(t *testing.T) {
	o := NewObject()
	o.Set("x", 1.0)
	c := o.Clone()
	c.Set("y", 2.0)
	require.Equal(t, []string{"x"}, o.Keys())
	require.Equal(t, []string{"x", "y"}, c.Keys())
}

func TestContainsForbiddenKeyDirect(t *testing.T) {
	o := NewObject()
	o.Set("secret_data", 1.0)
	require.True(t, ContainsForbiddenKey(o, "secret_data"))
}

func TestContainsForbiddenKeyNestedInArray(t *testing.T) {
	inner := NewObject()
	inner.Set("secret_data", 1.0)
	arr := Array{1.0, inner}
	require.True(t, ContainsForbiddenKey(arr, "secret_data"))
}

func TestContainsForbiddenKeyNestedInObject(t *testing.T) {
	inner := NewObject()
	inner.Set("secret_data", 1.0)
	outer := NewObject()
	outer.Set("child", inner)
	require.True(t, ContainsForbiddenKey(outer, "secret_data"))
}

func TestContainsForbiddenKeyAbsent(t *testing.T) {
	o := NewObject()
	o.Set("a", 1.0)
	require.False(t, ContainsForbiddenKey(o, "secret_data"))
}
