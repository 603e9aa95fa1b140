package testhost

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"hexput/value"
)

func TestFunctionExistsReportsDefinedGlobals(t *testing.T) {
	h, err := New(`function greet(name) return "hi " .. name end`)
	require.NoError(t, err)
	defer h.Close()

	exists, err := h.FunctionExists(context.Background(), "greet")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = h.FunctionExists(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestCallFunctionRoundTripsScalarsAndTables(t *testing.T) {
	h, err := New(`
function sum(arr)
  local total = 0
  for i = 1, #arr do total = total + arr[i] end
  return total
end
`)
	require.NoError(t, err)
	defer h.Close()

	result, err := h.CallFunction(context.Background(), "sum", []value.Value{value.Array{float64(1), float64(2), float64(3)}}, nil)
	require.NoError(t, err)
	require.Equal(t, float64(6), result)
}

func TestCallFunctionReturnsObjectTable(t *testing.T) {
	h, err := New(`function makeUser(name) return {name = name, active = true} end`)
	require.NoError(t, err)
	defer h.Close()

	result, err := h.CallFunction(context.Background(), "makeUser", []value.Value{"ada"}, nil)
	require.NoError(t, err)
	obj, ok := result.(*value.Object)
	require.True(t, ok)
	name, _ := obj.Get("name")
	require.Equal(t, "ada", name)
	active, _ := obj.Get("active")
	require.Equal(t, true, active)
}

func TestCallFunctionForwardsSecretContextOpaquely(t *testing.T) {
	h, err := New(`function peek(secret) return secret.token end`)
	require.NoError(t, err)
	defer h.Close()

	secretCtx := value.NewObject()
	secretCtx.Set("token", "abc123")

	result, err := h.CallFunction(context.Background(), "peek", nil, secretCtx)
	require.NoError(t, err)
	require.Equal(t, "abc123", result)
}

func TestCallFunctionErrorsOnUndefinedFunction(t *testing.T) {
	h, err := New(``)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.CallFunction(context.Background(), "nope", nil, nil)
	require.Error(t, err)
}
