package interpreter

import (
	"context"
	"testing"

	"go-parser/pkg/config"
	"go-parser/pkg/parser"

	"github.com/stretchr/testify/require"

	herrors "hexput/errors"
	"hexput/optimizer"
	"hexput/value"
)

// nilHost never reports any function as existing; these tests only
// exercise host-free scripts (spec.md §8 scenario list).
type nilHost struct{}

func (nilHost) FunctionExists(ctx context.Context, name string) (bool, error) { return false, nil }
func (nilHost) CallFunction(ctx context.Context, name string, args []value.Value, secretContext value.Value) (value.Value, error) {
	return nil, nil
}

func run(t *testing.T, src string) value.Value {
	t.Helper()
	prog, err := parser.Parse(src, config.AllEnabled())
	require.NoError(t, err)
	prog = optimizer.Optimize(prog)
	v, err := New(nilHost{}).Run(context.Background(), prog, nil, nil)
	require.NoError(t, err)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	require.Equal(t, float64(14), run(t, "vl x = 2 + 3 * 4; res x;"))
}

func TestMemberAssignmentOnIdentifierAddsKey(t *testing.T) {
	v := run(t, "vl a = {x: 1}; a.y = 2; res a;")
	obj := v.(*value.Object)
	x, _ := obj.Get("x")
	y, _ := obj.Get("y")
	require.Equal(t, float64(1), x)
	require.Equal(t, float64(2), y)
}

func TestMemberAssignmentOnArrayPadsWithNull(t *testing.T) {
	v := run(t, `vl a = []; a[2] = "k"; res a;`)
	arr := v.(value.Array)
	require.Equal(t, value.Array{nil, nil, "k"}, arr)
}

func TestMemberAssignmentAutovivifiesNestedPath(t *testing.T) {
	v := run(t, "vl o = {}; o.a.b[0] = 7; res o;")
	obj := v.(*value.Object)
	a, ok := obj.Get("a")
	require.True(t, ok)
	aObj := a.(*value.Object)
	b, ok := aObj.Get("b")
	require.True(t, ok)
	require.Equal(t, value.Array{float64(7)}, b)
}

func TestLoopEndStopsAtMatchingIteration(t *testing.T) {
	v := run(t, `
		vl found = 0;
		loop i in [1,2,3,4] {
			found = i;
			if i == 3 {
				end;
			}
		}
		res found;
	`)
	require.Equal(t, float64(3), v)
}

func TestLoopContinueSkipsRestOfIteration(t *testing.T) {
	v := run(t, `
		vl total = 0;
		loop i in [1,2,3,4] {
			if i == 2 {
				continue;
			}
			total = total + i;
		}
		res total;
	`)
	require.Equal(t, float64(1+3+4), v)
}

func TestKeysOfFiltersForbiddenKey(t *testing.T) {
	v := run(t, "res keysof {a:1, secret_data:2};")
	require.Equal(t, value.Array{"a"}, v)
}

func TestStringSubstringOperatesOnCodePoints(t *testing.T) {
	v := run(t, `res "Hello".substring(1,4);`)
	require.Equal(t, "ell", v)
}

func TestArrayReduceWithInitialValue(t *testing.T) {
	v := run(t, `res [1,2,3].reduce(cb f(a,b){ res a+b; }, 0);`)
	require.Equal(t, float64(6), v)
}

func TestArrayMapWithInlineCallbackNeverTouchesHost(t *testing.T) {
	v := run(t, `res [1,2,3].map(cb f(x){ res x+1; });`)
	require.Equal(t, value.Array{float64(2), float64(3), float64(4)}, v)
}

func TestArrayFilterKeepsTruthyResults(t *testing.T) {
	v := run(t, `res [1,2,3,4].filter(cb f(x){ res x > 2; });`)
	require.Equal(t, value.Array{float64(3), float64(4)}, v)
}

func TestCallbackArityErrorsOnTooFewArguments(t *testing.T) {
	prog, err := parser.Parse(`
		cb add(a, b) { res a + b; }
		res add(1);
	`, config.AllEnabled())
	require.NoError(t, err)
	_, err = New(nilHost{}).Run(context.Background(), prog, nil, nil)
	require.Error(t, err)
}

func TestCallbackExtraArgumentsIgnored(t *testing.T) {
	v := run(t, `
		cb add(a, b) { res a + b; }
		res add(1, 2, 3);
	`)
	require.Equal(t, float64(3), v)
}

func TestForbiddenKeyBlocksMemberRead(t *testing.T) {
	_, err := func() (value.Value, error) {
		prog, err := parser.Parse(`vl o = {secret_data: 1}; res o.secret_data;`, config.AllEnabled())
		require.NoError(t, err)
		return New(nilHost{}).Run(context.Background(), prog, nil, nil)
	}()
	require.Error(t, err)
}

func TestForbiddenKeyBlocksMemberAssignment(t *testing.T) {
	prog, err := parser.Parse(`vl o = {}; o.secret_data = 1; res o;`, config.AllEnabled())
	require.NoError(t, err)
	_, err = New(nilHost{}).Run(context.Background(), prog, nil, nil)
	require.Error(t, err)
}

func TestForbiddenKeyBlocksMethodCallOnTaintedArray(t *testing.T) {
	prog, err := parser.Parse(`vl a = [{secret_data: 1}]; res a.length();`, config.AllEnabled())
	require.NoError(t, err)
	_, err = New(nilHost{}).Run(context.Background(), prog, nil, nil)
	require.Error(t, err)
}

func TestObjectMethodsStillFilterForbiddenKeyDirectly(t *testing.T) {
	v := run(t, "vl o = {a:1, secret_data:2}; res o.keys();")
	require.Equal(t, value.Array{"a"}, v)
}

// recordingHost reports every function as existing and records the calls
// it receives, so a test can prove a call never reached it.
type recordingHost struct {
	called bool
}

func (h *recordingHost) FunctionExists(ctx context.Context, name string) (bool, error) {
	return true, nil
}
func (h *recordingHost) CallFunction(ctx context.Context, name string, args []value.Value, secretContext value.Value) (value.Value, error) {
	h.called = true
	return "from host", nil
}

func TestForbiddenKeyBlocksUnrecognizedMethodCallInsteadOfFallingThroughToHost(t *testing.T) {
	prog, err := parser.Parse(`vl o = {a:1, secret_data:2}; res o.someHostFunction();`, config.AllEnabled())
	require.NoError(t, err)
	host := &recordingHost{}
	_, err = New(host).Run(context.Background(), prog, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), herrors.ForbiddenKeyMessage)
	require.False(t, host.called, "forbidden-key guard must block before the host is ever reached")
}

func TestCallbackResolvesVariableFromCallingCallbacksScopeNotDeclarationScope(t *testing.T) {
	v := run(t, `
		cb helper() { res x; }
		cb outer() { vl x = 42; res helper(); }
		res outer();
	`)
	require.Equal(t, float64(42), v)
}

func TestReturnUnwindsThroughNestedBlocks(t *testing.T) {
	v := run(t, `
		cb pick(x) {
			if x > 0 {
				if x > 10 {
					res "big";
				}
				res "small";
			}
			res "nonpositive";
		}
		res pick(5);
	`)
	require.Equal(t, "small", v)
}

func TestUndefinedVariableErrors(t *testing.T) {
	prog, err := parser.Parse(`res missing;`, config.AllEnabled())
	require.NoError(t, err)
	_, err = New(nilHost{}).Run(context.Background(), prog, nil, nil)
	require.Error(t, err)
}

func TestDivisionByZeroErrors(t *testing.T) {
	prog, err := parser.Parse(`res 1 / 0;`, config.AllEnabled())
	require.NoError(t, err)
	_, err = New(nilHost{}).Run(context.Background(), prog, nil, nil)
	require.Error(t, err)
}

func TestLogicalAndShortCircuitsAndYieldsBool(t *testing.T) {
	v := run(t, `res 0 && (1/0);`)
	require.Equal(t, false, v)
}

func TestPlusConcatenatesWhenEitherSideIsString(t *testing.T) {
	v := run(t, `res "n=" + 3;`)
	require.Equal(t, "n=3", v)
}
