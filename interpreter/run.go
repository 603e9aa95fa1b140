// Package interpreter implements hexput's tree-walking evaluator
// (spec.md §4.E): ExecutionContext frames, the control-flow signal state
// machine, expression/statement evaluation, and callback execution,
// suspending at every host round-trip through the Host interface.
package interpreter

import (
	"context"
	"time"

	"go-parser/pkg/ast"

	"hexput/value"
)

// Default host-call deadlines (spec.md §4.F, §5).
const (
	ExistsTimeout = 3 * time.Second
	CallTimeout   = 600 * time.Second
)

// Interpreter runs hexput programs against a Host, enforcing the forbidden
// key rule at the three chokepoints named in spec.md §9 (member read,
// member write, method dispatch).
type Interpreter struct {
	Host          Host
	ForbiddenKey  string
	ExistsTimeout time.Duration
	CallTimeout   time.Duration
}

// New returns an Interpreter with the spec's default timeouts and forbidden
// key ("secret_data").
func New(host Host) *Interpreter {
	return &Interpreter{
		Host:          host,
		ForbiddenKey:  "secret_data",
		ExistsTimeout: ExistsTimeout,
		CallTimeout:   CallTimeout,
	}
}

// runState carries the per-Run values threaded through every eval/exec
// call: the enclosing Interpreter plus the secret_context forwarded
// opaquely on every host call (spec.md §4.E).
type runState struct {
	interp        *Interpreter
	secretContext value.Value
}

// Run evaluates prog against a fresh root ExecutionContext seeded from
// vars, returning the program's final value (spec.md §4.E's "Program top"
// column: return unwraps to its value; continue/end are ignored; running
// off the end yields Null).
func (in *Interpreter) Run(ctx context.Context, prog *ast.Program, vars map[string]value.Value, secretContext value.Value) (value.Value, error) {
	rs := &runState{interp: in, secretContext: secretContext}
	root := NewRootContext(vars)
	outcome, err := rs.execBlock(ctx, prog.Body, root)
	if err != nil {
		return nil, err
	}
	if outcome.Signal == SignalReturn {
		return outcome.Value, nil
	}
	return nil, nil
}
