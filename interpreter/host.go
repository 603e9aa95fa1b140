package interpreter

import (
	"context"

	"hexput/value"
)

// Host is the interpreter's view of the remote host across the protocol
// in spec.md §4.F: a bare Call or a MemberCall that no built-in handles
// probes existence, then either calls through or reports FunctionNotFound.
// hostproto provides the concrete implementation over the wire; tests and
// testhost provide others.
type Host interface {
	// FunctionExists answers the existence probe (3s timeout enforced by
	// the caller via ctx; spec.md §4.F treats an expired ctx as "false").
	FunctionExists(ctx context.Context, name string) (bool, error)

	// CallFunction invokes name with args, forwarding secretContext
	// opaquely (never exposed to the script). The 600s timeout is
	// enforced by the caller via ctx.
	CallFunction(ctx context.Context, name string, args []value.Value, secretContext value.Value) (value.Value, error)
}
