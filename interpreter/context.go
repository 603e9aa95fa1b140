package interpreter

import (
	"go-parser/pkg/ast"

	"hexput/value"
)

// Callback is bare (params, body) data, as spec.md §3's value domain
// describes it — it stores no captured context. A call threads the
// *caller's* active ExecutionContext into the child frame, matching
// `original_source/hexput-runtime/src/handler.rs`'s dynamic-scoping
// CallbackFunction, not a lexical closure: a callback's free variables
// resolve against the context active at the call site, not its declaration
// site.
type Callback struct {
	Params []string
	Body   *ast.Block
}

// ExecutionContext is one frame: its own variable and callback bindings
// plus a link to its parent frame (for a callback call, the caller's
// frame; spec.md §4.E). Blocks
// (If/Loop bodies) do not introduce a new frame — only callback calls do —
// so a Block's statements run directly against the frame passed to them.
type ExecutionContext struct {
	parent    *ExecutionContext
	variables map[string]value.Value
	callbacks map[string]*Callback
}

// NewRootContext seeds the outermost frame from the host-supplied context
// map (spec.md §4.E).
func NewRootContext(seed map[string]value.Value) *ExecutionContext {
	vars := make(map[string]value.Value, len(seed))
	for k, v := range seed {
		vars[k] = v
	}
	return &ExecutionContext{variables: vars, callbacks: make(map[string]*Callback)}
}

// NewChildContext returns a fresh frame whose parent chain starts at parent.
func NewChildContext(parent *ExecutionContext) *ExecutionContext {
	return &ExecutionContext{
		parent:    parent,
		variables: make(map[string]value.Value),
		callbacks: make(map[string]*Callback),
	}
}

// GetVariable looks up name walking the parent chain (spec.md §4.E
// Identifier lookup).
func (ec *ExecutionContext) GetVariable(name string) (value.Value, bool) {
	for f := ec; f != nil; f = f.parent {
		if v, ok := f.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetVariable binds name in this frame only (Assignment's "bind name in
// the current frame", VariableDeclaration, loop-binding).
func (ec *ExecutionContext) SetVariable(name string, v value.Value) {
	ec.variables[name] = v
}

// AssignExisting writes v to the frame that already owns name, walking the
// parent chain; if no frame owns it yet, it is initialized in this frame
// (MemberAssignment's bare-identifier case: "load (or initialize) its
// current binding... write back").
func (ec *ExecutionContext) AssignExisting(name string, v value.Value) {
	for f := ec; f != nil; f = f.parent {
		if _, ok := f.variables[name]; ok {
			f.variables[name] = v
			return
		}
	}
	ec.variables[name] = v
}

// GetCallback looks up a declared callback walking the parent chain.
func (ec *ExecutionContext) GetCallback(name string) (*Callback, bool) {
	for f := ec; f != nil; f = f.parent {
		if cb, ok := f.callbacks[name]; ok {
			return cb, true
		}
	}
	return nil, false
}

// SetCallback registers a callback in this frame only (CallbackDeclaration:
// "register in the current frame's callback map").
func (ec *ExecutionContext) SetCallback(name string, cb *Callback) {
	ec.callbacks[name] = cb
}
