// Package testhost implements interpreter.Host against a user-supplied Lua
// script via gopher-lua: the script's top-level global functions become
// the "host functions" a hexput program calls across the protocol, without
// needing a real duplex frame channel. Grounded on teacher's
// runtime/lua/{lua_runtime.go,lua_execution.go} — same GoToLua/luaToGo
// conversion table and GetGlobal-then-PCall dispatch idiom, repurposed
// from a REPL-embedded language runtime into a host-function stand-in for
// tests and examples.
package testhost

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"hexput/value"
)

// Host runs a Lua script once at construction time; every global function
// the script defines is callable from hexput as a host function.
type Host struct {
	state *lua.LState
}

// New loads script into a fresh Lua state and returns a Host backed by it.
func New(script string) (*Host, error) {
	state := lua.NewState()
	state.OpenLibs()
	if err := state.DoString(script); err != nil {
		state.Close()
		return nil, fmt.Errorf("testhost: load script: %w", err)
	}
	return &Host{state: state}, nil
}

// Close releases the underlying Lua state.
func (h *Host) Close() { h.state.Close() }

// FunctionExists implements interpreter.Host: name exists iff the script
// defines a global of that name with function type.
func (h *Host) FunctionExists(ctx context.Context, name string) (bool, error) {
	fn := h.state.GetGlobal(name)
	return fn.Type() == lua.LTFunction, nil
}

// CallFunction implements interpreter.Host: pushes the named global and
// args, PCalls it, and converts the last value it returns (the top of the
// stack) back to a value.Value. secretContext is passed as an extra trailing argument — the
// script sees it, the hexput program that does not read it back out never
// does (spec.md §4.F: "forwarded opaquely").
func (h *Host) CallFunction(ctx context.Context, name string, args []value.Value, secretContext value.Value) (value.Value, error) {
	fn := h.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("testhost: %q is not a function", name)
	}

	h.state.Push(fn)
	for _, a := range args {
		lv, err := goToLua(h.state, a)
		if err != nil {
			return nil, fmt.Errorf("testhost: argument conversion: %w", err)
		}
		h.state.Push(lv)
	}
	if secretContext != nil {
		lv, err := goToLua(h.state, secretContext)
		if err != nil {
			return nil, fmt.Errorf("testhost: secret_context conversion: %w", err)
		}
		h.state.Push(lv)
	}

	nargs := len(args)
	if secretContext != nil {
		nargs++
	}
	if err := h.state.PCall(nargs, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("testhost: call %q: %w", name, err)
	}

	retCount := h.state.GetTop()
	if retCount == 0 {
		return nil, nil
	}
	result := h.state.Get(-1)
	h.state.Pop(retCount)
	return luaToGo(result), nil
}

// goToLua converts a hexput value.Value to its Lua equivalent, mirroring
// spec.md §3's value domain (Null | Bool | Number | String | Array |
// Object).
func goToLua(state *lua.LState, v value.Value) (lua.LValue, error) {
	switch t := v.(type) {
	case nil:
		return lua.LNil, nil
	case bool:
		return lua.LBool(t), nil
	case float64:
		return lua.LNumber(t), nil
	case string:
		return lua.LString(t), nil
	case value.Array:
		table := state.NewTable()
		for i, el := range t {
			lv, err := goToLua(state, el)
			if err != nil {
				return nil, err
			}
			table.RawSetInt(i+1, lv)
		}
		return table, nil
	case *value.Object:
		table := state.NewTable()
		for _, k := range t.Keys() {
			el, _ := t.Get(k)
			lv, err := goToLua(state, el)
			if err != nil {
				return nil, err
			}
			table.RawSetString(k, lv)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// luaToGo converts a Lua value back to a hexput value.Value. A table is
// treated as an Array when every key is a contiguous 1-based integer
// index, else as an *Object — the same heuristic teacher's
// luaToGoWithVisited uses.
func luaToGo(v lua.LValue) value.Value {
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTBool:
		return bool(v.(lua.LBool))
	case lua.LTNumber:
		return float64(v.(lua.LNumber))
	case lua.LTString:
		return v.String()
	case lua.LTTable:
		table := v.(*lua.LTable)
		isArray := true
		maxIndex := 0
		count := 0
		table.ForEach(func(key, _ lua.LValue) {
			count++
			if n, ok := key.(lua.LNumber); ok && n >= 1 && n == lua.LNumber(int(n)) {
				if int(n) > maxIndex {
					maxIndex = int(n)
				}
				return
			}
			isArray = false
		})
		if isArray && maxIndex > 0 && count == maxIndex {
			arr := make(value.Array, maxIndex)
			for i := 1; i <= maxIndex; i++ {
				arr[i-1] = luaToGo(table.RawGetInt(i))
			}
			return arr
		}
		obj := value.NewObject()
		table.ForEach(func(key, val lua.LValue) {
			obj.Set(key.String(), luaToGo(val))
		})
		return obj
	default:
		return nil
	}
}
