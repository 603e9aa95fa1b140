package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go-parser/pkg/ast"
	parserconfig "go-parser/pkg/config"
	"go-parser/pkg/parser"

	"hexput/config"
	"hexput/interpreter"
	"hexput/optimizer"
	"hexput/value"
)

// buildProgram runs the shared lex→parse→optimize pipeline (spec.md §2's
// data flow; both "parse" and "execute" actions go through it identically,
// grounded on original_source/hexput-ast-api/src/lib.rs's process_code,
// which always optimizes the parsed AST before handing it back).
func buildProgram(code string, flags parserconfig.FeatureFlags) (*ast.Program, error) {
	prog, err := parser.Parse(code, flags)
	if err != nil {
		return nil, err
	}
	return optimizer.Optimize(prog), nil
}

// runParse implements the "parse" action: build the AST and render it to
// JSON per the request's minify/include_source_mapping options
// (spec.md §6), returned wrapped in value.RawJSON so it rides through
// ExecResponse.Result unmolested.
func runParse(req *request) (value.Value, error) {
	flags, minify, includeSourceMapping := config.RequestOptions(req.cfg, req.options)
	prog, err := buildProgram(req.code, flags)
	if err != nil {
		return nil, fmt.Errorf("error parsing AST: %w", err)
	}

	tree := prog.ToMap(includeSourceMapping)
	var data []byte
	if minify {
		data, err = json.Marshal(tree)
	} else {
		data, err = json.MarshalIndent(tree, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("error serializing AST: %w", err)
	}
	return value.RawJSON(data), nil
}

// runExecute implements the "execute" action: build the AST, then walk it
// with a fresh interpreter.Interpreter against req.host, seeded from the
// request's context object.
func runExecute(ctx context.Context, req *request) (value.Value, error) {
	flags, _, _ := config.RequestOptions(req.cfg, req.options)
	prog, err := buildProgram(req.code, flags)
	if err != nil {
		return nil, fmt.Errorf("error parsing AST: %w", err)
	}

	in := &interpreter.Interpreter{
		Host:          req.host,
		ForbiddenKey:  req.cfg.ForbiddenKey,
		ExistsTimeout: req.cfg.ExistsTimeout,
		CallTimeout:   req.cfg.CallTimeout,
	}
	vars := contextToVars(req.context)
	return in.Run(ctx, prog, vars, req.secretContext)
}

// contextToVars flattens the request's `context` object (spec.md §6) into
// the name→Value map Interpreter.Run seeds the root ExecutionContext with.
// A missing or non-object context yields no variables.
func contextToVars(ctxValue value.Value) map[string]value.Value {
	obj, ok := ctxValue.(*value.Object)
	if !ok {
		return nil
	}
	vars := make(map[string]value.Value, obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		vars[k] = v
	}
	return vars
}
