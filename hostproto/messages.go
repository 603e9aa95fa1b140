package hostproto

import (
	"fmt"

	"hexput/value"
)

// Wire frames are encoded/decoded through value.Object rather than plain Go
// struct tags: encoding/json cannot preserve key order when decoding into an
// interface{}-typed field (arguments/result/context are arbitrary hexput
// values, spec.md §3), so every frame is represented internally as a
// *value.Object and (de)serialized with value.EncodeJSON/DecodeJSON, which
// do preserve it end-to-end.

// ExistsRequest is the outbound FunctionExistsRequest (spec.md §4.F, §6).
type ExistsRequest struct {
	ID           string
	FunctionName string
}

func newExistsRequest(id, name string) ExistsRequest {
	return ExistsRequest{ID: id, FunctionName: name}
}

func (r ExistsRequest) toObject() *value.Object {
	o := value.NewObject()
	o.Set("id", r.ID)
	o.Set("action", "is_function_exists")
	o.Set("function_name", r.FunctionName)
	return o
}

// Encode renders r to wire bytes.
func (r ExistsRequest) Encode() ([]byte, error) {
	return value.EncodeJSON(r.toObject())
}

// ExistsResponse is the inbound reply correlated to an ExistsRequest.
type ExistsResponse struct {
	ID     string
	Exists bool
}

func parseExistsResponse(obj *value.Object) (ExistsResponse, error) {
	id, err := stringField(obj, "id")
	if err != nil {
		return ExistsResponse{}, err
	}
	existsV, _ := obj.Get("exists")
	exists, _ := existsV.(bool)
	return ExistsResponse{ID: id, Exists: exists}, nil
}

// CallRequest is the outbound FunctionCallRequest (spec.md §4.F, §6).
type CallRequest struct {
	ID            string
	FunctionName  string
	Arguments     []value.Value
	SecretContext value.Value
}

func newCallRequest(id, name string, args []value.Value, secretContext value.Value) CallRequest {
	return CallRequest{ID: id, FunctionName: name, Arguments: args, SecretContext: secretContext}
}

func (r CallRequest) toObject() *value.Object {
	o := value.NewObject()
	o.Set("id", r.ID)
	o.Set("function_name", r.FunctionName)
	argArr := make(value.Array, len(r.Arguments))
	copy(argArr, r.Arguments)
	o.Set("arguments", argArr)
	if r.SecretContext != nil {
		o.Set("secret_context", r.SecretContext)
	}
	return o
}

// Encode renders r to wire bytes.
func (r CallRequest) Encode() ([]byte, error) {
	return value.EncodeJSON(r.toObject())
}

// CallResponse is the inbound reply correlated to a CallRequest.
type CallResponse struct {
	ID     string
	Result value.Value
	Error  string
}

func parseCallResponse(obj *value.Object) (CallResponse, error) {
	id, err := stringField(obj, "id")
	if err != nil {
		return CallResponse{}, err
	}
	result, _ := obj.Get("result")
	errStr, _ := obj.Get("error")
	msg, _ := errStr.(string)
	return CallResponse{ID: id, Result: result, Error: msg}, nil
}

// ExecRequest is the inbound WebSocketRequest driving one parse/execute
// pipeline run (spec.md §4.F, §6).
type ExecRequest struct {
	ID            string
	Action        string // "parse" | "execute"
	Code          string
	Options       *value.Object
	Context       value.Value
	SecretContext value.Value
}

func parseExecRequest(obj *value.Object) (ExecRequest, error) {
	id, err := stringField(obj, "id")
	if err != nil {
		return ExecRequest{}, err
	}
	action, err := stringField(obj, "action")
	if err != nil {
		return ExecRequest{}, err
	}
	code, _ := obj.Get("code")
	codeStr, _ := code.(string)

	var opts *value.Object
	if ov, ok := obj.Get("options"); ok {
		if o, ok := ov.(*value.Object); ok {
			opts = o
		}
	}
	ctx, _ := obj.Get("context")
	secretCtx, _ := obj.Get("secret_context")

	return ExecRequest{ID: id, Action: action, Code: codeStr, Options: opts, Context: ctx, SecretContext: secretCtx}, nil
}

// ExecResponse is the outbound reply to an ExecRequest.
type ExecResponse struct {
	ID      string
	Success bool
	Result  value.Value
	Error   string
}

func (r ExecResponse) toObject() *value.Object {
	o := value.NewObject()
	o.Set("id", r.ID)
	o.Set("success", r.Success)
	if r.Success {
		o.Set("result", r.Result)
	} else {
		o.Set("error", r.Error)
	}
	return o
}

// Encode renders r to wire bytes.
func (r ExecResponse) Encode() ([]byte, error) {
	return value.EncodeJSON(r.toObject())
}

// ConnectionHandshake is the fixed first frame sent on every new session
// (spec.md §5 supplement 1, §6).
type ConnectionHandshake struct{}

// Encode renders the fixed handshake frame to wire bytes.
func (ConnectionHandshake) Encode() ([]byte, error) {
	o := value.NewObject()
	o.Set("type", "connection")
	o.Set("status", "connected")
	return value.EncodeJSON(o)
}

func stringField(obj *value.Object, key string) (string, error) {
	v, ok := obj.Get(key)
	if !ok {
		return "", fmt.Errorf("hostproto: missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("hostproto: field %q is not a string", key)
	}
	return s, nil
}
