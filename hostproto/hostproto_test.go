package hostproto

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hexput/value"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewCorrelationIDShapeAndUniqueness(t *testing.T) {
	a := NewCorrelationID()
	b := NewCorrelationID()
	require.Regexp(t, uuidV4, a)
	require.NotEqual(t, a, b)
}

func TestExistsRequestEncodeShape(t *testing.T) {
	data, err := newExistsRequest("id-1", "greet").Encode()
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"id-1","action":"is_function_exists","function_name":"greet"}`, string(data))
}

func TestCallRequestEncodePreservesArgumentOrder(t *testing.T) {
	data, err := newCallRequest("id-2", "add", []value.Value{float64(1), "two", nil}, nil).Encode()
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"id-2","function_name":"add","arguments":[1,"two",null]}`, string(data))
}

func TestExecResponseEncodeSuccessOmitsError(t *testing.T) {
	data, err := ExecResponse{ID: "id-3", Success: true, Result: float64(42)}.Encode()
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"id-3","success":true,"result":42}`, string(data))
}

func TestExecResponseEncodeFailureOmitsResult(t *testing.T) {
	data, err := ExecResponse{ID: "id-4", Success: false, Error: "boom"}.Encode()
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"id-4","success":false,"error":"boom"}`, string(data))
}

func TestConnectionHandshakeEncode(t *testing.T) {
	data, err := ConnectionHandshake{}.Encode()
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"connection","status":"connected"}`, string(data))
}

func TestClassifyExistsResponse(t *testing.T) {
	kind, er, _, _, err := Classify([]byte(`{"id":"x1","exists":true}`))
	require.NoError(t, err)
	require.Equal(t, FrameExistsResponse, kind)
	require.True(t, er.Exists)
	require.Equal(t, "x1", er.ID)
}

func TestClassifyCallResponseWithResult(t *testing.T) {
	kind, _, cr, _, err := Classify([]byte(`{"id":"x2","result":"ok"}`))
	require.NoError(t, err)
	require.Equal(t, FrameCallResponse, kind)
	require.Equal(t, "ok", cr.Result)
}

func TestClassifyCallResponseWithError(t *testing.T) {
	kind, _, cr, _, err := Classify([]byte(`{"id":"x3","error":"nope"}`))
	require.NoError(t, err)
	require.Equal(t, FrameCallResponse, kind)
	require.Equal(t, "nope", cr.Error)
}

func TestClassifyExecRequestParseAction(t *testing.T) {
	kind, _, _, req, err := Classify([]byte(`{"id":"x4","action":"parse","code":"res 1;"}`))
	require.NoError(t, err)
	require.Equal(t, FrameExecRequest, kind)
	require.Equal(t, "parse", req.Action)
	require.Equal(t, "res 1;", req.Code)
}

func TestClassifyExecRequestExecuteActionWithContext(t *testing.T) {
	kind, _, _, req, err := Classify([]byte(`{"id":"x5","action":"execute","code":"res x;","context":{"x":1}}`))
	require.NoError(t, err)
	require.Equal(t, FrameExecRequest, kind)
	obj := req.Context.(*value.Object)
	x, _ := obj.Get("x")
	require.Equal(t, float64(1), x)
}

func TestClassifyUnknownFrameErrors(t *testing.T) {
	_, _, _, _, err := Classify([]byte(`{"id":"x6"}`))
	require.Error(t, err)
}

func TestClientFunctionExistsDeliversReply(t *testing.T) {
	var c *Client
	c = NewClient(func(b []byte) error {
		// Simulate the session driver routing the host's reply back in,
		// as soon as the request frame is observed going out.
		id := extractID(b)
		go c.DeliverExistsResponse(ExistsResponse{ID: id, Exists: true})
		return nil
	})

	exists, err := c.FunctionExists(context.Background(), "greet")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestClientFunctionExistsTimesOutWithContext(t *testing.T) {
	c := NewClient(func(b []byte) error { return nil })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.FunctionExists(ctx, "greet")
	require.Error(t, err)
}

func TestClientCallFunctionSurfacesHostError(t *testing.T) {
	var c *Client
	c = NewClient(func(b []byte) error {
		id := extractID(b)
		go c.DeliverCallResponse(CallResponse{ID: id, Error: "divide by zero"})
		return nil
	})
	_, err := c.CallFunction(context.Background(), "div", []value.Value{float64(1), float64(0)}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "divide by zero")
}

func TestDeliverUnknownIDReturnsFalse(t *testing.T) {
	c := NewClient(func(b []byte) error { return nil })
	require.False(t, c.DeliverExistsResponse(ExistsResponse{ID: "no-such-id"}))
	require.False(t, c.DeliverCallResponse(CallResponse{ID: "no-such-id"}))
}

// extractID pulls the "id" field back out of an encoded request frame, for
// tests that need to address a reply at the request they just observed.
func extractID(frame []byte) string {
	v, err := value.DecodeJSON(frame)
	if err != nil {
		return ""
	}
	obj, ok := v.(*value.Object)
	if !ok {
		return ""
	}
	id, _ := obj.Get("id")
	s, _ := id.(string)
	return s
}
