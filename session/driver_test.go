package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hexput/config"
	"hexput/hostproto"
	"hexput/logging"
	"hexput/value"
)

// fakeChannel is an in-memory FrameChannel: Recv drains in, Send appends
// to out and notifies watchers.
type fakeChannel struct {
	in  chan []byte
	out chan []byte
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{in: make(chan []byte, 16), out: make(chan []byte, 16)}
}

func (f *fakeChannel) Recv() ([]byte, error) {
	frame, ok := <-f.in
	if !ok {
		return nil, io.EOF
	}
	return frame, nil
}

func (f *fakeChannel) Send(frame []byte) error {
	f.out <- frame
	return nil
}

func requireFrame(t *testing.T, ch *fakeChannel) *value.Object {
	t.Helper()
	select {
	case frame := <-ch.out:
		v, err := value.DecodeJSON(frame)
		require.NoError(t, err)
		obj, ok := v.(*value.Object)
		require.True(t, ok)
		return obj
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for outbound frame")
		return nil
	}
}

func TestDriverSendsHandshakeFirst(t *testing.T) {
	ch := newFakeChannel()
	close(ch.in)
	d := NewDriver(ch, config.Default(), logging.NewDefaultLogger(), "s1")

	err := d.Run(context.Background())
	require.NoError(t, err)

	frame := requireFrame(t, ch)
	typ, _ := frame.Get("type")
	require.Equal(t, "connection", typ)
}

func TestDriverHandlesParseRequest(t *testing.T) {
	ch := newFakeChannel()
	ch.in <- []byte(`{"id":"p1","action":"parse","code":"res 1;"}`)
	close(ch.in)

	d := NewDriver(ch, config.Default(), logging.NewDefaultLogger(), "s2")
	err := d.Run(context.Background())
	require.NoError(t, err)

	requireFrame(t, ch) // handshake
	resp := requireFrame(t, ch)
	success, _ := resp.Get("success")
	require.Equal(t, true, success)
	result, ok := resp.Get("result")
	require.True(t, ok)
	ast, ok := result.(*value.Object)
	require.True(t, ok)
	typ, _ := ast.Get("type")
	require.Equal(t, "PROGRAM", typ)
}

func TestDriverHandlesExecuteRequestWithHostRoundTrip(t *testing.T) {
	ch := newFakeChannel()
	ch.in <- []byte(`{"id":"e1","action":"execute","code":"res greet();"}`)

	d := NewDriver(ch, config.Default(), logging.NewDefaultLogger(), "s3")

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	requireFrame(t, ch) // handshake

	existsFrame := requireFrame(t, ch)
	action, _ := existsFrame.Get("action")
	require.Equal(t, "is_function_exists", action)
	existsID, _ := existsFrame.Get("id")

	existsReplyObj := value.NewObject()
	existsReplyObj.Set("id", existsID)
	existsReplyObj.Set("exists", true)
	existsReply, err := value.EncodeJSON(existsReplyObj)
	require.NoError(t, err)
	ch.in <- existsReply

	callFrame := requireFrame(t, ch)
	fn, _ := callFrame.Get("function_name")
	require.Equal(t, "greet", fn)
	callID, _ := callFrame.Get("id")

	callReplyObj := value.NewObject()
	callReplyObj.Set("id", callID)
	callReplyObj.Set("result", "hi")
	callReply, err := value.EncodeJSON(callReplyObj)
	require.NoError(t, err)
	ch.in <- callReply

	resp := requireFrame(t, ch)
	success, _ := resp.Get("success")
	require.Equal(t, true, success)
	result, _ := resp.Get("result")
	require.Equal(t, "hi", result)

	close(ch.in)
	require.NoError(t, <-done)
}

func TestDriverRejectsUnrecognizedFrameWithoutClosing(t *testing.T) {
	ch := newFakeChannel()
	ch.in <- []byte(`{"id":"x1"}`)
	ch.in <- []byte(`{"id":"p1","action":"parse","code":"res 1;"}`)
	close(ch.in)

	d := NewDriver(ch, config.Default(), logging.NewDefaultLogger(), "s4")
	err := d.Run(context.Background())
	require.NoError(t, err)

	requireFrame(t, ch) // handshake
	resp := requireFrame(t, ch)
	id, _ := resp.Get("id")
	require.Equal(t, "p1", id)
}

func TestExecResponseEncodeCarriesErrorMessage(t *testing.T) {
	resp := hostproto.ExecResponse{ID: "z", Success: false, Error: "boom"}
	data, err := resp.Encode()
	require.NoError(t, err)
	require.Contains(t, string(data), "boom")
}
