package hostproto

import (
	"context"
	"fmt"

	"hexput/value"
)

// Client implements interpreter.Host over a duplex JSON frame channel: it
// issues a correlated request, registers a pending-call entry before
// sending (spec.md §4.F), and blocks until either a reply is delivered by
// the session driver or ctx expires. The interpreter supplies ctx already
// bounded by its own timeout (ExistsTimeout/CallTimeout), so Client itself
// enforces no separate deadline.
type Client struct {
	send   func([]byte) error
	exists *pendingTable[ExistsResponse]
	calls  *pendingTable[CallResponse]
}

// NewClient builds a Client that writes outbound frames through send. send
// must be safe to call concurrently, or itself serialize onto a
// single-writer channel (spec.md §4.G) — session.Driver's outbound channel
// does this.
func NewClient(send func([]byte) error) *Client {
	return &Client{
		send:   send,
		exists: newPendingTable[ExistsResponse](),
		calls:  newPendingTable[CallResponse](),
	}
}

// FunctionExists implements interpreter.Host.
func (c *Client) FunctionExists(ctx context.Context, name string) (bool, error) {
	id := NewCorrelationID()
	ch := c.exists.insert(id)
	req := newExistsRequest(id, name)
	data, err := req.Encode()
	if err != nil {
		c.exists.remove(id)
		return false, err
	}
	if err := c.send(data); err != nil {
		c.exists.remove(id)
		return false, err
	}
	select {
	case resp := <-ch:
		return resp.Exists, nil
	case <-ctx.Done():
		c.exists.remove(id)
		return false, ctx.Err()
	}
}

// CallFunction implements interpreter.Host.
func (c *Client) CallFunction(ctx context.Context, name string, args []value.Value, secretContext value.Value) (value.Value, error) {
	id := NewCorrelationID()
	ch := c.calls.insert(id)
	req := newCallRequest(id, name, args, secretContext)
	data, err := req.Encode()
	if err != nil {
		c.calls.remove(id)
		return nil, err
	}
	if err := c.send(data); err != nil {
		c.calls.remove(id)
		return nil, err
	}
	select {
	case resp := <-ch:
		if resp.Error != "" {
			return nil, fmt.Errorf("%s", resp.Error)
		}
		return resp.Result, nil
	case <-ctx.Done():
		c.calls.remove(id)
		return nil, ctx.Err()
	}
}

// DeliverExistsResponse routes an inbound exists-reply to its awaiter.
// Returns false if id is unknown (logged and dropped by the caller).
func (c *Client) DeliverExistsResponse(resp ExistsResponse) bool {
	return c.exists.deliver(resp.ID, resp)
}

// DeliverCallResponse routes an inbound call-reply to its awaiter. Returns
// false if id is unknown.
func (c *Client) DeliverCallResponse(resp CallResponse) bool {
	return c.calls.deliver(resp.ID, resp)
}
