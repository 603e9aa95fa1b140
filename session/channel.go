// Package session implements the per-connection driver (spec.md §4.G,
// component G): one Driver per connected host, classifying inbound frames
// (a response routes to hostproto's pending-call tables; a request spawns
// a task running the parse/execute pipeline), with a single-writer rule on
// the outbound side.
package session

// FrameChannel is the transport abstraction a Driver runs over: one UTF-8
// JSON document per Send/Recv call (spec.md §6's "one per message"). The
// actual transport (stdio newline-delimited JSON for cmd/hexputd, or a
// WebSocket for a hosted deployment) is an external collaborator per
// spec.md's introduction — Driver only ever sees this interface.
type FrameChannel interface {
	// Recv blocks until the next inbound frame is available, or returns an
	// error (including io.EOF on a clean close) that ends the session.
	Recv() ([]byte, error)

	// Send writes one outbound frame. Driver never calls Send
	// concurrently from more than one goroutine (the single-writer rule),
	// so implementations need not serialize internally.
	Send(frame []byte) error
}
