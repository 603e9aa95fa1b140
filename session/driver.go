package session

import (
	"context"
	"fmt"
	"io"

	"hexput/config"
	"hexput/errors"
	"hexput/hostproto"
	"hexput/jobmanager"
	"hexput/logging"
	"hexput/value"
)

// defaultConcurrency bounds how many "execute"/"parse" requests a single
// connection runs at once (spec.md §5: "the driver may process multiple
// incoming requests concurrently"). A request submitted past this bound
// gets an immediate `request rejected: ...` failure response
// (sendRejection) rather than queuing — jobmanager.JobManager.Submit rejects outright when its
// semaphore is full, the same bounded-rejection policy teacher's
// jobmanager already implements.
const defaultConcurrency = 64

// request carries everything one pipeline run needs, gathered once out of
// the decoded hostproto.ExecRequest.
type request struct {
	id            string
	action        string
	code          string
	options       *value.Object
	context       value.Value
	secretContext value.Value
	cfg           config.RuntimeConfig
	host          *hostproto.Client
}

// Driver runs one connected host's session: classify inbound frames,
// route responses to the host client's pending-call tables, spawn a job
// per request (spec.md §4.G). Grounded on teacher's jobmanager-backed
// task-spawning idiom and original_source/hexput-runtime/src/server.rs's
// per-connection state machine and single-writer outbound rule.
type Driver struct {
	ch     FrameChannel
	cfg    config.RuntimeConfig
	logger logging.Logger
	client *hostproto.Client
	jobs   *jobmanager.JobManager
	out    chan []byte
}

// NewDriver builds a Driver over ch. The logger is tagged with sessionID
// (spec.md §4.G: "one concurrent context per connected host").
func NewDriver(ch FrameChannel, cfg config.RuntimeConfig, logger logging.Logger, sessionID string) *Driver {
	d := &Driver{
		ch:     ch,
		cfg:    cfg,
		logger: logger.WithSession(sessionID),
		jobs:   jobmanager.NewJobManager(defaultConcurrency),
		out:    make(chan []byte, 64),
	}
	d.client = hostproto.NewClient(d.enqueueSend)
	return d
}

// enqueueSend is hostproto.Client's send callback: it hands the frame to
// the single outbound writer goroutine rather than writing ch directly,
// preserving the single-writer rule even though many interpreter
// goroutines may call CallFunction/FunctionExists concurrently.
func (d *Driver) enqueueSend(frame []byte) error {
	d.out <- frame
	return nil
}

// Run drives the session until ch.Recv returns an error (including a
// clean io.EOF on connection close). It sends the fixed connection
// handshake frame first.
func (d *Driver) Run(ctx context.Context) error {
	writerDone := make(chan struct{})
	go d.writeLoop(writerDone)
	defer func() {
		// Wait for every in-flight job to finish sending its response
		// before closing d.out — otherwise a job still running past Run's
		// return would send on a closed channel.
		d.jobs.Shutdown()
		close(d.out)
		<-writerDone
	}()

	handshake, err := hostproto.ConnectionHandshake{}.Encode()
	if err != nil {
		return err
	}
	if err := d.ch.Send(handshake); err != nil {
		return err
	}

	for {
		raw, err := d.ch.Recv()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		d.handleFrame(ctx, raw)
	}
}

// writeLoop is the sole consumer of d.out, and therefore the sole writer
// of d.ch once Run has written the handshake (which happens before any
// frame can enter d.out) — the single-writer rule of spec.md §4.G / §5.
func (d *Driver) writeLoop(done chan struct{}) {
	defer close(done)
	for frame := range d.out {
		if err := d.ch.Send(frame); err != nil {
			d.logger.Error("session: write failed", logging.LogField{Key: "error", Value: err.Error()})
		}
	}
}

// handleFrame classifies one inbound frame and either routes it to a
// pending-call table or spawns a job for it. A malformed frame is logged
// and dropped; it never tears down the connection (spec.md §7: "the
// driver never crashes a connection on a single request failure").
func (d *Driver) handleFrame(ctx context.Context, raw []byte) {
	kind, existsResp, callResp, execReq, err := hostproto.Classify(raw)
	if err != nil {
		d.logger.Warn("session: unrecognized frame", logging.LogField{Key: "error", Value: err.Error()})
		return
	}

	switch kind {
	case hostproto.FrameExistsResponse:
		d.client.DeliverExistsResponse(existsResp)
	case hostproto.FrameCallResponse:
		d.client.DeliverCallResponse(callResp)
	case hostproto.FrameExecRequest:
		d.spawnRequest(ctx, execReq)
	}
}

// spawnRequest submits one parse/execute pipeline run as a job, bounded by
// the driver's concurrency limit; a rejected submission still gets a
// well-formed failure response rather than being silently dropped.
func (d *Driver) spawnRequest(ctx context.Context, req hostproto.ExecRequest) {
	r := &request{
		id:            req.ID,
		action:        req.Action,
		code:          req.Code,
		options:       req.Options,
		context:       req.Context,
		secretContext: req.SecretContext,
		cfg:           d.cfg,
		host:          d.client,
	}

	_, err := d.jobs.Submit(func() (interface{}, error) {
		resp := d.execute(ctx, r)
		data, err := resp.Encode()
		if err != nil {
			return nil, err
		}
		d.out <- data
		return nil, nil
	}, req.Action)
	if err != nil {
		d.sendRejection(r.id, err)
	}
}

// sendRejection answers a request the driver could not even start (e.g.
// the concurrency limit is saturated) with a well-formed failure response.
func (d *Driver) sendRejection(id string, cause error) {
	resp := hostproto.ExecResponse{ID: id, Success: false, Error: fmt.Sprintf("request rejected: %s", cause)}
	data, err := resp.Encode()
	if err != nil {
		d.logger.Error("session: failed to encode rejection", logging.LogField{Key: "error", Value: err.Error()})
		return
	}
	d.out <- data
}

// execute runs one request's pipeline to completion and builds its
// response, never letting a panic or error escape to the caller (spec.md
// §5: "a panic/error in one task must not affect others or close the
// connection").
func (d *Driver) execute(ctx context.Context, r *request) (resp hostproto.ExecResponse) {
	resp.ID = r.id
	defer func() {
		if rec := recover(); rec != nil {
			resp.Success = false
			resp.Error = fmt.Sprintf("internal error: %v", rec)
		}
	}()

	var result value.Value
	var err error
	switch r.action {
	case "parse":
		result, err = runParse(r)
	case "execute":
		result, err = runExecute(ctx, r)
	default:
		err = errors.InvalidRequestFormat(fmt.Sprintf("unknown action %q", r.action))
	}

	if err != nil {
		resp.Success = false
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	resp.Result = result
	return resp
}
