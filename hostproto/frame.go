package hostproto

import (
	"fmt"

	"hexput/value"
)

// FrameKind classifies a decoded inbound frame (spec.md §4.G): a response
// routes to one of the two pending-call tables, a request spawns a job.
type FrameKind int

const (
	FrameUnknown FrameKind = iota
	FrameExistsResponse
	FrameCallResponse
	FrameExecRequest
)

// Classify decodes raw and identifies which of the three inbound shapes it
// is, returning the matching parsed value in the corresponding return slot.
func Classify(raw []byte) (FrameKind, ExistsResponse, CallResponse, ExecRequest, error) {
	v, err := value.DecodeJSON(raw)
	if err != nil {
		return FrameUnknown, ExistsResponse{}, CallResponse{}, ExecRequest{}, fmt.Errorf("hostproto: decode frame: %w", err)
	}
	obj, ok := v.(*value.Object)
	if !ok {
		return FrameUnknown, ExistsResponse{}, CallResponse{}, ExecRequest{}, fmt.Errorf("hostproto: frame is not a JSON object")
	}

	if _, ok := obj.Get("exists"); ok {
		er, err := parseExistsResponse(obj)
		return FrameExistsResponse, er, CallResponse{}, ExecRequest{}, err
	}

	if actionV, ok := obj.Get("action"); ok {
		if action, _ := actionV.(string); action == "parse" || action == "execute" {
			req, err := parseExecRequest(obj)
			return FrameExecRequest, ExistsResponse{}, CallResponse{}, req, err
		}
	}

	if _, hasResult := obj.Get("result"); hasResult {
		cr, err := parseCallResponse(obj)
		return FrameCallResponse, ExistsResponse{}, cr, ExecRequest{}, err
	}
	if _, hasErr := obj.Get("error"); hasErr {
		if _, hasID := obj.Get("id"); hasID {
			cr, err := parseCallResponse(obj)
			return FrameCallResponse, ExistsResponse{}, cr, ExecRequest{}, err
		}
	}

	return FrameUnknown, ExistsResponse{}, CallResponse{}, ExecRequest{}, fmt.Errorf("hostproto: unrecognized frame shape")
}
