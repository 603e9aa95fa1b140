// Package hostproto implements spec.md §4.F: the correlated request/reply
// pairs the interpreter exchanges with its host over a JSON-message duplex
// channel, plus the two pending-call tables that make an async host call
// look synchronous to the calling goroutine.
package hostproto

import (
	"crypto/rand"
	"fmt"
)

// NewCorrelationID returns a fresh UUIDv4-shaped string. No third-party
// id-generation library is wired here — see DESIGN.md.
func NewCorrelationID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("hostproto: crypto/rand unavailable: " + err.Error())
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10

	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
