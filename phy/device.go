// Package phy defines the token-based device contract shared by every
// link-layer adapter in this module (the in-memory loopback reference and
// the fd-based adapter in iface/afdevice). A Device never blocks: it either
// hands back a token immediately or reports that none is currently
// available, leaving scheduling entirely to the caller.
package phy

import "time"

// Medium identifies the link-layer family a Device frames for. It governs
// nothing in this package beyond being reported in Capabilities; framing
// itself belongs to the protocol layers above.
type Medium int

const (
	MediumEthernet Medium = iota
	MediumIP
	MediumIEEE802154
)

func (m Medium) String() string {
	switch m {
	case MediumEthernet:
		return "ethernet"
	case MediumIP:
		return "ip"
	case MediumIEEE802154:
		return "ieee802154"
	default:
		return "unknown"
	}
}

// Capabilities describes a Device's fixed, immutable properties.
type Capabilities struct {
	Medium               Medium
	MaxTransmissionUnit int
}

// Device is a source and sink of link-layer frames. Implementations must
// not suspend inside Receive or Transmit: either a token is available now,
// or it isn't. Tokens returned from one call must be consumed before the
// next Receive/Transmit call on the same Device (single-inflight
// discipline); a Device is not safe for concurrent use.
type Device interface {
	Capabilities() Capabilities

	// Receive returns an (RxToken, TxToken) pair iff a frame is currently
	// available, so a reply can be queued without a second poll. ok is
	// false when nothing is available.
	Receive(timestamp time.Time) (rx RxToken, tx TxToken, ok bool)

	// Transmit returns a TxToken iff the device can currently accept a
	// frame to send. ok is false when the underlying link is
	// backpressured.
	Transmit(timestamp time.Time) (tx TxToken, ok bool)
}

// RxToken holds exclusive, one-shot access to a single received frame.
//
// Consume invokes f on the frame's bytes exactly once and forwards f's
// error. Go methods cannot introduce their own type parameters, so unlike
// the ring package's *With helpers, Consume cannot forward an arbitrary
// result type R; callers needing a value out of f close over a local
// variable, matching the rest of this module's callback-returns-error
// convention.
type RxToken interface {
	Consume(f func(frame []byte) error) error
}

// TxToken holds exclusive, one-shot access to allocate and commit a single
// frame of caller-chosen length.
//
// Consume reserves a length-byte buffer, invokes f on it for in-place
// framing, and commits the buffer to the link iff f returns a nil error. A
// commit attempt with length greater than the device's MTU is a programmer
// error and panics rather than returning an error.
type TxToken interface {
	Consume(length int, f func(frame []byte) error) error
}
