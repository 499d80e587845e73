// Package capture provides a phy.Device decorator that records every frame
// received through it into a caller-supplied ring buffer, without altering
// frame content or the wrapped device's behavior. It is a zero-protocol-logic
// tap, suitable for offline inspection of traffic crossing a device.
//
// Only Rx frames are recorded. On a loopback-style device a transmitted
// frame and the frame it later yields on Receive are the same physical
// bytes crossing the tap once; recording on both Consume paths would count
// that single frame twice.
package capture

import (
	"time"

	"github.com/go-netstack/netcore/phy"
	"github.com/go-netstack/netcore/ring"
)

// Device wraps another phy.Device and mirrors every received frame into a
// recording ring buffer. If the recording buffer is full, the oldest
// recorded frame is silently dropped to make room — a capture tap must
// never cause the wrapped device's transmit or receive to fail or block.
type Device struct {
	inner  phy.Device
	record *ring.RingBuffer[[]byte]
}

// New wraps inner, recording consumed frames into record. record's capacity
// bounds how many frames are retained; it is never grown.
func New(inner phy.Device, record *ring.RingBuffer[[]byte]) *Device {
	return &Device{inner: inner, record: record}
}

func (d *Device) Capabilities() phy.Capabilities {
	return d.inner.Capabilities()
}

func (d *Device) Receive(timestamp time.Time) (phy.RxToken, phy.TxToken, bool) {
	rx, tx, ok := d.inner.Receive(timestamp)
	if !ok {
		return nil, nil, false
	}
	return &rxToken{inner: rx, record: d.record}, tx, true
}

// Transmit passes through to inner unwrapped: Tx frames are not recorded
// (see the package doc comment).
func (d *Device) Transmit(timestamp time.Time) (phy.TxToken, bool) {
	return d.inner.Transmit(timestamp)
}

func recordOne(rb *ring.RingBuffer[[]byte], frame []byte) {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	if rb.IsFull() {
		rb.DequeueOne()
	}
	slot, err := rb.EnqueueOne()
	if err != nil {
		return
	}
	*slot = cp
}

type rxToken struct {
	inner  phy.RxToken
	record *ring.RingBuffer[[]byte]
}

func (t *rxToken) Consume(f func([]byte) error) error {
	return t.inner.Consume(func(frame []byte) error {
		recordOne(t.record, frame)
		return f(frame)
	})
}

