// Package phytest provides small test fakes for the phy/ring surface,
// modeled on the call-counting mock pattern used elsewhere in this module's
// test suites: a fixture device with a deterministic, pre-loaded frame
// queue, and an Observer that records every call it receives for later
// assertion.
package phytest

import (
	"sync"
	"time"

	"github.com/go-netstack/netcore/phy"
)

// FixtureDevice is a phy.Device pre-loaded with a fixed sequence of frames
// to receive, and that records every frame committed through a TxToken.
// Unlike loopback.Loopback, transmitted frames are not fed back into the
// receive queue — the two streams are independent, which is convenient for
// tests that want to assert exactly what was sent versus what was received.
type FixtureDevice struct {
	mu           sync.Mutex
	rxQueue      [][]byte
	capabilities phy.Capabilities

	TransmitCalls int
	ReceiveCalls  int
	Sent          [][]byte
}

// NewFixtureDevice builds a FixtureDevice that yields rxFrames in order on
// successive Receive calls, then reports nothing available.
func NewFixtureDevice(caps phy.Capabilities, rxFrames ...[]byte) *FixtureDevice {
	return &FixtureDevice{capabilities: caps, rxQueue: append([][]byte{}, rxFrames...)}
}

func (d *FixtureDevice) Capabilities() phy.Capabilities {
	return d.capabilities
}

func (d *FixtureDevice) Receive(_ time.Time) (phy.RxToken, phy.TxToken, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ReceiveCalls++
	if len(d.rxQueue) == 0 {
		return nil, nil, false
	}
	frame := d.rxQueue[0]
	d.rxQueue = d.rxQueue[1:]
	return &fixtureRxToken{frame: frame}, &fixtureTxToken{device: d}, true
}

func (d *FixtureDevice) Transmit(_ time.Time) (phy.TxToken, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.TransmitCalls++
	return &fixtureTxToken{device: d}, true
}

type fixtureRxToken struct {
	frame    []byte
	consumed bool
}

func (t *fixtureRxToken) Consume(f func([]byte) error) error {
	if t.consumed {
		panic("phytest: RxToken consumed twice")
	}
	t.consumed = true
	return f(t.frame)
}

type fixtureTxToken struct {
	device   *FixtureDevice
	consumed bool
}

func (t *fixtureTxToken) Consume(length int, f func([]byte) error) error {
	if t.consumed {
		panic("phytest: TxToken consumed twice")
	}
	t.consumed = true
	buf := make([]byte, length)
	if err := f(buf); err != nil {
		return err
	}
	t.device.mu.Lock()
	t.device.Sent = append(t.device.Sent, buf)
	t.device.mu.Unlock()
	return nil
}

// CountingObserver implements ring.Observer, recording the total elements
// and call count seen by OnEnqueue/OnDequeue for later assertion.
type CountingObserver struct {
	mu                         sync.Mutex
	EnqueueCalls, DequeueCalls int
	Enqueued, Dequeued         int
}

func (o *CountingObserver) OnEnqueue(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.EnqueueCalls++
	o.Enqueued += n
}

func (o *CountingObserver) OnDequeue(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.DequeueCalls++
	o.Dequeued += n
}
