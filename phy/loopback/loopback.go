// Package loopback provides the reference phy.Device: every frame
// transmitted through it is received back through it in strict FIFO order.
// Transmitted frames are drawn from internal/bufpool rather than allocated
// fresh, and returned to the pool once the matching Receive has been
// consumed, so steady-state traffic at a fixed frame size settles into
// reusing the same handful of buffers.
package loopback

import (
	"time"

	"github.com/go-netstack/netcore/internal/bufpool"
	"github.com/go-netstack/netcore/phy"
)

// Config configures a Loopback device.
type Config struct {
	// Medium is reported verbatim from Capabilities.
	Medium phy.Medium
}

// DefaultConfig returns a Config with an Ethernet medium.
func DefaultConfig() Config {
	return Config{Medium: phy.MediumEthernet}
}

const maxTransmissionUnit = 65535

// Loopback is a FIFO queue of owned frames satisfying phy.Device.
type Loopback struct {
	queue  [][]byte
	medium phy.Medium
}

// New creates an empty loopback device.
func New(cfg Config) *Loopback {
	return &Loopback{medium: cfg.Medium}
}

func (l *Loopback) Capabilities() phy.Capabilities {
	return phy.Capabilities{
		Medium:              l.medium,
		MaxTransmissionUnit: maxTransmissionUnit,
	}
}

// Receive pops the oldest queued frame. The returned TxToken shares this
// device's queue, so a reply committed from it is appended in the same
// scheduling quantum as the pop.
func (l *Loopback) Receive(_ time.Time) (phy.RxToken, phy.TxToken, bool) {
	if len(l.queue) == 0 {
		return nil, nil, false
	}
	frame := l.queue[0]
	l.queue = l.queue[1:]
	return &rxToken{frame: frame}, &txToken{device: l}, true
}

// Transmit always succeeds: the loopback queue has no fixed capacity.
func (l *Loopback) Transmit(_ time.Time) (phy.TxToken, bool) {
	return &txToken{device: l}, true
}

type rxToken struct {
	frame    []byte
	consumed bool
}

func (t *rxToken) Consume(f func([]byte) error) error {
	if t.consumed {
		panic("loopback: RxToken consumed twice")
	}
	t.consumed = true
	err := f(t.frame)
	bufpool.Put(t.frame)
	return err
}

type txToken struct {
	device   *Loopback
	consumed bool
}

func (t *txToken) Consume(length int, f func([]byte) error) error {
	if t.consumed {
		panic("loopback: TxToken consumed twice")
	}
	if length > maxTransmissionUnit {
		panic("loopback: TxToken.Consume length exceeds MTU")
	}
	t.consumed = true
	buf := bufpool.Get(length)
	if err := f(buf); err != nil {
		bufpool.Put(buf)
		return err
	}
	t.device.queue = append(t.device.queue, buf)
	return nil
}
