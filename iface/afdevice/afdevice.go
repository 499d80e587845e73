// Package afdevice wraps a caller-opened file descriptor (a raw socket, a
// tun fd — opening one is still out of scope for this module) as a
// phy.Device, multiplexing non-blocking read/write over it the way a real
// link adapter would. It demonstrates the phy token contract against an
// actual kernel facility instead of only the in-memory loopback reference.
//
// afdevice never opens, configures, or closes the fd it is given; the
// caller owns its lifecycle entirely. Waiting for the fd to become
// readable/writable between polls is the caller's job too, via phy.Wait —
// Receive and Transmit themselves never block.
package afdevice

import (
	"github.com/go-netstack/netcore/netlog"
	"github.com/go-netstack/netcore/phy"
)

// Config configures a Device.
type Config struct {
	FD     int
	Medium phy.Medium
	// MaxTransmissionUnit bounds both the single read buffer size and the
	// largest frame a TxToken will accept.
	MaxTransmissionUnit int
	// Logger, if non-nil, receives Debug-level traces of failed reads and
	// writes. Library code never logs through a package-level global.
	Logger *netlog.Logger
}

// Device adapts Config.FD to the phy.Device contract. The zero value is not
// usable; construct with New.
type Device struct {
	cfg Config
}

// New builds a Device over cfg.FD. The fd must already be open and set
// non-blocking by the caller; afdevice never calls fcntl itself, since the
// caller may be multiplexing the fd for other purposes too.
func New(cfg Config) *Device {
	return &Device{cfg: cfg}
}

func (d *Device) Capabilities() phy.Capabilities {
	return phy.Capabilities{
		Medium:              d.cfg.Medium,
		MaxTransmissionUnit: d.cfg.MaxTransmissionUnit,
	}
}
