//go:build unix

package afdevice

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/go-netstack/netcore/phy"
)

// Receive performs a single non-blocking read. If the fd currently has no
// data (EAGAIN) or is otherwise not ready, ok is false — the caller is
// expected to have waited on the fd (e.g. via phy.Wait) before calling
// Receive again.
func (d *Device) Receive(_ time.Time) (phy.RxToken, phy.TxToken, bool) {
	buf := make([]byte, d.cfg.MaxTransmissionUnit)
	n, err := unix.Read(d.cfg.FD, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return nil, nil, false
		}
		if d.cfg.Logger != nil {
			d.cfg.Logger.Debug("afdevice: read failed", "error", err)
		}
		return nil, nil, false
	}
	if n == 0 {
		return nil, nil, false
	}
	return &rxToken{frame: buf[:n]}, &txToken{device: d}, true
}

// Transmit always yields a TxToken; backpressure, if any, is discovered
// only when the token's buffer is actually written in Consume.
func (d *Device) Transmit(_ time.Time) (phy.TxToken, bool) {
	return &txToken{device: d}, true
}

type rxToken struct {
	frame    []byte
	consumed bool
}

func (t *rxToken) Consume(f func([]byte) error) error {
	if t.consumed {
		panic("afdevice: RxToken consumed twice")
	}
	t.consumed = true
	return f(t.frame)
}

type txToken struct {
	device   *Device
	consumed bool
}

func (t *txToken) Consume(length int, f func([]byte) error) error {
	if t.consumed {
		panic("afdevice: TxToken consumed twice")
	}
	if length > t.device.cfg.MaxTransmissionUnit {
		panic("afdevice: TxToken.Consume length exceeds MTU")
	}
	t.consumed = true
	buf := make([]byte, length)
	if err := f(buf); err != nil {
		return err
	}
	for written := 0; written < len(buf); {
		n, err := unix.Write(t.device.cfg.FD, buf[written:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if t.device.cfg.Logger != nil {
				t.device.cfg.Logger.Debug("afdevice: write failed", "error", err)
			}
			return err
		}
		written += n
	}
	return nil
}
