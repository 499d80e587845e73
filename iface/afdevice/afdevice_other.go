//go:build !unix

package afdevice

import (
	"time"

	"github.com/go-netstack/netcore/phy"
)

// Receive and Transmit always report nothing available: raw fd polling only
// exists on unix platforms.
func (d *Device) Receive(_ time.Time) (phy.RxToken, phy.TxToken, bool) {
	return nil, nil, false
}

func (d *Device) Transmit(_ time.Time) (phy.TxToken, bool) {
	return nil, false
}
