//go:build !unix

package phy

import (
	"errors"
	"time"
)

// Wait is unavailable on non-unix platforms; afdevice and Wait both depend
// on raw fd polling that only exists there.
func Wait(fd int, timeout *time.Duration) error {
	return errors.New("phy: Wait is only supported on unix platforms")
}
