//go:build unix

package phy

import (
	"time"

	"golang.org/x/sys/unix"
)

// Wait blocks until fd is readable or writable, or until timeout elapses. A
// nil timeout waits indefinitely. This is ambient scheduling sugar used by
// callers between Receive/Transmit polls (mirroring how a cooperative
// stack's driving loop waits on its device fd) — Device implementations
// themselves never call it.
func Wait(fd int, timeout *time.Duration) error {
	millis := -1
	if timeout != nil {
		millis = int(timeout.Milliseconds())
		if millis < 0 {
			millis = 0
		}
	}
	pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN | unix.POLLOUT}}
	for {
		n, err := unix.Poll(pfd, millis)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		_ = n
		return nil
	}
}
