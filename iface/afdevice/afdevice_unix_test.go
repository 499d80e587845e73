//go:build unix

package afdevice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func nonBlockingPipe(t *testing.T) (r, w int) {
	t.Helper()
	fds, err := unix.Pipe2([]int{0, 0}, 0)
	require.NoError(t, err)
	r, w = fds[0], fds[1]
	require.NoError(t, unix.SetNonblock(r, true))
	require.NoError(t, unix.SetNonblock(w, true))
	t.Cleanup(func() {
		unix.Close(r)
		unix.Close(w)
	})
	return r, w
}

func TestReceiveOnEmptyPipeYieldsNothing(t *testing.T) {
	r, _ := nonBlockingPipe(t)
	d := New(Config{FD: r, MaxTransmissionUnit: 1500})

	_, _, ok := d.Receive(time.Time{})
	assert.False(t, ok)
}

func TestTransmitThenReceiveRoundTrips(t *testing.T) {
	r, w := nonBlockingPipe(t)
	d := New(Config{FD: w, MaxTransmissionUnit: 1500})
	rd := New(Config{FD: r, MaxTransmissionUnit: 1500})

	tx, ok := d.Transmit(time.Time{})
	require.True(t, ok)
	require.NoError(t, tx.Consume(4, func(buf []byte) error {
		copy(buf, "ping")
		return nil
	}))

	rx, _, ok := rd.Receive(time.Time{})
	require.True(t, ok)
	require.NoError(t, rx.Consume(func(buf []byte) error {
		assert.Equal(t, "ping", string(buf))
		return nil
	}))
}

func TestRxTokenConsumedTwicePanics(t *testing.T) {
	r, w := nonBlockingPipe(t)
	d := New(Config{FD: w, MaxTransmissionUnit: 1500})
	rd := New(Config{FD: r, MaxTransmissionUnit: 1500})

	tx, _ := d.Transmit(time.Time{})
	require.NoError(t, tx.Consume(1, func([]byte) error { return nil }))

	rx, _, ok := rd.Receive(time.Time{})
	require.True(t, ok)
	require.NoError(t, rx.Consume(func([]byte) error { return nil }))
	assert.Panics(t, func() {
		rx.Consume(func([]byte) error { return nil })
	})
}

func TestConsumeLengthOverMTUPanics(t *testing.T) {
	_, w := nonBlockingPipe(t)
	d := New(Config{FD: w, MaxTransmissionUnit: 10})
	tx, ok := d.Transmit(time.Time{})
	require.True(t, ok)
	assert.Panics(t, func() {
		tx.Consume(11, func([]byte) error { return nil })
	})
}
