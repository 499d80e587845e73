package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-netstack/netcore/internal/phytest"
	"github.com/go-netstack/netcore/phy"
	"github.com/go-netstack/netcore/phy/loopback"
	"github.com/go-netstack/netcore/ring"
)

// S8 — capture tap: transmit one frame, receive it back; the capture ring
// holds exactly one recorded entry equal to the transmitted bytes (the Tx
// and Rx sides of a loopback round-trip are the same physical frame, so it
// is recorded once, on Rx), and the wrapped loopback's own FIFO ordering is
// unaffected.
func TestCaptureTap(t *testing.T) {
	record := ring.New(make([][]byte, 4))
	dev := New(loopback.New(loopback.DefaultConfig()), record)

	tx, ok := dev.Transmit(time.Time{})
	require.True(t, ok)
	require.NoError(t, tx.Consume(4, func(buf []byte) error {
		copy(buf, "ping")
		return nil
	}))

	rx, _, ok := dev.Receive(time.Time{})
	require.True(t, ok)
	require.NoError(t, rx.Consume(func(buf []byte) error {
		assert.Equal(t, "ping", string(buf))
		return nil
	}))

	require.Equal(t, 1, record.Len(), "exactly one recorded entry per frame")
	entry, err := record.DequeueOne()
	require.NoError(t, err)
	assert.Equal(t, "ping", string(*entry))
}

func TestCaptureDropsOldestWhenRecordFull(t *testing.T) {
	record := ring.New(make([][]byte, 1))
	dev := New(loopback.New(loopback.DefaultConfig()), record)

	for _, frame := range []string{"a", "b"} {
		frame := frame
		tx, ok := dev.Transmit(time.Time{})
		require.True(t, ok)
		require.NoError(t, tx.Consume(1, func(buf []byte) error {
			copy(buf, frame)
			return nil
		}))

		rx, _, ok := dev.Receive(time.Time{})
		require.True(t, ok)
		require.NoError(t, rx.Consume(func([]byte) error { return nil }))
	}

	require.Equal(t, 1, record.Len())
	last, err := record.DequeueOne()
	require.NoError(t, err)
	assert.Equal(t, "b", string(*last), "capture must keep the newest frame, never block the device")
}

// On a device whose Tx and Rx streams are genuinely independent (unlike
// loopback, where they are the same physical frame), only the frames
// actually received through the tap are recorded — a transmitted frame
// that is never echoed back must not appear in the capture ring.
func TestCaptureRecordsOnlyReceivedFrames(t *testing.T) {
	fixture := phytest.NewFixtureDevice(phy.Capabilities{}, []byte("incoming"))
	record := ring.New(make([][]byte, 4))
	dev := New(fixture, record)

	tx, ok := dev.Transmit(time.Time{})
	require.True(t, ok)
	require.NoError(t, tx.Consume(8, func(buf []byte) error {
		copy(buf, "outgoing")
		return nil
	}))

	rx, _, ok := dev.Receive(time.Time{})
	require.True(t, ok)
	require.NoError(t, rx.Consume(func(buf []byte) error {
		assert.Equal(t, "incoming", string(buf))
		return nil
	}))

	require.Equal(t, 1, record.Len())
	entry, err := record.DequeueOne()
	require.NoError(t, err)
	assert.Equal(t, "incoming", string(*entry), "the outgoing frame was never received back, so it was never recorded")

	require.Len(t, fixture.Sent, 1)
	assert.Equal(t, "outgoing", string(fixture.Sent[0]))
}
