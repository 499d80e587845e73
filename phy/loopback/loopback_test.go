package loopback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-netstack/netcore/phy"
)

func TestReceiveOnEmptyQueueYieldsNothing(t *testing.T) {
	l := New(DefaultConfig())
	_, _, ok := l.Receive(time.Time{})
	assert.False(t, ok)
}

func TestTransmitThenReceiveRoundTrips(t *testing.T) {
	l := New(DefaultConfig())

	tx, ok := l.Transmit(time.Time{})
	require.True(t, ok)
	err := tx.Consume(4, func(buf []byte) error {
		copy(buf, []byte("ping"))
		return nil
	})
	require.NoError(t, err)

	rx, replyTx, ok := l.Receive(time.Time{})
	require.True(t, ok)
	err = rx.Consume(func(buf []byte) error {
		assert.Equal(t, "ping", string(buf))
		return nil
	})
	require.NoError(t, err)

	err = replyTx.Consume(4, func(buf []byte) error {
		copy(buf, []byte("pong"))
		return nil
	})
	require.NoError(t, err)

	rx2, _, ok := l.Receive(time.Time{})
	require.True(t, ok)
	err = rx2.Consume(func(buf []byte) error {
		assert.Equal(t, "pong", string(buf))
		return nil
	})
	require.NoError(t, err)
}

// S7 — strict FIFO ordering across several frames.
func TestStrictFIFOOrdering(t *testing.T) {
	l := New(DefaultConfig())
	frames := []string{"one", "two", "three"}
	for _, frame := range frames {
		tx, ok := l.Transmit(time.Time{})
		require.True(t, ok)
		frame := frame
		require.NoError(t, tx.Consume(len(frame), func(buf []byte) error {
			copy(buf, frame)
			return nil
		}))
	}

	for _, want := range frames {
		rx, _, ok := l.Receive(time.Time{})
		require.True(t, ok)
		want := want
		require.NoError(t, rx.Consume(func(buf []byte) error {
			assert.Equal(t, want, string(buf))
			return nil
		}))
	}

	_, _, ok := l.Receive(time.Time{})
	assert.False(t, ok)
}

func TestRxTokenConsumedTwicePanics(t *testing.T) {
	l := New(DefaultConfig())
	tx, _ := l.Transmit(time.Time{})
	require.NoError(t, tx.Consume(1, func([]byte) error { return nil }))
	rx, _, ok := l.Receive(time.Time{})
	require.True(t, ok)

	require.NoError(t, rx.Consume(func([]byte) error { return nil }))
	assert.Panics(t, func() {
		rx.Consume(func([]byte) error { return nil })
	})
}

func TestTxTokenNotCommittedOnError(t *testing.T) {
	l := New(DefaultConfig())
	tx, ok := l.Transmit(time.Time{})
	require.True(t, ok)

	boom := errors.New("boom")
	err := tx.Consume(4, func([]byte) error { return boom })
	assert.ErrorIs(t, err, boom)

	_, _, ok = l.Receive(time.Time{})
	assert.False(t, ok, "a failed Consume must not enqueue a frame")
}

func TestConsumeLengthOverMTUPanics(t *testing.T) {
	l := New(DefaultConfig())
	tx, ok := l.Transmit(time.Time{})
	require.True(t, ok)
	assert.Panics(t, func() {
		tx.Consume(maxTransmissionUnit+1, func([]byte) error { return nil })
	})
}

func TestCapabilitiesReportsMediumAndMTU(t *testing.T) {
	l := New(Config{Medium: phy.MediumIEEE802154})
	caps := l.Capabilities()
	assert.Equal(t, phy.MediumIEEE802154, caps.Medium)
	assert.Equal(t, 65535, caps.MaxTransmissionUnit)
}
