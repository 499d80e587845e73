package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-netstack/netcore/ring"
)

var _ ring.Observer = (*Ring)(nil)

func TestRingObserverTracksOccupancyAndHighWater(t *testing.T) {
	s := &Ring{}
	rb := ring.NewObserved(make([]byte, 4), s)

	_, err := rb.EnqueueOne()
	assert.NoError(t, err)
	ring.EnqueueMany(rb, 2)

	snap := s.Snapshot()
	assert.Equal(t, uint64(3), snap.Enqueued)
	assert.Equal(t, uint64(3), snap.HighWaterMark)
	assert.Equal(t, uint64(3), snap.Occupancy)

	_, err = rb.DequeueOne()
	assert.NoError(t, err)

	snap = s.Snapshot()
	assert.Equal(t, uint64(1), snap.Dequeued)
	assert.Equal(t, uint64(2), snap.Occupancy)
	assert.Equal(t, uint64(3), snap.HighWaterMark, "high-water mark must not decrease on dequeue")
}

func TestResetZeroesCounters(t *testing.T) {
	s := &Ring{}
	s.OnEnqueue(5)
	s.Reset()
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestZeroLengthCommitsAreCountedAsCallsOnly(t *testing.T) {
	s := &Ring{}
	s.OnEnqueue(0)
	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.EnqueueCalls)
	assert.Equal(t, uint64(0), snap.Enqueued)
}
