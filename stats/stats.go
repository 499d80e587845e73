// Package stats provides an atomic occupancy-counter Observer that a
// ring.RingBuffer can optionally report into. Attaching one never changes
// what a ring operation returns; it is pure observability, generalized from
// the teacher's block-I/O Metrics/Observer pair down to ring-buffer
// occupancy counters.
package stats

import "sync/atomic"

// Ring accumulates occupancy counters for a single ring.RingBuffer. The zero
// value is ready to use.
type Ring struct {
	enqueued      atomic.Uint64
	dequeued      atomic.Uint64
	enqueueCalls  atomic.Uint64
	dequeueCalls  atomic.Uint64
	highWaterMark atomic.Uint64
	occupancy     atomic.Uint64
}

// OnEnqueue implements ring.Observer. n may be zero (a degraded continuous
// commit), which is still recorded as a call.
func (r *Ring) OnEnqueue(n int) {
	r.enqueueCalls.Add(1)
	if n == 0 {
		return
	}
	r.enqueued.Add(uint64(n))
	occ := r.occupancy.Add(uint64(n))
	for {
		cur := r.highWaterMark.Load()
		if occ <= cur {
			break
		}
		if r.highWaterMark.CompareAndSwap(cur, occ) {
			break
		}
	}
}

// OnDequeue implements ring.Observer.
func (r *Ring) OnDequeue(n int) {
	r.dequeueCalls.Add(1)
	if n == 0 {
		return
	}
	r.dequeued.Add(uint64(n))
	r.occupancy.Add(^uint64(n - 1)) // occupancy -= n
}

// Snapshot is a point-in-time copy of a Ring's counters.
type Snapshot struct {
	Enqueued      uint64
	Dequeued      uint64
	EnqueueCalls  uint64
	DequeueCalls  uint64
	HighWaterMark uint64
	Occupancy     uint64
}

// Snapshot reads every counter without resetting them.
func (r *Ring) Snapshot() Snapshot {
	return Snapshot{
		Enqueued:      r.enqueued.Load(),
		Dequeued:      r.dequeued.Load(),
		EnqueueCalls:  r.enqueueCalls.Load(),
		DequeueCalls:  r.dequeueCalls.Load(),
		HighWaterMark: r.highWaterMark.Load(),
		Occupancy:     r.occupancy.Load(),
	}
}

// Reset zeroes every counter.
func (r *Ring) Reset() {
	r.enqueued.Store(0)
	r.dequeued.Store(0)
	r.enqueueCalls.Store(0)
	r.dequeueCalls.Store(0)
	r.highWaterMark.Store(0)
	r.occupancy.Store(0)
}
