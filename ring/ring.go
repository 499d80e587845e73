// Package ring implements the generic, allocation-free bounded FIFO that
// underlies every buffering concern in the stack: TCP send/receive buffers,
// TCP reassembly, UDP/ICMP packet queues, and the loopback frame queue.
//
// A RingBuffer never grows and never allocates after construction; storage
// is always a caller-owned slice. It exposes three layered interfaces:
//
//   - discrete: single-element enqueue/dequeue, boundary conditions are errors
//   - continuous: slice-at-a-time enqueue/dequeue, boundary conditions degrade
//     to zero-length slices
//   - random-access: offset-addressed views into the unallocated/allocated
//     regions, used by callers (e.g. TCP reassembly) that need to write or
//     read ahead of the committed head/tail without disturbing them
//
// None of these operations suspend, lock, or allocate. A RingBuffer is not
// safe for concurrent use; external synchronisation is the caller's
// responsibility if one is shared across goroutines.
package ring

import (
	"github.com/go-netstack/netcore/corerr"
)

// Resettable is implemented by element types that know how to return
// themselves to a zero state. Reset uses it, element by element, to scrub
// every physical slot regardless of occupancy; Clear never touches element
// contents.
type Resettable interface {
	Reset()
}

// Observer receives occupancy notifications from a RingBuffer. All methods
// must be non-blocking and allocation-free; a RingBuffer calls them on every
// committed enqueue/dequeue, including zero-length continuous commits.
// Attaching an Observer never changes what an operation returns.
type Observer interface {
	OnEnqueue(committed int)
	OnDequeue(committed int)
}

// RingBuffer is a bounded FIFO over caller-owned storage of fixed capacity.
// The zero value is not usable; construct with New or NewObserved.
type RingBuffer[T any] struct {
	storage  []T
	readAt   int
	length   int
	observer Observer
}

// New wraps storage as a ring buffer. The buffer starts empty; storage's
// current contents outside the (empty) occupied region are left untouched.
func New[T any](storage []T) *RingBuffer[T] {
	return &RingBuffer[T]{storage: storage}
}

// NewObserved is New with an Observer attached from construction.
func NewObserved[T any](storage []T, obs Observer) *RingBuffer[T] {
	return &RingBuffer[T]{storage: storage, observer: obs}
}

// SetObserver attaches or replaces the buffer's Observer. Pass nil to detach.
func (rb *RingBuffer[T]) SetObserver(obs Observer) {
	rb.observer = obs
}

func (rb *RingBuffer[T]) notifyEnqueue(n int) {
	if rb.observer != nil {
		rb.observer.OnEnqueue(n)
	}
}

func (rb *RingBuffer[T]) notifyDequeue(n int) {
	if rb.observer != nil {
		rb.observer.OnDequeue(n)
	}
}

// Clear empties the buffer without touching element contents.
func (rb *RingBuffer[T]) Clear() {
	rb.readAt = 0
	rb.length = 0
}

// Reset clears the buffer and, for every physical slot, invokes Reset if T
// implements Resettable. If T does not implement Resettable this is
// equivalent to Clear.
func (rb *RingBuffer[T]) Reset() {
	rb.Clear()
	for i := range rb.storage {
		if v, ok := any(&rb.storage[i]).(Resettable); ok {
			v.Reset()
		}
	}
}

// Capacity returns the fixed size of the underlying storage.
func (rb *RingBuffer[T]) Capacity() int {
	return len(rb.storage)
}

// Len returns the current number of occupied elements.
func (rb *RingBuffer[T]) Len() int {
	return rb.length
}

// Window returns the number of free slots (capacity - length).
func (rb *RingBuffer[T]) Window() int {
	return rb.Capacity() - rb.length
}

// ContiguousWindow returns the largest number of elements that can be
// enqueued in a single continuous-interface call without wrapping, measured
// from the current read position. On an empty buffer EnqueueManyWith first
// rebases the read position to 0, so it may offer more than this value.
func (rb *RingBuffer[T]) ContiguousWindow() int {
	return min(rb.Window(), rb.Capacity()-rb.getIdx(rb.length))
}

// IsEmpty reports whether the buffer currently holds no elements.
func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.length == 0
}

// IsFull reports whether the buffer currently has no free slots.
func (rb *RingBuffer[T]) IsFull() bool {
	return rb.Window() == 0
}

// getIdx is (readAt+idx) mod capacity, but collapses to 0 when capacity is
// 0 instead of dividing by zero. Safe to call in every accessor regardless
// of buffer state.
func (rb *RingBuffer[T]) getIdx(idx int) int {
	cap := rb.Capacity()
	if cap == 0 {
		return 0
	}
	return (rb.readAt + idx) % cap
}

// getIdxUnchecked is (readAt+idx) mod capacity with no zero-capacity guard.
// Only called from paths that have already established capacity > 0 (the
// discrete interface, guarded by IsFull/IsEmpty checks that are themselves
// only false when capacity > 0).
func (rb *RingBuffer[T]) getIdxUnchecked(idx int) int {
	return (rb.readAt + idx) % rb.Capacity()
}

// --- discrete interface ---------------------------------------------------

// EnqueueOneWith invokes f on the slot at the current tail. If f returns a
// nil error the slot is committed (length increases by one); otherwise the
// buffer is left unchanged and f's error is returned as-is. If the buffer is
// already full, f is never invoked and corerr.Full is returned.
//
// EnqueueOneWith must be a free function, not a method, because Go methods
// cannot introduce additional type parameters beyond the receiver's.
func EnqueueOneWith[T, R any](rb *RingBuffer[T], f func(*T) (R, error)) (R, error) {
	var zero R
	if rb.IsFull() {
		return zero, corerr.Full
	}
	idx := rb.getIdxUnchecked(rb.length)
	res, err := f(&rb.storage[idx])
	if err == nil {
		rb.length++
		rb.notifyEnqueue(1)
	}
	return res, err
}

// DequeueOneWith invokes f on the slot at the current head. If f returns a
// nil error the slot is committed (read index advances, length decreases by
// one); otherwise the buffer is left unchanged. If the buffer is empty, f is
// never invoked and corerr.Empty is returned.
func DequeueOneWith[T, R any](rb *RingBuffer[T], f func(*T) (R, error)) (R, error) {
	var zero R
	if rb.IsEmpty() {
		return zero, corerr.Empty
	}
	nextAt := rb.getIdxUnchecked(1)
	res, err := f(&rb.storage[rb.readAt])
	if err == nil {
		rb.length--
		rb.readAt = nextAt
		rb.notifyDequeue(1)
	}
	return res, err
}

// EnqueueOne reserves and returns the tail slot, or corerr.Full if the
// buffer has no free slots. Shorthand for EnqueueOneWith with an
// always-succeeding callback.
func (rb *RingBuffer[T]) EnqueueOne() (*T, error) {
	if rb.IsFull() {
		return nil, corerr.Full
	}
	idx := rb.getIdxUnchecked(rb.length)
	rb.length++
	rb.notifyEnqueue(1)
	return &rb.storage[idx], nil
}

// DequeueOne removes and returns the head slot, or corerr.Empty if the
// buffer is empty. The returned element is not erased; its contents remain
// physically present (but semantically undefined) until overwritten.
func (rb *RingBuffer[T]) DequeueOne() (*T, error) {
	if rb.IsEmpty() {
		return nil, corerr.Empty
	}
	idx := rb.readAt
	rb.length--
	rb.readAt = rb.getIdxUnchecked(1)
	rb.notifyDequeue(1)
	return &rb.storage[idx], nil
}

// --- continuous interface --------------------------------------------------

// EnqueueManyWith invokes f with the largest contiguous slice of unallocated
// elements (possibly empty), and commits the number of elements f reports.
// If the buffer is currently empty, readAt is first rebased to 0 so the
// slice handed to f is the largest possible contiguous window — otherwise a
// long-running buffer pinned against the far edge of its storage would never
// again offer a full-capacity contiguous window.
//
// Panics if f reports a committed size larger than the slice it was given;
// that is a programmer error, not a runtime failure.
func EnqueueManyWith[T, R any](rb *RingBuffer[T], f func([]T) (int, R)) (int, R) {
	if rb.length == 0 {
		rb.readAt = 0
	}
	writeAt := rb.getIdx(rb.length)
	maxSize := rb.ContiguousWindow()
	size, result := f(rb.storage[writeAt : writeAt+maxSize])
	if size > maxSize {
		panic("ring: enqueue_many_with committed more than offered")
	}
	rb.length += size
	rb.notifyEnqueue(size)
	return size, result
}

// EnqueueMany commits up to size elements from the largest contiguous
// unallocated window and returns a slice over them. The returned slice may
// be shorter than size if the free space is not contiguous; it is never an
// error, only possibly empty.
func EnqueueMany[T any](rb *RingBuffer[T], size int) []T {
	_, s := EnqueueManyWith(rb, func(buf []T) (int, []T) {
		n := min(size, len(buf))
		return n, buf[:n]
	})
	return s
}

// EnqueueSlice copies as much of data into the buffer as fits, in at most
// two contiguous chunks (any ring has at most two contiguous free regions),
// and returns the number of elements actually copied.
func EnqueueSlice[T any](rb *RingBuffer[T], data []T) int {
	n1, rest := EnqueueManyWith(rb, func(buf []T) (int, []T) {
		n := min(len(buf), len(data))
		copy(buf[:n], data[:n])
		return n, data[n:]
	})
	n2, _ := EnqueueManyWith(rb, func(buf []T) (int, struct{}) {
		n := min(len(buf), len(rest))
		copy(buf[:n], rest[:n])
		return n, struct{}{}
	})
	return n1 + n2
}

// DequeueManyWith invokes f with the largest contiguous slice of allocated
// elements (possibly empty), and commits (advances readAt past) the number
// of elements f reports.
//
// Panics if f reports a committed size larger than the slice it was given.
func DequeueManyWith[T, R any](rb *RingBuffer[T], f func([]T) (int, R)) (int, R) {
	capacity := rb.Capacity()
	maxSize := min(rb.length, capacity-rb.readAt)
	size, result := f(rb.storage[rb.readAt : rb.readAt+maxSize])
	if size > maxSize {
		panic("ring: dequeue_many_with committed more than offered")
	}
	if capacity > 0 {
		rb.readAt = (rb.readAt + size) % capacity
	} else {
		rb.readAt = 0
	}
	rb.length -= size
	rb.notifyDequeue(size)
	return size, result
}

// DequeueMany commits up to size elements from the largest contiguous
// allocated window and returns a slice over them. May be shorter than size
// if the occupied space is not contiguous; never an error.
func DequeueMany[T any](rb *RingBuffer[T], size int) []T {
	_, s := DequeueManyWith(rb, func(buf []T) (int, []T) {
		n := min(size, len(buf))
		return n, buf[:n]
	})
	return s
}

// DequeueSlice copies as much of the buffer's occupied data into dst as
// fits, in at most two contiguous chunks, and returns the number of
// elements actually copied.
func DequeueSlice[T any](rb *RingBuffer[T], dst []T) int {
	n1, rest := DequeueManyWith(rb, func(buf []T) (int, []T) {
		n := min(len(buf), len(dst))
		copy(dst[:n], buf[:n])
		return n, dst[n:]
	})
	n2, _ := DequeueManyWith(rb, func(buf []T) (int, struct{}) {
		n := min(len(buf), len(rest))
		copy(rest[:n], buf[:n])
		return n, struct{}{}
	})
	return n1 + n2
}

// --- random-access interface ------------------------------------------------
//
// Offsets in the Get/Write-Unallocated family are measured from the first
// unallocated slot (length past readAt), never from readAt itself. Offsets
// in the Get/Read-Allocated family are measured from readAt. Conflating the
// two is the most likely source of bugs in a caller layered on top of this
// package (e.g. TCP reassembly writing out-of-order segments ahead of the
// committed window, then promoting them with EnqueueUnallocated once they
// become contiguous).

// GetUnallocated returns the largest contiguous slice of unallocated
// elements starting at offset past the end of the allocated region, clamped
// to size, to the available window, and to the storage's physical edge. An
// offset beyond the current window yields an empty slice; this never
// panics, including on zero-capacity storage.
func (rb *RingBuffer[T]) GetUnallocated(offset, size int) []T {
	if offset > rb.Window() {
		return rb.storage[:0]
	}
	startAt := rb.getIdx(rb.length + offset)
	clampedWindow := rb.Window() - offset
	if size > clampedWindow {
		size = clampedWindow
	}
	untilEnd := rb.Capacity() - startAt
	if size > untilEnd {
		size = untilEnd
	}
	return rb.storage[startAt : startAt+size]
}

// WriteUnallocated copies as much of data as fits into the unallocated
// region starting at offset, in at most two contiguous chunks, and returns
// the number of elements actually written. Does not change Len(); callers
// must follow up with EnqueueUnallocated to commit.
func WriteUnallocated[T any](rb *RingBuffer[T], offset int, data []T) int {
	slice := rb.GetUnallocated(offset, len(data))
	n1 := len(slice)
	copy(slice, data[:n1])

	rest := data[n1:]
	slice2 := rb.GetUnallocated(offset+n1, len(rest))
	n2 := len(slice2)
	copy(slice2, rest[:n2])

	return n1 + n2
}

// EnqueueUnallocated promotes the first n previously-written unallocated
// slots into the allocated region (Len() += n), without touching readAt.
//
// Panics if n exceeds the current window.
func (rb *RingBuffer[T]) EnqueueUnallocated(n int) {
	if n > rb.Window() {
		panic("ring: enqueue_unallocated exceeds window")
	}
	rb.length += n
	rb.notifyEnqueue(n)
}

// GetAllocated returns the largest contiguous slice of allocated elements
// starting at offset past readAt, clamped to size, to Len(), and to the
// storage's physical edge. An offset beyond Len() yields an empty slice;
// never panics, including on zero-capacity storage.
func (rb *RingBuffer[T]) GetAllocated(offset, size int) []T {
	if offset > rb.length {
		return rb.storage[:0]
	}
	startAt := rb.getIdx(offset)
	clampedLength := rb.length - offset
	if size > clampedLength {
		size = clampedLength
	}
	untilEnd := rb.Capacity() - startAt
	if size > untilEnd {
		size = untilEnd
	}
	return rb.storage[startAt : startAt+size]
}

// ReadAllocated copies as much of the allocated region starting at offset
// into dst as fits, in at most two contiguous chunks, and returns the
// number of elements actually read. Does not change Len(); callers must
// follow up with DequeueAllocated to commit.
func ReadAllocated[T any](rb *RingBuffer[T], offset int, dst []T) int {
	slice := rb.GetAllocated(offset, len(dst))
	n1 := len(slice)
	copy(dst[:n1], slice)

	rest := dst[n1:]
	slice2 := rb.GetAllocated(offset+n1, len(rest))
	n2 := len(slice2)
	copy(rest[:n2], slice2)

	return n1 + n2
}

// DequeueAllocated advances readAt by n (mod capacity) and decreases Len()
// by n, discarding the first n allocated elements without returning them.
//
// Panics if n exceeds Len().
func (rb *RingBuffer[T]) DequeueAllocated(n int) {
	if n > rb.length {
		panic("ring: dequeue_allocated exceeds length")
	}
	rb.length -= n
	rb.readAt = rb.getIdx(n)
	rb.notifyDequeue(n)
}
