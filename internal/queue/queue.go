// Package queue implements the bounded multi-producer multi-consumer queue
// described by the actor runtime's scheduling contract: a fixed-capacity
// ring of slots, each carrying its own sequence number, so producers and
// consumers can make forward progress without a single shared lock.
//
// The algorithm is the per-slot CAS-sequence scheme: a slot's sequence
// number is bumped to ticket+1 by a producer that claims it, and to
// ticket+capacity by the consumer that later drains it, so a slot can only
// be claimed by the next writer once its previous reader has fully
// released it. Unlike a mask-indexed ring, indices here are reduced with
// exact modulo arithmetic, so Cap() always equals the capacity the caller
// asked for.
package queue

import (
	"github.com/nanoact/procq/internal/atomicx"
	"github.com/nanoact/procq/internal/backoff"
)

type queueSlot[T any] struct {
	seq  atomicx.Uint64
	data T
}

// Queue is a bounded MPMC queue over elements of type T.
type Queue[T any] struct {
	tail atomicx.Uint64
	head atomicx.Uint64

	buffer []queueSlot[T]
	cap    uint64

	closed atomicx.Bool
}

// New creates a bounded queue with the given capacity. Capacity must be at
// least 1.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic("queue: capacity must be >= 1")
	}
	n := uint64(capacity)
	q := &Queue[T]{
		buffer: make([]queueSlot[T], n),
		cap:    n,
	}
	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	return q
}

// Cap returns the queue's fixed capacity.
func (q *Queue[T]) Cap() int {
	return int(q.cap)
}

// Len returns a point-in-time estimate of the number of queued elements.
// Under concurrent access this is approximate.
func (q *Queue[T]) Len() int {
	tail := q.tail.LoadAcquire()
	head := q.head.LoadAcquire()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Push enqueues elem. It returns ErrFull if the queue has no free slot and
// ErrClosed if the queue has been closed.
func (q *Queue[T]) Push(elem T) error {
	if q.closed.LoadAcquire() {
		return ErrClosed
	}
	var bw backoff.Wait
	for {
		tail := q.tail.LoadAcquire()
		slot := &q.buffer[tail%q.cap]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		switch {
		case diff == 0:
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		case diff < 0:
			if q.closed.LoadAcquire() {
				return ErrClosed
			}
			return ErrFull
		}
		bw.Once()
	}
}

// Pop dequeues and returns the oldest element. It returns ErrEmpty if the
// queue currently holds no elements.
func (q *Queue[T]) Pop() (T, error) {
	var bw backoff.Wait
	for {
		head := q.head.LoadAcquire()
		slot := &q.buffer[head%q.cap]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		switch {
		case diff == 0:
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + q.cap)
				return elem, nil
			}
		case diff < 0:
			var zero T
			return zero, ErrEmpty
		}
		bw.Once()
	}
}

// Close marks the queue closed, rejecting further Push calls, then drains
// any remaining elements, invoking release on each. release may be nil.
func (q *Queue[T]) Close(release func(T)) {
	q.closed.StoreRelease(true)
	for {
		elem, err := q.Pop()
		if err != nil {
			return
		}
		if release != nil {
			release(elem)
		}
	}
}
