// Copyright 2026 The procq Authors. All rights reserved.

package procq

import (
	"github.com/nanoact/procq/internal/atomicx"
	"github.com/nanoact/procq/internal/backoff"
	"github.com/nanoact/procq/internal/queue"
)

// actorState is the actor's observable running state: RUNNING means the
// scheduler re-enters its handler with no message every cycle; WAITING
// means the handler is entered only once a mailbox message is available.
type actorState int32

const (
	actorRunning actorState = iota
	actorWaiting
)

// process is one slot's actor record. Slots are allocated once, in
// ProcessQueue.processes, and reused across spawn/release cycles without
// ever being freed; gen distinguishes successive occupants of the same
// slot.
type process struct {
	id  uint32
	gen atomicx.Uint32

	parent PID

	handler        Handler
	state          any
	releaseState   func(any)
	mailbox        *queue.Queue[any]
	releaseMessage func(any)

	maxMessagesPerCycle int
	runningState        actorState

	// releaseLock serializes a terminating actor's release procedure
	// against any sender trying to acquire it with tryLock. 0 = free, 1 =
	// held. A spinlock, not a goroutine-blocking mutex: the critical
	// section is always short (release bookkeeping or one mailbox push).
	releaseLock atomicx.Int32
}

// tryLock attempts to acquire releaseLock without blocking. It returns
// false immediately if the lock is already held.
func (p *process) tryLock() bool {
	return p.releaseLock.CompareAndSwapAcqRel(0, 1)
}

// lock acquires releaseLock, spinning until it succeeds. Used only by the
// owning worker during the actor's own termination, never by a sender —
// senders always use tryLock and back off with SendFail on contention.
func (p *process) lock() {
	var bw backoff.Wait
	for !p.tryLock() {
		bw.Once()
	}
}

func (p *process) unlock() {
	p.releaseLock.StoreRelease(0)
}

// release runs the termination protocol: bump the generation, release
// user state, drain and release the mailbox, then return the slot to the
// free pool — all before the release lock is dropped. A sender whose
// tryLock runs during release gets SendFail; one that acquires the lock
// afterwards observes a generation mismatch.
//
// The caller (the worker loop, on a handler returning Stop) is responsible
// for decrementing procCount; release only handles per-actor bookkeeping.
func (pq *ProcessQueue) release(p *process) {
	p.lock()

	p.gen.AddAcqRel(1)

	if p.releaseState != nil {
		p.releaseState(p.state)
	}
	p.state = nil
	p.handler = nil

	p.mailbox.Close(p.releaseMessage)

	for pq.procPool.Push(p.id) != nil {
		// procPool is sized to process_cap and every slot is pushed back
		// exactly once per release, so this always eventually succeeds.
	}

	p.unlock()
}
