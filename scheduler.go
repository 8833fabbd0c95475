// Copyright 2026 The procq Authors. All rights reserved.

package procq

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nanoact/procq/internal/atomicx"
	"github.com/nanoact/procq/internal/backoff"
	"github.com/nanoact/procq/internal/queue"
)

const (
	queueRunning uint32 = iota
	queueStopped
)

// ProcessQueue owns a fixed-capacity pool of actor slots, the global
// runnable queue, and the worker goroutine set that drains it. It is the
// single entry point for spawning actors and must be released with
// Release once the host program is done with it.
type ProcessQueue struct {
	processes []process

	procPool *queue.Queue[uint32]
	runQueue *queue.Queue[uint32]

	procCount atomicx.Int32
	state     atomicx.Uint32

	workers *errgroup.Group

	logger                     *slog.Logger
	defaultMessageCap          int
	defaultMaxMessagesPerCycle int
}

// New allocates a ProcessQueue with room for processCap concurrently live
// actors and threadCount worker goroutines draining its run queue. It
// seeds the free pool with every slot (generation 0) and starts the
// workers immediately.
func New(processCap, threadCount int, opts ...Option) *ProcessQueue {
	if processCap < 1 {
		panic("procq: processCap must be >= 1")
	}
	if threadCount < 1 {
		panic("procq: threadCount must be >= 1")
	}

	cfg := newConfig(opts)

	pq := &ProcessQueue{
		processes:                  make([]process, processCap),
		procPool:                   queue.New[uint32](processCap),
		runQueue:                   queue.New[uint32](processCap),
		logger:                     cfg.logger,
		defaultMessageCap:          cfg.defaultMessageCap,
		defaultMaxMessagesPerCycle: cfg.defaultMaxMessagesPerCycle,
	}
	pq.state.StoreRelease(queueRunning)

	for i := range pq.processes {
		pq.processes[i].id = uint32(i)
		if err := pq.procPool.Push(uint32(i)); err != nil {
			panic("procq: failed to seed process pool: " + err.Error())
		}
	}

	var g errgroup.Group
	pq.workers = &g
	for i := 0; i < threadCount; i++ {
		workerID := i
		g.Go(func() error {
			pq.logger.Debug("worker started", slog.Int("worker", workerID))
			pq.runWorker()
			pq.logger.Debug("worker stopped", slog.Int("worker", workerID))
			return nil
		})
	}

	return pq
}

// ProcCount returns the number of actors currently occupying a slot.
func (pq *ProcessQueue) ProcCount() int {
	return int(pq.procCount.LoadAcquire())
}

// runWorker is the body of one worker goroutine: while the queue is
// running, pop one runnable actor and give it up to maxMessagesPerCycle
// handler invocations before re-enqueuing or retiring it.
func (pq *ProcessQueue) runWorker() {
	var bw backoff.Wait
	for pq.state.LoadAcquire() == queueRunning {
		slot, err := pq.runQueue.Pop()
		if err != nil {
			bw.Once()
			continue
		}
		bw = backoff.Wait{}
		pq.runCycle(&pq.processes[slot])
	}
}

// runCycle drives one scheduler visit to p: up to
// p.maxMessagesPerCycle handler invocations, then either retirement or
// re-enqueuing.
func (pq *ProcessQueue) runCycle(p *process) {
	ctx := &Context{queue: pq, self: PID{queue: pq, slot: p.id, gen: p.gen.LoadAcquire()}}

	stopped := false
	for i := 0; i < p.maxMessagesPerCycle; i++ {
		var message any
		if p.runningState == actorWaiting {
			msg, err := p.mailbox.Pop()
			if err != nil {
				break
			}
			message = msg
		}

		control := p.handler(ctx, message)
		switch control {
		case Stop:
			stopped = true
		case WaitMessage:
			p.runningState = actorWaiting
		case Continue:
			p.runningState = actorRunning
		default:
			panic(errUnrecognizedControl)
		}
		if stopped {
			break
		}
	}

	if stopped {
		pq.release(p)
		pq.procCount.AddAcqRel(-1)
		return
	}

	var bw backoff.Wait
	for pq.runQueue.Push(p.id) != nil {
		bw.Once()
	}
}

// Spawn creates a new root actor with no parent. It returns the zero PID
// if the process pool is at capacity; in that case params.ReleaseState, if
// set, is invoked on params.InitialState before returning.
//
// Call Spawn from inside a handler via Context.Spawn instead, so the new
// actor's Parent() correctly resolves to the spawning actor.
func (pq *ProcessQueue) Spawn(params SpawnParams) PID {
	return pq.spawn(params, PID{})
}

func (pq *ProcessQueue) spawn(params SpawnParams, parent PID) PID {
	if params.Handler == nil {
		pq.logger.Warn("rejecting spawn", slog.Any("err", ErrHandlerRequired))
		if params.ReleaseState != nil {
			params.ReleaseState(params.InitialState)
		}
		return PID{}
	}

	n := pq.procCount.AddAcqRel(1)
	if n > int32(len(pq.processes)) {
		pq.procCount.AddAcqRel(-1)
		if params.ReleaseState != nil {
			params.ReleaseState(params.InitialState)
		}
		return PID{}
	}

	var bw backoff.Wait
	var slotIdx uint32
	for {
		idx, err := pq.procPool.Pop()
		if err == nil {
			slotIdx = idx
			break
		}
		// Transiently empty: a terminating actor publishes its slot to
		// the pool and decrements procCount as two separate steps, so a
		// concurrent Spawn can briefly observe an empty pool even though
		// a slot is logically free. Retry until it appears.
		bw.Once()
	}

	messageCap := params.MessageCap
	if messageCap <= 0 {
		messageCap = pq.defaultMessageCap
	}
	maxPerCycle := params.MaxMessagesPerCycle
	if maxPerCycle <= 0 {
		maxPerCycle = pq.defaultMaxMessagesPerCycle
	}
	if maxPerCycle > messageCap {
		maxPerCycle = messageCap
	}

	p := &pq.processes[slotIdx]
	p.handler = params.Handler
	p.state = params.InitialState
	p.releaseState = params.ReleaseState
	p.releaseMessage = params.ReleaseMessage
	p.mailbox = queue.New[any](messageCap)
	p.maxMessagesPerCycle = maxPerCycle
	p.runningState = actorRunning
	p.parent = parent

	gen := p.gen.LoadAcquire()
	pid := PID{queue: pq, slot: slotIdx, gen: gen}

	bw = backoff.Wait{}
	for pq.runQueue.Push(slotIdx) != nil {
		bw.Once()
	}

	return pid
}

// Send delivers message to the actor identified by p, per action's
// disposition if the destination mailbox is full.
//
// Send tries to acquire the destination's release lock non-blockingly: if
// the destination is mid-termination the lock is contended and Send
// returns SendFail immediately rather than stalling. The lock is released
// on every return path.
func (p PID) Send(message any, action MessageAction) SendResult {
	if p.queue == nil {
		return ActorIsDead
	}
	proc := &p.queue.processes[p.slot]

	if !proc.tryLock() {
		return SendFail
	}

	if proc.gen.LoadAcquire() != p.gen {
		proc.unlock()
		return ActorIsDead
	}

	err := proc.mailbox.Push(message)
	if err == nil {
		proc.unlock()
		return SendSuccess
	}

	if action == RemoveMessage && proc.releaseMessage != nil {
		proc.releaseMessage(message)
	}
	proc.unlock()
	return SendFail
}

// Release stops the ProcessQueue: it transitions state from RUNNING to
// STOPPED (a no-op if already stopped), joins every worker goroutine, then
// releases every still-live actor — running each one's ReleaseState and
// ReleaseMessage callbacks exactly as actor termination would.
func (pq *ProcessQueue) Release() {
	if !pq.state.CompareAndSwapAcqRel(queueRunning, queueStopped) {
		return
	}

	_ = pq.workers.Wait()

	pq.runQueue.Close(func(slot uint32) {
		pq.release(&pq.processes[slot])
		pq.procCount.AddAcqRel(-1)
	})
}
