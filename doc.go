// Copyright 2026 The procq Authors. All rights reserved.

// Package procq implements a tiny cooperative actor runtime: a
// fixed-capacity pool of lightweight processes ("actors") multiplexed over
// a small set of worker goroutines, communicating exclusively by
// asynchronous message passing. It lets a program spawn up to millions of
// independently addressable actors, deliver messages between them without
// shared mutable state, and reclaim actor slots safely when they
// terminate — all without per-actor goroutine-per-OS-thread pinning.
//
// # Quick Start
//
//	pq := procq.New(1<<20, runtime.GOMAXPROCS(0))
//	defer pq.Release()
//
//	pid := pq.Spawn(procq.SpawnParams{
//		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
//			if message == nil {
//				return procq.WaitMessage
//			}
//			fmt.Println("got:", message)
//			return procq.Stop
//		},
//		MessageCap: 4,
//	})
//	pid.Send("hello", procq.KeepMessage)
//
// # Actors
//
// An actor is identified by a PID: a (queue, slot, generation) triple.
// PIDs are cheap, comparable values. A PID whose generation no longer
// matches its slot's current generation is permanently dead — Send to it
// always returns ActorIsDead, never SendSuccess.
//
// Every actor runs a Handler:
//
//	func(ctx *procq.Context, message any) procq.ProcessControl
//
// The scheduler invokes Handler with message == nil while the actor is
// RUNNING (no mailbox wait), and with the just-popped mailbox message once
// it has returned WaitMessage and transitioned to WAITING. The return
// value tells the scheduler what to do next:
//
//	Stop        actor terminates; state and mailbox are released
//	WaitMessage actor transitions to WAITING
//	Continue    actor stays (or becomes) RUNNING
//
// Any other return value is a programmer error and panics.
//
// # Parent links
//
// Spawning from inside a handler via Context.Spawn records the spawning
// actor's PID as the new actor's parent, retrievable with Context.Parent.
// This is a non-owning, weak back-reference: parents do not keep children
// alive, children do not keep parents alive, and the link survives the
// parent's own death as an ordinary (possibly now-dead) PID.
//
// # Sending and receiving
//
// PID.Send is callable from anywhere — inside a handler or not — and never
// blocks. It tries to acquire the destination's termination lock without
// waiting; if that lock is held (the destination is mid-termination) Send
// returns SendFail immediately rather than stalling the caller. On a full
// mailbox, the MessageAction the caller passes decides whether the
// undelivered message is kept by the caller (KeepMessage) or released via
// the destination's ReleaseMessage callback (RemoveMessage).
//
// Context.Receive, callable only from inside a handler, pops one message
// from the current actor's own mailbox without blocking — used by
// handlers that return Continue to opportunistically drain extra
// messages within one scheduler cycle.
//
// # Shutdown
//
// ProcessQueue.Release stops accepting new scheduler cycles, joins every
// worker goroutine, then releases every still-live actor exactly as its
// own Stop would: ReleaseState is invoked once per actor, and
// ReleaseMessage once per message still sitting in a mailbox.
//
// # Concurrency model
//
// A fixed pool of worker goroutines share one lock-free run queue; actors
// never get their own goroutine and are scheduled cooperatively — a
// handler that never returns blocks one worker forever. There is no
// preemption, no priority scheduling, and no fairness guarantee beyond
// FIFO-per-mailbox.
//
// # Race detection
//
// The bounded queue underlying both the mailbox and the run queue uses
// per-slot sequence numbers to protect non-atomic payload fields. Its
// internal/atomicx wrapper is a thin pass-through to sync/atomic, whose
// operations the race detector models as synchronization. Large fanout
// tests are scaled down under RaceEnabled rather than excluded outright,
// because the detector's bookkeeping makes full-scale runs too slow for
// the ordinary test loop.
//
// # Dependencies
//
// procq depends on the standard library and golang.org/x/sync/errgroup for
// worker goroutine lifecycle management. Its internal atomic-ordering and
// spin-backoff helpers (internal/atomicx, internal/backoff) reproduce the
// call shape of two small, single-organization private modules that
// cannot be fetched from any public registry, built instead on
// sync/atomic and runtime.Gosched/time.Sleep.
package procq
