// Copyright 2026 The procq Authors. All rights reserved.

package procq_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nanoact/procq"
)

func TestPingPong(t *testing.T) {
	pq := procq.New(16, 2)
	defer pq.Release()

	done := make(chan struct{})

	var pidA procq.PID
	pidA = pq.Spawn(procq.SpawnParams{
		MessageCap: 4,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			if message == nil {
				return procq.WaitMessage
			}
			sender := message.(procq.PID)
			sender.Send(ctx.Self(), procq.KeepMessage)
			return procq.Stop
		},
	})

	pq.Spawn(procq.SpawnParams{
		MessageCap: 4,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			if message == nil {
				if res := pidA.Send(ctx.Self(), procq.KeepMessage); res != procq.SendSuccess {
					t.Errorf("send ping: got %v, want SendSuccess", res)
				}
				return procq.WaitMessage
			}
			close(done)
			return procq.Stop
		},
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ping-pong did not complete in time")
	}

	deadline := time.Now().Add(time.Second)
	for pq.ProcCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := pq.ProcCount(); got != 0 {
		t.Fatalf("ProcCount after ping-pong: got %d, want 0", got)
	}
}

// blockWorker occupies a single-worker ProcessQueue's only worker
// goroutine for the duration of the test, by spawning an actor whose
// handler does not return until hold is closed. Any other actor spawned
// afterward sits on the run queue without ever being visited, so its
// mailbox can be driven to exactly its capacity without racing the
// scheduler's own mailbox draining.
func blockWorker(pq *procq.ProcessQueue, hold <-chan struct{}) {
	pq.Spawn(procq.SpawnParams{
		MessageCap: 1,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			<-hold
			return procq.Stop
		},
	})
}

func TestMailboxOverflowKeep(t *testing.T) {
	pq := procq.New(4, 1)
	defer pq.Release()

	hold := make(chan struct{})
	defer close(hold)
	blockWorker(pq, hold)

	var released int32
	pid := pq.Spawn(procq.SpawnParams{
		MessageCap: 4,
		ReleaseMessage: func(message any) {
			atomic.AddInt32(&released, 1)
		},
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			return procq.WaitMessage
		},
	})

	for i := range 4 {
		if res := pid.Send(i, procq.KeepMessage); res != procq.SendSuccess {
			t.Fatalf("send %d: got %v, want SendSuccess", i, res)
		}
	}

	if res := pid.Send(999, procq.KeepMessage); res != procq.SendFail {
		t.Fatalf("5th send: got %v, want SendFail", res)
	}

	if got := atomic.LoadInt32(&released); got != 0 {
		t.Fatalf("released count with KeepMessage: got %d, want 0", got)
	}
}

func TestMailboxOverflowRemove(t *testing.T) {
	pq := procq.New(4, 1)
	defer pq.Release()

	hold := make(chan struct{})
	defer close(hold)
	blockWorker(pq, hold)

	var released int32
	var lastReleased any
	var mu sync.Mutex
	pid := pq.Spawn(procq.SpawnParams{
		MessageCap: 4,
		ReleaseMessage: func(message any) {
			mu.Lock()
			lastReleased = message
			mu.Unlock()
			atomic.AddInt32(&released, 1)
		},
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			return procq.WaitMessage
		},
	})

	for i := range 4 {
		if res := pid.Send(i, procq.RemoveMessage); res != procq.SendSuccess {
			t.Fatalf("send %d: got %v, want SendSuccess", i, res)
		}
	}

	if res := pid.Send(999, procq.RemoveMessage); res != procq.SendFail {
		t.Fatalf("5th send: got %v, want SendFail", res)
	}

	if got := atomic.LoadInt32(&released); got != 1 {
		t.Fatalf("released count with RemoveMessage: got %d, want 1", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if lastReleased != 999 {
		t.Fatalf("released message: got %v, want 999", lastReleased)
	}
}

func TestGenerationRecycle(t *testing.T) {
	pq := procq.New(2, 1)
	defer pq.Release()

	stopped := make(chan struct{})
	pidA := pq.Spawn(procq.SpawnParams{
		MessageCap: 1,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			close(stopped)
			return procq.Stop
		},
	})

	<-stopped
	deadline := time.Now().Add(time.Second)
	for pq.ProcCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	bMailbox := make(chan any, 1)
	pq.Spawn(procq.SpawnParams{
		MessageCap: 1,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			if message == nil {
				return procq.WaitMessage
			}
			bMailbox <- message
			return procq.WaitMessage
		},
	})

	if res := pidA.Send("stale", procq.KeepMessage); res != procq.ActorIsDead {
		t.Fatalf("send to recycled PID: got %v, want ActorIsDead", res)
	}

	select {
	case got := <-bMailbox:
		t.Fatalf("B's mailbox received unexpected message: %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestShutdownDrainsState(t *testing.T) {
	const n = 50
	pq := procq.New(n, 4)

	var released int32
	var msgReleased int32
	for range n {
		pq.Spawn(procq.SpawnParams{
			MessageCap: 2,
			ReleaseState: func(state any) {
				atomic.AddInt32(&released, 1)
			},
			ReleaseMessage: func(message any) {
				atomic.AddInt32(&msgReleased, 1)
			},
			Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
				return procq.WaitMessage
			},
		})
	}

	time.Sleep(20 * time.Millisecond)

	pq.Release()

	if got := atomic.LoadInt32(&released); got != n {
		t.Fatalf("released state count: got %d, want %d", got, n)
	}
	if got := pq.ProcCount(); got != 0 {
		t.Fatalf("ProcCount after Release: got %d, want 0", got)
	}
}

func TestSpawnRejectedAtCapacity(t *testing.T) {
	pq := procq.New(2, 1)
	defer pq.Release()

	block := make(chan struct{})
	handler := func(ctx *procq.Context, message any) procq.ProcessControl {
		<-block
		return procq.Stop
	}

	pq.Spawn(procq.SpawnParams{MessageCap: 1, Handler: handler})
	pq.Spawn(procq.SpawnParams{MessageCap: 1, Handler: handler})

	var releasedRejected int32
	rejected := pq.Spawn(procq.SpawnParams{
		MessageCap: 1,
		Handler:    handler,
		ReleaseState: func(state any) {
			atomic.AddInt32(&releasedRejected, 1)
		},
		InitialState: "rejected",
	})

	if !rejected.IsZero() {
		t.Fatalf("rejected spawn PID: got non-zero, want zero PID")
	}
	if got := atomic.LoadInt32(&releasedRejected); got != 1 {
		t.Fatalf("rejected InitialState release count: got %d, want 1", got)
	}
	if got := pq.ProcCount(); got != 2 {
		t.Fatalf("ProcCount after rejection: got %d, want 2", got)
	}

	close(block)
}

func TestFanout(t *testing.T) {
	n := 20000
	if procq.RaceEnabled {
		n = 2000
	}

	pq := procq.New(n+1, 8)
	defer pq.Release()

	var spawned int32
	var wg sync.WaitGroup
	wg.Add(n)

	pq.Spawn(procq.SpawnParams{
		MessageCap: 1,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			for range n {
				ctx.Spawn(procq.SpawnParams{
					MessageCap: 1,
					Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
						atomic.AddInt32(&spawned, 1)
						wg.Done()
						return procq.Stop
					},
				})
			}
			return procq.Stop
		},
	})

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(30 * time.Second):
		t.Fatalf("fanout did not complete: spawned %d of %d", atomic.LoadInt32(&spawned), n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for pq.ProcCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := pq.ProcCount(); got != 0 {
		t.Fatalf("ProcCount after fanout: got %d, want 0", got)
	}
}
