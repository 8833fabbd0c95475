// Copyright 2026 The procq Authors. All rights reserved.

// Command spawn1m is the reference load driver: it spawns a root actor
// which in turn spawns a large number of short-lived child actors, each of
// which immediately stops, then reports how long that took and how many
// actors are left live.
//
// It is an external collaborator, not part of the procq library itself —
// the library has no CLI, no flags, and no knowledge that this binary
// exists.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/nanoact/procq"
)

func main() {
	actors := flag.Int("actors", 1_000_000, "number of child actors to spawn")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "number of scheduler worker goroutines")
	flag.Parse()

	pq := procq.New(*actors+1, *workers)
	defer pq.Release()

	var wg sync.WaitGroup
	wg.Add(*actors)

	start := time.Now()

	pq.Spawn(procq.SpawnParams{
		MessageCap: 1,
		Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
			for range *actors {
				ctx.Spawn(procq.SpawnParams{
					MessageCap: 1,
					Handler: func(ctx *procq.Context, message any) procq.ProcessControl {
						wg.Done()
						return procq.Stop
					},
				})
			}
			return procq.Stop
		},
	})

	wg.Wait()
	elapsed := time.Since(start)

	for pq.ProcCount() != 0 {
		time.Sleep(time.Millisecond)
	}

	fmt.Printf("spawned %d actors in %s (%.0f actors/sec), final proc_count=%d\n",
		*actors, elapsed, float64(*actors)/elapsed.Seconds(), pq.ProcCount())
}
