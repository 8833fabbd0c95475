// Copyright 2026 The procq Authors. All rights reserved.

//go:build race

package procq

// RaceEnabled is true when the race detector is active. Tests use it to
// scale down actor counts in large fanout scenarios, since the race
// detector's per-goroutine bookkeeping makes million-actor runs too slow
// to be a useful part of the normal test loop.
const RaceEnabled = true
