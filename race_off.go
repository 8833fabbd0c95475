// Copyright 2026 The procq Authors. All rights reserved.

//go:build !race

package procq

// RaceEnabled is false when the race detector is not active.
const RaceEnabled = false
