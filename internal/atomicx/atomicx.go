// Package atomicx provides named-ordering atomic wrapper types.
//
// It reproduces the call shape of the teacher library's atomix dependency
// (LoadAcquire, StoreRelease, CompareAndSwapAcqRel, AddAcqRel, LoadRelaxed,
// StoreRelaxed) on top of the standard library's sync/atomic, which already
// gives every operation sequentially consistent semantics — a guarantee at
// least as strong as acquire/release. The method names exist so call sites
// read the same way they would against the original dependency.
package atomicx

import "sync/atomic"

// Uint32 is an atomic uint32 with explicit memory-ordering method names.
type Uint32 struct {
	v atomic.Uint32
}

func (a *Uint32) LoadAcquire() uint32  { return a.v.Load() }
func (a *Uint32) LoadRelaxed() uint32  { return a.v.Load() }
func (a *Uint32) StoreRelease(x uint32) { a.v.Store(x) }
func (a *Uint32) StoreRelaxed(x uint32) { a.v.Store(x) }

func (a *Uint32) CompareAndSwapAcqRel(old, new uint32) bool {
	return a.v.CompareAndSwap(old, new)
}

func (a *Uint32) CompareAndSwapRelaxed(old, new uint32) bool {
	return a.v.CompareAndSwap(old, new)
}

func (a *Uint32) AddAcqRel(delta uint32) uint32 {
	return a.v.Add(delta)
}

// Uint64 is an atomic uint64 with explicit memory-ordering method names.
type Uint64 struct {
	v atomic.Uint64
}

func (a *Uint64) LoadAcquire() uint64  { return a.v.Load() }
func (a *Uint64) LoadRelaxed() uint64  { return a.v.Load() }
func (a *Uint64) StoreRelease(x uint64) { a.v.Store(x) }
func (a *Uint64) StoreRelaxed(x uint64) { a.v.Store(x) }

func (a *Uint64) CompareAndSwapAcqRel(old, new uint64) bool {
	return a.v.CompareAndSwap(old, new)
}

func (a *Uint64) CompareAndSwapRelaxed(old, new uint64) bool {
	return a.v.CompareAndSwap(old, new)
}

func (a *Uint64) AddAcqRel(delta uint64) uint64 {
	return a.v.Add(delta)
}

// Int32 is an atomic int32 with explicit memory-ordering method names.
// Used for the release lock's ownership flag, where negative/zero/positive
// states are simpler to express than an unsigned counter.
type Int32 struct {
	v atomic.Int32
}

func (a *Int32) LoadAcquire() int32  { return a.v.Load() }
func (a *Int32) LoadRelaxed() int32  { return a.v.Load() }
func (a *Int32) StoreRelease(x int32) { a.v.Store(x) }
func (a *Int32) StoreRelaxed(x int32) { a.v.Store(x) }

func (a *Int32) CompareAndSwapAcqRel(old, new int32) bool {
	return a.v.CompareAndSwap(old, new)
}

func (a *Int32) AddAcqRel(delta int32) int32 {
	return a.v.Add(delta)
}

// Bool is an atomic bool with explicit memory-ordering method names.
type Bool struct {
	v atomic.Bool
}

func (a *Bool) LoadAcquire() bool   { return a.v.Load() }
func (a *Bool) StoreRelease(x bool) { a.v.Store(x) }

func (a *Bool) CompareAndSwapAcqRel(old, new bool) bool {
	return a.v.CompareAndSwap(old, new)
}
