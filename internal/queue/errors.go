package queue

import "github.com/nanoact/procq/internal/sentinel"

const (
	// ErrFull is returned by Push when the queue has no free slot.
	ErrFull = sentinel.Error("queue: full")

	// ErrEmpty is returned by Pop when the queue has no pending element.
	ErrEmpty = sentinel.Error("queue: empty")

	// ErrClosed is returned by Push once the queue has been closed.
	ErrClosed = sentinel.Error("queue: closed")
)
