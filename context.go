// Copyright 2026 The procq Authors. All rights reserved.

package procq

// Context is passed by a worker into a Handler invocation, standing in for
// the C original's thread-local "current actor": Go has no portable
// thread-local storage and goroutines are not pinned to OS threads, so the
// identity of "the actor currently running" is carried as an explicit
// value instead of recovered from per-thread state.
type Context struct {
	queue *ProcessQueue
	self  PID
}

// Self returns the PID of the actor whose handler is executing.
func (c *Context) Self() PID {
	return c.self
}

// Parent returns the PID of the actor that spawned the current actor. It
// may be the zero PID if the current actor was spawned externally (not
// from inside another actor's handler).
func (c *Context) Parent() PID {
	p := &c.queue.processes[c.self.slot]
	return p.parent
}

// Spawn creates a new actor whose Parent() is the actor running this
// handler. See ProcessQueue.Spawn for the capacity-exhaustion contract.
func (c *Context) Spawn(params SpawnParams) PID {
	return c.queue.spawn(params, c.self)
}

// Receive pops one message from the current actor's mailbox without
// blocking. It returns (nil, false) if the mailbox is empty. Handlers that
// return Continue use Receive to opportunistically drain additional
// messages within the same cycle.
func (c *Context) Receive() (any, bool) {
	p := &c.queue.processes[c.self.slot]
	msg, err := p.mailbox.Pop()
	if err != nil {
		return nil, false
	}
	return msg, true
}
