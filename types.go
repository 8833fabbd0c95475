// Copyright 2026 The procq Authors. All rights reserved.

package procq

// PID identifies an actor: a non-owning handle to its owning ProcessQueue,
// a stable slot index, and the generation stamped on that slot at spawn
// time. PIDs are compared by equality of all three fields; a PID whose
// generation no longer matches its slot's current generation is dead and
// stays dead forever.
type PID struct {
	queue *ProcessQueue
	slot  uint32
	gen   uint32
}

// IsZero reports whether p is the null PID, returned by a rejected Spawn.
func (p PID) IsZero() bool {
	return p.queue == nil && p.slot == 0 && p.gen == 0
}

// SendResult is the outcome of a Send call.
type SendResult int

const (
	// SendSuccess indicates the message was enqueued into the
	// destination's mailbox.
	SendSuccess SendResult = iota
	// SendFail indicates the message was not enqueued: the mailbox was
	// full, or the destination was mid-termination when Send tried to
	// acquire its release lock.
	SendFail
	// ActorIsDead indicates the destination slot has been recycled; the
	// PID's generation no longer matches.
	ActorIsDead
)

func (r SendResult) String() string {
	switch r {
	case SendSuccess:
		return "SendSuccess"
	case SendFail:
		return "SendFail"
	case ActorIsDead:
		return "ActorIsDead"
	default:
		return "SendResult(?)"
	}
}

// MessageAction selects what happens to a message that could not be
// enqueued because the destination mailbox is full.
type MessageAction int

const (
	// KeepMessage leaves the caller owning the undelivered message.
	KeepMessage MessageAction = iota
	// RemoveMessage invokes the mailbox's ReleaseMessage callback on the
	// undelivered message, discarding it.
	RemoveMessage
)

// ProcessControl is the value a Handler returns to tell the scheduler what
// to do with the actor next.
type ProcessControl int

const (
	// Stop terminates the actor: its state and mailbox are released, its
	// generation is bumped, and its slot returns to the free pool.
	Stop ProcessControl = iota
	// WaitMessage transitions the actor to WAITING: the scheduler will
	// not re-enter its handler until a mailbox message is available.
	WaitMessage
	// Continue keeps the actor RUNNING: the scheduler re-enters its
	// handler with no message, again within the same visit while
	// MaxMessagesPerCycle allows, and otherwise on the next visit.
	Continue
)

// Handler is the function invoked by a worker to run one step of an
// actor. message is nil when the actor is RUNNING; it is the just-popped
// mailbox message when the actor is WAITING.
type Handler func(ctx *Context, message any) ProcessControl

// SpawnParams describes a new actor.
type SpawnParams struct {
	// Handler is invoked by the scheduler; required.
	Handler Handler
	// InitialState is opaque user data. It is not passed to Handler and
	// Context has no accessor for it; its only consumer is ReleaseState.
	InitialState any
	// ReleaseState, if set, is invoked once on termination (or on
	// rejection by Spawn if the process pool is full) with InitialState.
	ReleaseState func(state any)
	// ReleaseMessage, if set, is invoked on any mailbox message that is
	// discarded unreceived: on RemoveMessage sends to a full mailbox, and
	// on mailbox drain at actor termination or queue shutdown.
	ReleaseMessage func(message any)
	// MessageCap is the actor's mailbox capacity. Defaults to the value
	// set by WithDefaultMessageCap (16 if not set) if zero.
	MessageCap int
	// MaxMessagesPerCycle bounds how many mailbox messages a single
	// scheduler visit delivers before re-enqueuing the actor. Defaults to
	// the value set by WithDefaultMaxMessagesPerCycle (16 if not set) if
	// zero, and is clamped to MessageCap.
	MaxMessagesPerCycle int
}
