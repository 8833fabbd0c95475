// Copyright 2026 The procq Authors. All rights reserved.

package procq

import "log/slog"

// defaultMessageCap is used for an actor's mailbox when SpawnParams.MessageCap
// is zero and no WithDefaultMessageCap option was given to New.
const defaultMessageCap = 16

// defaultMaxMessagesPerCycle is used when SpawnParams.MaxMessagesPerCycle is
// zero and no WithDefaultMaxMessagesPerCycle option was given to New.
const defaultMaxMessagesPerCycle = 16

// config holds the ProcessQueue construction options accumulated from
// functional Option values.
type config struct {
	logger                     *slog.Logger
	defaultMessageCap          int
	defaultMaxMessagesPerCycle int
}

// Option configures a ProcessQueue at construction time.
type Option func(*config)

// WithLogger sets the *slog.Logger used for worker lifecycle events and for
// spawns rejected for a missing handler; spawns rejected at capacity are
// not logged. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDefaultMessageCap sets the mailbox capacity used for a Spawn call
// whose SpawnParams.MessageCap is zero.
func WithDefaultMessageCap(n int) Option {
	return func(c *config) {
		c.defaultMessageCap = n
	}
}

// WithDefaultMaxMessagesPerCycle sets the per-cycle message bound used for a
// Spawn call whose SpawnParams.MaxMessagesPerCycle is zero.
func WithDefaultMaxMessagesPerCycle(n int) Option {
	return func(c *config) {
		c.defaultMaxMessagesPerCycle = n
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger:                     slog.Default(),
		defaultMessageCap:          defaultMessageCap,
		defaultMaxMessagesPerCycle: defaultMaxMessagesPerCycle,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
