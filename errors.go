// Copyright 2026 The procq Authors. All rights reserved.

package procq

import (
	"errors"

	"github.com/nanoact/procq/internal/sentinel"
)

// ErrHandlerRequired is logged by Spawn when SpawnParams.Handler is nil;
// Spawn then returns the zero PID.
const ErrHandlerRequired = sentinel.Error("procq: handler is required")

// errUnrecognizedControl is never returned to a caller; an unrecognized
// ProcessControl value from a handler is a fatal programmer error and
// panics with this error as the panic value.
const errUnrecognizedControl = sentinel.Error("procq: handler returned an unrecognized ProcessControl")

// IsHandlerRequired reports whether err is ErrHandlerRequired.
func IsHandlerRequired(err error) bool {
	return errors.Is(err, ErrHandlerRequired)
}
