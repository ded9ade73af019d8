package proc

import "errors"

// Sentinel errors returned by inspectors and the sampler. Callers match them
// with errors.Is; everything else coming out of this package is a wrapped
// OS-level failure and should be treated as fatal for the calling command.
var (
	// ErrNotFound reports that the target process no longer exists.
	// Processes start and exit continuously, so this is an ordinary
	// outcome, not an exceptional one.
	ErrNotFound = errors.New("process not found")

	// ErrPermissionDenied reports that the OS refused access to the target.
	// Where at least pid and status are readable the inspector returns a
	// partial snapshot instead of this error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupported reports that the running platform lacks the requested
	// capability.
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrInvalidSampleOrder reports a sampler contract violation: the two
	// snapshots describe different pids, or the second was not taken
	// strictly after the first.
	ErrInvalidSampleOrder = errors.New("invalid sample order")
)
