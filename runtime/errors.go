package runtime

import "errors"

// Sentinel errors for the non-fatal error kinds, distinguished from
// the panic/recover fatal-programmer-error path (see recoverFatal in
// runtime.go).
var (
	// ErrHandlerNotFound is returned by ProcessEventImmediate when id
	// does not match any handler recorded during the last render.
	ErrHandlerNotFound = errors.New("orbit: no handler registered for id")

	// ErrClientHookNotFound describes a client-hook id with no match in
	// the current reconciled tree. ProcessClientHook is fire-and-forget
	// and does not return it; such a miss is only logged and counted.
	ErrClientHookNotFound = errors.New("orbit: no client hook registered for id")

	// ErrStopped is returned by ProcessEventImmediate when the Handle's
	// runtime has already shut down.
	ErrStopped = errors.New("orbit: runtime is stopped")

	// ErrReducerTimeout mirrors hook.ErrReducerTimeout for callers that
	// only depend on package runtime.
	ErrReducerTimeout = errors.New("orbit: reducer Get timed out")
)
