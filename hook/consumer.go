package hook

import (
	"fmt"

	"github.com/orbitkit/orbit/rcontext"
)

// ProviderMissingError is the fatal programmer error raised when
// Consumer is called for a key with no enclosing Provider.
type ProviderMissingError struct {
	Key string
}

func (e *ProviderMissingError) Error() string {
	return fmt.Sprintf("orbit: consumer(%q): no enclosing provider", e.Key)
}

// Consumer reads the nearest enclosing provider value for key. Consumer
// does not occupy a hook slot — it is not one of the seven hook
// variants tracked for dev-mode drift detection — so it may be called
// conditionally without affecting hook-order validation, which only
// governs State/Reducer/Effect/Memo/Callback/Handler/Client.
func Consumer[T any](ctx *rcontext.Context, key string) T {
	v, ok := ctx.Provider(key)
	if !ok {
		panic(&ProviderMissingError{Key: key})
	}
	typed, ok := v.(T)
	if !ok {
		panic(&ProviderMissingError{Key: key})
	}
	return typed
}
