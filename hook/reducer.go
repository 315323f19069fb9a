package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Dispatch sends a message to a Reducer hook's actor.
type Dispatch[A any] func(msg A)

// Reducer spawns (on first render) an isolated actor holding the model,
// and returns the current model value plus a dispatch function. dispatch posts a Dispatch message to
// the actor and calls RenderUpdate, exactly like a State setter — the
// difference is the model lives in its own mailbox rather than being
// mutated in place by the runtime.
func Reducer[M, A any](ctx *rcontext.Context, initial M, reduce func(M, A) M) (M, Dispatch[A]) {
	h := ctx.FetchOrInitHook(vtree.KindReducer, func() vtree.Hook {
		actor := newReducerActor(initial)
		return &vtree.ReducerHook{
			ID:      ident.New(),
			Handle:  actor,
			Cleanup: actor.Shutdown,
		}
	})
	rh := h.(*vtree.ReducerHook)

	erasedReduce := func(model, msg any) any {
		return reduce(model.(M), msg.(A))
	}

	dispatch := func(msg A) {
		rh.Handle.Dispatch(erasedReduce, msg)
		ctx.RenderUpdate()
	}

	v, err := rh.Handle.Get()
	if err != nil {
		ctx.Logger.Warn("orbit: reducer get timed out", "hook_id", rh.ID, "error", err)
		ctx.ObserveReducerTimeout()
	}
	current, _ := v.(M)
	return current, dispatch
}
