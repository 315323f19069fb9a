package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Setter updates a State hook's value. Calling it posts an
// UpdateHookState mutation to the owning runtime and schedules a
// re-render. The setter's own identity need not be
// stable across renders — only the hook id is.
type Setter[T any] func(next T)

// State returns the current value of a State hook and a setter for it
//. On first render, initial seeds
// the value; on every later render the stored value — which may have
// been mutated out from under this render by a prior setter call — is
// returned unchanged.
func State[T any](ctx *rcontext.Context, initial T) (T, Setter[T]) {
	h := ctx.FetchOrInitHook(vtree.KindState, func() vtree.Hook {
		return &vtree.StateHook{ID: ident.New(), Value: initial}
	})
	sh := h.(*vtree.StateHook)
	id := sh.ID

	setter := func(next T) {
		ctx.UpdateHook(id, func(h vtree.Hook) vtree.Hook {
			cur, ok := h.(*vtree.StateHook)
			if !ok {
				return h
			}
			cur.Value = next
			return cur
		})
		ctx.RenderUpdate()
	}

	value, _ := sh.Value.(T)
	return value, setter
}
