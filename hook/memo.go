package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Memo recomputes fn() and surfaces its result when trigger indicates a
// change; otherwise it returns the previously computed value unchanged
//. Unlike Effect, the computation
// happens synchronously during render, not in the post-reconciliation
// effect pass.
func Memo[T any](ctx *rcontext.Context, fn func() T, trigger vtree.Trigger) T {
	h := ctx.FetchOrInitHook(vtree.KindMemo, func() vtree.Hook {
		return &vtree.MemoHook{ID: ident.New()}
	})
	mh := h.(*vtree.MemoHook)

	run, nextDeps := shouldRun(trigger, mh.PrevDeps, mh.HasPrev)
	if run {
		mh.Value = fn()
		mh.PrevDeps = nextDeps
		mh.HasPrev = true
	}
	mh.Trigger = trigger

	value, _ := mh.Value.(T)
	return value
}
