package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Effect records fn and trigger for this render; whether fn actually
// runs is decided by the post-reconciliation effect pass (RunEffect),
// not here.
func Effect(ctx *rcontext.Context, fn func() func(), trigger vtree.Trigger) {
	h := ctx.FetchOrInitHook(vtree.KindEffect, func() vtree.Hook {
		return &vtree.EffectHook{ID: ident.New()}
	})
	eh := h.(*vtree.EffectHook)
	eh.Fn = fn
	eh.Trigger = trigger
}

// RunEffect applies the effect-trigger rule to a single Effect hook
// found during the post-reconciliation walk. If a prior cleanup exists
// and the effect is about to re-run, it is called first.
func RunEffect(eh *vtree.EffectHook) {
	hasPrev := eh.Prev != nil && eh.Prev.Ran
	var prevDeps []any
	if eh.Prev != nil {
		prevDeps = eh.Prev.Deps
	}

	run, nextDeps := shouldRun(eh.Trigger, prevDeps, hasPrev)
	if !run {
		return
	}

	if eh.Prev != nil && eh.Prev.Cleanup != nil {
		eh.Prev.Cleanup()
	}

	cleanup := eh.Fn()
	eh.Prev = &vtree.EffectResult{Deps: nextDeps, Cleanup: cleanup, Ran: true}
}

// DisposeEffect runs an Effect hook's last cleanup, if any, as part of
// disposed-hook cleanup.
func DisposeEffect(eh *vtree.EffectHook) {
	if eh.Prev != nil && eh.Prev.Cleanup != nil {
		eh.Prev.Cleanup()
		eh.Prev.Cleanup = nil
	}
}
