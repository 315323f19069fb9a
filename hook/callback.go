package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Callback returns a function reference whose identity is stable
// whenever trigger indicates deps are unchanged; otherwise it is
// replaced by fn.
func Callback[T any](ctx *rcontext.Context, fn T, trigger vtree.Trigger) T {
	h := ctx.FetchOrInitHook(vtree.KindCallback, func() vtree.Hook {
		return &vtree.CallbackHook{ID: ident.New()}
	})
	ch := h.(*vtree.CallbackHook)

	run, nextDeps := shouldRun(trigger, ch.PrevDeps, ch.HasPrev)
	if run {
		ch.Fn = fn
		ch.PrevDeps = nextDeps
		ch.HasPrev = true
	}
	ch.Trigger = trigger

	out, _ := ch.Fn.(T)
	return out
}
