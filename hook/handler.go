package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Handler returns an IdentifiableHandler with a stable id and the
// latest fn, and automatically records it into Context.Handlers.
func Handler(ctx *rcontext.Context, fn func(payload any)) rcontext.IdentifiableHandler {
	h := ctx.FetchOrInitHook(vtree.KindHandler, func() vtree.Hook {
		return &vtree.HandlerHook{ID: ident.New()}
	})
	hh := h.(*vtree.HandlerHook)
	hh.Fn = fn

	handler := rcontext.IdentifiableHandler{ID: hh.ID, Fn: fn}
	ctx.RecordHandler(handler)
	return handler
}
