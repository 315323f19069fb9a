package hook

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// ClientDispatch enqueues a client-directed message for a Client hook's
// id.
type ClientDispatch func(event string, payload any)

// Client binds a named client-side behavior to an onEvent callback and
// returns the stable hook id (for building a ClientHookAttribute) plus a
// dispatch function.
func Client(
	ctx *rcontext.Context,
	name string,
	onEvent func(event string, payload any, reply vtree.ReplyDispatcher),
) (ident.ID, ClientDispatch) {
	h := ctx.FetchOrInitHook(vtree.KindClient, func() vtree.Hook {
		return &vtree.ClientHook{ID: ident.New(), Name: name}
	})
	ch := h.(*vtree.ClientHook)
	ch.Name = name
	ch.OnEvent = onEvent

	id := ch.ID
	dispatch := func(event string, payload any) {
		ctx.DispatchClient(id, event, payload)
	}
	return id, dispatch
}
