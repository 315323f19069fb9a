package runtime

import (
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/vtree"
)

// Stop sends the terminal Shutdown message. It does not
// wait for the actor goroutine to finish. Once the actor has exited, no
// method below blocks: ProcessEventImmediate returns ErrStopped,
// ReconcileImmediate and GetReconciled return (nil, false),
// PatchHistorySince returns nil, and the fire-and-forget methods return
// without effect.
func (h *Handle) Stop() {
	select {
	case h.mailbox <- msgShutdown{}:
	case <-h.stopped:
	}
}

// RenderUpdate schedules a re-render.
func (h *Handle) RenderUpdate() {
	select {
	case h.mailbox <- msgRenderUpdate{}:
	case <-h.stopped:
	}
}

// ProcessEvent dispatches a fire-and-forget event. A miss is logged by the actor; the caller is not
// informed.
func (h *Handle) ProcessEvent(id ident.ID, payload any) {
	select {
	case h.mailbox <- msgProcessEvent{id: id, payload: payload}:
	case <-h.stopped:
	}
}

// ProcessEventImmediate dispatches an event and waits for the result
//, returning ErrHandlerNotFound on a
// miss or ErrStopped if the runtime has already shut down.
func (h *Handle) ProcessEventImmediate(id ident.ID, payload any) error {
	reply := make(chan error, 1)
	select {
	case h.mailbox <- msgProcessEventImmediate{id: id, payload: payload, reply: reply}:
	case <-h.stopped:
		return ErrStopped
	}
	select {
	case err := <-reply:
		return err
	case <-h.stopped:
		return ErrStopped
	}
}

// ProcessClientHook delivers a browser-originated client-hook event.
func (h *Handle) ProcessClientHook(id ident.ID, event string, payload any) {
	select {
	case h.mailbox <- msgProcessClientHook{id: id, event: event, payload: payload}:
	case <-h.stopped:
	}
}

// ReconcileImmediate forces a reconciliation pass and returns the
// resulting tree.
func (h *Handle) ReconcileImmediate() (vtree.Node, bool) {
	reply := make(chan vtree.Node, 1)
	select {
	case h.mailbox <- msgReconcileImmediate{reply: reply}:
	case <-h.stopped:
		return nil, false
	}
	select {
	case n := <-reply:
		return n, true
	case <-h.stopped:
		return nil, false
	}
}

// GetReconciled returns the last reconciled tree, if any.
func (h *Handle) GetReconciled() (vtree.Node, bool) {
	reply := make(chan vtree.Node, 1)
	select {
	case h.mailbox <- msgGetReconciled{reply: reply}:
	case <-h.stopped:
		return nil, false
	}
	select {
	case n := <-reply:
		return n, n != nil
	case <-h.stopped:
		return nil, false
	}
}

// PatchHistorySince returns every RenderedUpdate sent after afterSeq,
// oldest first, from the resync ring buffer. It returns
// nil if the runtime was started without WithPatchHistory. A transport
// updater calls this on reconnect to replay missed frames instead of
// forcing a full re-render.
func (h *Handle) PatchHistorySince(afterSeq uint64) []PatchHistoryEntry {
	reply := make(chan []PatchHistoryEntry, 1)
	select {
	case h.mailbox <- msgPatchHistorySince{afterSeq: afterSeq, reply: reply}:
	case <-h.stopped:
		return nil
	}
	select {
	case entries := <-reply:
		return entries
	case <-h.stopped:
		return nil
	}
}
