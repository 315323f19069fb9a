// Package runtime implements the runtime actor: a
// single-threaded cooperative actor (one goroutine, one FIFO mailbox)
// that owns a reconciled tree, dispatches events, applies hook
// mutations, and emits full or patch updates to an Updater sink.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/orbitkit/orbit/element"
	"github.com/orbitkit/orbit/hook"
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/patch"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/reconcile"
	"github.com/orbitkit/orbit/vtree"
)

// RenderedUpdate is what a runtime sends to an Updater: either a full
// tree (first render) or a patch against the previously sent tree.
type RenderedUpdate interface {
	isRenderedUpdate()
}

// FullUpdate carries a complete reconciled tree.
type FullUpdate struct {
	Tree vtree.Node
}

func (FullUpdate) isRenderedUpdate() {}

// PatchUpdate carries a structural diff against the last tree sent.
type PatchUpdate struct {
	Patch patch.Patch
}

func (PatchUpdate) isRenderedUpdate() {}

// Updater is the transport-facing sink a runtime pushes RenderedUpdates
// to. Implementations are expected to serialise via the
// render package (or an equivalent) and push over a transport; they must
// be safe to call from the runtime's actor goroutine and should not
// block indefinitely.
type Updater interface {
	Send(RenderedUpdate) error
}

// Dispatcher forwards a Client hook's dispatch(event, payload) call
// to whatever external sink the caller's transport
// uses — there is no inbound replyDispatcher to reuse for a
// server-initiated push, so Start takes this as the default sink.
type Dispatcher func(id ident.ID, event string, payload any)

// Handle is the public handle to a running runtime. All methods are
// safe for concurrent use; they just post to the actor's mailbox and,
// where a reply is expected, wait for it.
type Handle struct {
	mailbox chan any
	stopped chan struct{}
}

type msgShutdown struct{}

type msgRenderUpdate struct{}

type msgProcessEvent struct {
	id      ident.ID
	payload any
}

type msgProcessEventImmediate struct {
	id      ident.ID
	payload any
	reply   chan error
}

type msgProcessClientHook struct {
	id      ident.ID
	event   string
	payload any
}

type msgUpdateHookState struct {
	id ident.ID
	fn func(vtree.Hook) vtree.Hook
}

type msgReconcileImmediate struct {
	reply chan vtree.Node
}

type msgGetReconciled struct {
	reply chan vtree.Node
}

type msgPatchHistorySince struct {
	afterSeq uint64
	reply    chan []PatchHistoryEntry
}

// runtime is the actor state; it is only ever touched from loop's
// goroutine.
type runtime struct {
	opts       Options
	view       element.Element
	updater    Updater
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metrics
	history    *PatchHistory

	ctx     *rcontext.Context
	current vtree.Node // last reconciled tree, nil before first render
	seq     uint64

	handlers map[ident.ID]func(any)
	hooks    map[ident.ID]vtree.Hook

	mailbox chan any
	stopped chan struct{}
}

// Start spawns a runtime for view, pushing its first full render to
// updater, then begins serving its mailbox in a new goroutine.
func Start(view element.Element, updater Updater, dispatcher Dispatcher, opts ...Option) *Handle {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if dispatcher == nil {
		dispatcher = func(ident.ID, string, any) {}
	}

	hook.DefaultCallTimeout = o.ReducerTimeout

	r := &runtime{
		opts:       o,
		view:       view,
		updater:    updater,
		dispatcher: dispatcher,
		logger:     o.Logger,
		metrics:    newMetrics(o.Registry),
		history:    NewPatchHistory(o.PatchHistory),
		mailbox:    make(chan any, o.MailboxSize),
		stopped:    make(chan struct{}),
	}
	r.ctx = rcontext.New(r.enqueueRenderUpdate, r.enqueueUpdateHook, r.enqueueDispatchClient)
	r.ctx.DevMode = o.DevMode
	r.ctx.Logger = o.Logger
	r.ctx.SetObserveReducerTimeout(r.observeReducerTimeout)

	go r.loop()

	return &Handle{mailbox: r.mailbox, stopped: r.stopped}
}

// enqueueRenderUpdate is the renderUpdate closure threaded into Context:
// it posts RenderUpdate from wherever it's called — including from
// inside the actor goroutine itself, during an effect — which is why
// the mailbox must be buffered.
func (r *runtime) enqueueRenderUpdate() {
	select {
	case r.mailbox <- msgRenderUpdate{}:
	case <-r.stopped:
	}
}

func (r *runtime) enqueueUpdateHook(id ident.ID, fn func(vtree.Hook) vtree.Hook) {
	select {
	case r.mailbox <- msgUpdateHookState{id: id, fn: fn}:
	case <-r.stopped:
	}
}

// observeReducerTimeout is wired into Context as the Reducer-timeout
// callback: it records the Prometheus counter and logs
// ErrReducerTimeout so a timed-out Get is visible outside the hook
// package, not just swallowed into a zero-value model.
func (r *runtime) observeReducerTimeout() {
	r.logger.Warn("orbit: reducer get timed out", "error", ErrReducerTimeout)
	r.metrics.observeReducerTimeout()
}

func (r *runtime) enqueueDispatchClient(id ident.ID, event string, payload any) {
	select {
	case r.mailbox <- msgProcessClientHookDispatch{id: id, event: event, payload: payload}:
	case <-r.stopped:
	}
}

// msgProcessClientHookDispatch carries a Client hook's own dispatch(event,
// payload) call (as opposed to msgProcessClientHook, which carries an
// inbound browser event for the hook's onEvent).
type msgProcessClientHookDispatch struct {
	id      ident.ID
	event   string
	payload any
}

func (r *runtime) loop() {
	defer close(r.stopped)
	defer r.shutdown()

	defer r.recoverFatal()

	r.render(context.Background())

	for m := range r.mailbox {
		if r.handle(m) {
			return
		}
	}
}

// handle processes one mailbox message; it returns true when the actor
// should stop draining the mailbox (a Shutdown message).
func (r *runtime) handle(m any) (stop bool) {
	switch msg := m.(type) {
	case msgShutdown:
		return true

	case msgRenderUpdate:
		r.render(context.Background())

	case msgProcessEvent:
		r.processEvent(context.Background(), msg.id, msg.payload)

	case msgProcessEventImmediate:
		err := r.processEvent(context.Background(), msg.id, msg.payload)
		msg.reply <- err

	case msgProcessClientHook:
		r.processClientHook(msg.id, msg.event, msg.payload)

	case msgProcessClientHookDispatch:
		r.dispatcher(msg.id, msg.event, msg.payload)

	case msgUpdateHookState:
		if h, ok := r.hooks[msg.id]; ok {
			msg.fn(h)
		}

	case msgReconcileImmediate:
		r.render(context.Background())
		msg.reply <- r.current

	case msgGetReconciled:
		msg.reply <- r.current

	case msgPatchHistorySince:
		msg.reply <- r.history.Since(msg.afterSeq)
	}
	return false
}

// render performs one reconciliation pass and sends a FullUpdate (first
// render) or PatchUpdate (every render after) through the updater.
func (r *runtime) render(ctx context.Context) {
	_, end := startSpan(ctx, r.opts.Tracer, "orbit.reconcile")
	start := time.Now()

	prev := r.current
	next := reconcile.Tree(r.ctx, r.view, prev)
	r.current = next
	r.hooks = collectHooks(next)
	r.handlers = indexHandlers(r.ctx.Handlers)

	var update RenderedUpdate
	if prev == nil {
		update = FullUpdate{Tree: next}
	} else {
		update = PatchUpdate{Patch: patch.Create(prev, next)}
	}

	if err := r.updater.Send(update); err != nil {
		r.logger.Warn("orbit: updater send failed", "error", err)
	} else {
		r.seq++
		r.history.Add(r.seq, update, r.opts.Now())
	}

	r.metrics.observeRender(time.Since(start).Seconds(), vtree.Size(next))
	end(nil)
}

// processEvent dispatches to a recorded handler by id. A miss is logged and, for the
// immediate form, returned as ErrHandlerNotFound.
func (r *runtime) processEvent(ctx context.Context, id ident.ID, payload any) error {
	_, end := startSpan(ctx, r.opts.Tracer, "orbit.dispatch")
	defer end(nil)

	fn, ok := r.handlers[id]
	if !ok {
		r.logger.Warn("orbit: event dispatch miss", "handler_id", id)
		r.metrics.observeDispatchMiss("event")
		return ErrHandlerNotFound
	}
	fn(payload)
	return nil
}

// processClientHook locates a Client hook by id in the current tree and
// invokes its onEvent.
func (r *runtime) processClientHook(id ident.ID, event string, payload any) {
	h, ok := r.hooks[id]
	if !ok {
		r.logger.Warn("orbit: client hook dispatch miss", "hook_id", id)
		r.metrics.observeDispatchMiss("client_hook")
		return
	}
	ch, ok := h.(*vtree.ClientHook)
	if !ok || ch.OnEvent == nil {
		return
	}
	ch.OnEvent(event, payload, &replyDispatcher{id: id, r: r})
}

// replyDispatcher implements vtree.ReplyDispatcher for a single Client
// hook invocation, forwarding through the runtime's own Dispatcher.
type replyDispatcher struct {
	id ident.ID
	r  *runtime
}

func (d *replyDispatcher) Dispatch(event string, payload any) {
	d.r.dispatcher(d.id, event, payload)
}

// shutdown runs cleanup for every hook still alive when the actor stops.
func (r *runtime) shutdown() {
	for _, h := range r.hooks {
		switch v := h.(type) {
		case *vtree.EffectHook:
			hook.DisposeEffect(v)
		case *vtree.ReducerHook:
			if v.Cleanup != nil {
				v.Cleanup()
			}
		}
	}
}

// recoverFatal implements the fatal-programmer-error path: a panic
// raised by *rcontext.HookOrderError or *hook.ProviderMissingError
// during render aborts the actor, logs, and lets the deferred shutdown
// still run cleanups. Any other panic is re-raised — it is not one of
// the documented fatal-programmer-error kinds and indicates a genuine
// bug in the runtime itself.
func (r *runtime) recoverFatal() {
	rec := recover()
	if rec == nil {
		return
	}
	switch err := rec.(type) {
	case *rcontext.HookOrderError:
		r.logger.Error("orbit: fatal hook order drift, shutting down", "error", err)
	case *hook.ProviderMissingError:
		r.logger.Error("orbit: fatal missing provider, shutting down", "error", err)
	default:
		panic(rec)
	}
}

func indexHandlers(handlers []rcontext.IdentifiableHandler) map[ident.ID]func(any) {
	out := make(map[ident.ID]func(any), len(handlers))
	for _, h := range handlers {
		out[h.ID] = h.Fn
	}
	return out
}

// collectHooks walks a reconciled tree pre-order and indexes every
// hook found by id, mirroring reconcile.DisposeRemoved's walker — the
// runtime needs the same index for UpdateHookState and
// ProcessClientHook lookups.
func collectHooks(n vtree.Node) map[ident.ID]vtree.Hook {
	out := make(map[ident.ID]vtree.Hook)
	var walk func(vtree.Node)
	walk = func(n vtree.Node) {
		if n == nil {
			return
		}
		switch v := n.(type) {
		case *vtree.ReconciledElement:
			for _, c := range v.Children {
				walk(c)
			}
		case *vtree.ReconciledFragment:
			for _, c := range v.Children {
				walk(c)
			}
		case *vtree.ReconciledComponent:
			for id, h := range vtree.HooksByID(v.Hooks) {
				out[id] = h
			}
			walk(v.Child)
		}
	}
	walk(n)
	return out
}
