// Package rcontext implements the per-render mutable cursor ("Context"):
// it threads hook slots, recorded handlers, and provider bindings
// through a single reconciliation pass.
//
// rcontext intentionally holds no reference to the element package: the
// root view is stored as an opaque value (View) so that this package
// does not import element back — element imports rcontext for *Context
// in its ComponentFunc signature, while rcontext refers to the element
// tree only through an opaque `any` carrier.
package rcontext

import (
	"fmt"
	"log/slog"

	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/vtree"
)

// HookOrderError is the fatal programmer error raised (via panic) in
// DevMode when the hook kind at a reused slot differs from the previous
// render, or when a component calls fewer hooks than it did last render.
// A component that calls more hooks than last render gets freshly
// initialized hooks for the extra slots and is not reported. The runtime
// actor recovers it at the mailbox boundary, runs cleanups, and shuts
// down.
type HookOrderError struct {
	Index    int
	Expected vtree.HookKind
	Got      vtree.HookKind
}

func (e *HookOrderError) Error() string {
	if e.Got == 0 {
		return fmt.Sprintf("orbit: hook order drift at index %d: expected %s, got no hook call (hook count decreased)", e.Index, e.Expected)
	}
	return fmt.Sprintf("orbit: hook order drift at index %d: expected %s, got %s", e.Index, e.Expected, e.Got)
}

// IdentifiableHandler pairs a stable handler id with the closure the
// current render produced for it.
type IdentifiableHandler struct {
	ID ident.ID
	Fn func(payload any)
}

// HookCursor is the per-component record of hooks from the previous
// render plus the current index into it. It is carried
// forward by the reconciler when a component instance persists across
// renders, and reset to an empty baseline when a component is freshly
// mounted.
type HookCursor struct {
	prev  *vtree.HookMap
	index int
	next  map[int]vtree.Hook
	order []int
}

// store records the hook for slot idx in the cursor being built for the
// current render.
func (hc *HookCursor) store(idx int, h vtree.Hook) {
	if hc.next == nil {
		hc.next = make(map[int]vtree.Hook)
	}
	if _, exists := hc.next[idx]; !exists {
		hc.order = append(hc.order, idx)
	}
	hc.next[idx] = h
}

// materialize builds the OrderedMap<int,Hook> for the tree produced by
// the current render, in slot order.
func (hc *HookCursor) materialize() *vtree.HookMap {
	m := vtree.NewHookMap()
	for _, idx := range hc.order {
		m.Set(idx, hc.next[idx])
	}
	return m
}

// NewHookCursor creates a cursor seeded with hooks retained from a
// previous render (nil for a freshly mounted component instance).
func NewHookCursor(prev *vtree.HookMap) *HookCursor {
	return &HookCursor{prev: prev}
}

// providerFrame is one entry of the provider stack.
type providerFrame struct {
	key   string
	value any
}

// Context is the render cursor threaded through a single reconciliation
// pass. A new Context-scoped provider stack and handler list is produced
// per pass via PrepareForReconciliation; the hook cursor is per
// component instance and is swapped in by the reconciler around each
// component invocation.
type Context struct {
	// View is the root element of the tree being reconciled. Stored as
	// an opaque value to avoid an import cycle with package element.
	View any

	// Providers is a persistent (copy-on-push) stack of active
	// provider bindings visible to the subtree currently being
	// reconciled. Persistent rather than mutated-in-place so that an
	// early return from a partially reconciled branch can never leak a
	// provider binding to a sibling.
	providers []providerFrame

	// Handlers accumulates every IdentifiableHandler recorded during
	// this reconciliation pass.
	Handlers []IdentifiableHandler

	// DevMode toggles hook-order-drift detection.
	DevMode bool

	// Logger receives structured diagnostics for programmer errors and
	// dispatch misses.
	Logger *slog.Logger

	cursor *HookCursor

	renderUpdate          func()
	updateHook            func(id ident.ID, fn func(vtree.Hook) vtree.Hook)
	dispatchClient        func(id ident.ID, event string, payload any)
	observeReducerTimeout func()
}

// New creates a Context bound to the given scheduling callbacks. The
// runtime actor supplies renderUpdate/updateHook/dispatchClient closures
// that enqueue messages on its own mailbox; tests may supply
// nil for any of them to get inert no-ops.
func New(
	renderUpdate func(),
	updateHook func(ident.ID, func(vtree.Hook) vtree.Hook),
	dispatchClient func(ident.ID, string, any),
) *Context {
	if renderUpdate == nil {
		renderUpdate = func() {}
	}
	if updateHook == nil {
		updateHook = func(ident.ID, func(vtree.Hook) vtree.Hook) {}
	}
	if dispatchClient == nil {
		dispatchClient = func(ident.ID, string, any) {}
	}
	return &Context{
		renderUpdate:          renderUpdate,
		updateHook:            updateHook,
		dispatchClient:        dispatchClient,
		observeReducerTimeout: func() {},
		Logger:                slog.Default(),
	}
}

// SetObserveReducerTimeout installs the callback invoked whenever a
// Reducer hook's Get call times out. The runtime wires this to its own
// metrics after constructing the Context; tests may leave it unset and
// get an inert no-op.
func (c *Context) SetObserveReducerTimeout(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	c.observeReducerTimeout = fn
}

// ObserveReducerTimeout reports a Reducer hook Get timeout to whatever
// the owning runtime has wired up for it.
func (c *Context) ObserveReducerTimeout() {
	c.observeReducerTimeout()
}

// DispatchClient enqueues a client-directed message for a Client hook.
func (c *Context) DispatchClient(id ident.ID, event string, payload any) {
	c.dispatchClient(id, event, payload)
}

// PrepareForReconciliation clears per-pass state ahead of a fresh
// reconciliation.
func (c *Context) PrepareForReconciliation() {
	c.Handlers = c.Handlers[:0]
	c.providers = nil
	c.cursor = nil
}

// RenderUpdate schedules a re-render on the owning runtime.
func (c *Context) RenderUpdate() {
	c.renderUpdate()
}

// UpdateHook posts a hook mutation to the owning runtime.
func (c *Context) UpdateHook(id ident.ID, fn func(vtree.Hook) vtree.Hook) {
	c.updateHook(id, fn)
}

// EnterComponent swaps in the hook cursor for the component instance
// about to be rendered, returning the previous cursor so the reconciler
// can restore it once the component's children have been processed.
// This is what lets hook indices be scoped per-component while a single
// Context flows through the whole tree in pre-order.
func (c *Context) EnterComponent(cur *HookCursor) *HookCursor {
	prev := c.cursor
	c.cursor = cur
	return prev
}

// LeaveComponent restores a previously swapped-out cursor.
func (c *Context) LeaveComponent(prev *HookCursor) {
	c.cursor = prev
}

// FetchOrInitHook returns the hook at the current cursor index for the
// component being rendered, initializing it via init() on first
// encounter. It advances the cursor.
// When DevMode is on, the hook found at a reused slot is validated
// against kind, and a drift panics with a
// *HookOrderError that the runtime actor recovers at the mailbox
// boundary.
func (c *Context) FetchOrInitHook(kind vtree.HookKind, init func() vtree.Hook) vtree.Hook {
	cur := c.cursor
	idx := cur.index
	cur.index++

	if cur.prev != nil {
		if h, ok := cur.prev.Get(idx); ok {
			if c.DevMode && h.Kind() != kind {
				panic(&HookOrderError{Index: idx, Expected: kind, Got: h.Kind()})
			}
			cur.store(idx, h)
			return h
		}
	}
	h := init()
	cur.store(idx, h)
	return h
}

// FinishComponent materializes the hooks recorded for the component
// currently on the cursor and, in DevMode, validates that no hooks from
// the previous render were left uncalled — a component that called
// fewer hooks this render than last.
func (c *Context) FinishComponent() *vtree.HookMap {
	cur := c.cursor
	if c.DevMode && cur.prev != nil && cur.index < cur.prev.Len() {
		missing, _ := cur.prev.Get(cur.index)
		var expected vtree.HookKind
		if missing != nil {
			expected = missing.Kind()
		}
		panic(&HookOrderError{Index: cur.index, Expected: expected})
	}
	return cur.materialize()
}

// UpdateHookAt replaces the hook at a known index without allocating a
// new id — used to record a fresh closure each render.
func (c *Context) UpdateHookAt(index int, h vtree.Hook) {
	c.cursor.store(index, h)
}

// CursorLen reports how many hook slots have been filled so far this
// render, for drift detection against the previous render's hook count.
func (c *Context) CursorLen() int {
	if c.cursor == nil {
		return 0
	}
	return c.cursor.index
}

// PushProvider pushes a (key, value) binding for the duration of
// reconciling a Provider node's child.
func (c *Context) PushProvider(key string, value any) {
	next := make([]providerFrame, len(c.providers)+1)
	copy(next, c.providers)
	next[len(c.providers)] = providerFrame{key: key, value: value}
	c.providers = next
}

// PopProvider restores the provider stack to a previously observed
// length, discarding frames pushed since.
func (c *Context) PopProvider(toLen int) {
	c.providers = c.providers[:toLen]
}

// ProviderDepth returns the current provider-stack length, used by
// callers that need to PopProvider back to this point.
func (c *Context) ProviderDepth() int {
	return len(c.providers)
}

// Provider looks up the nearest enclosing provider value for key,
// walking the stack from the top (innermost) down. ok is false if no
// provider for key is active.
func (c *Context) Provider(key string) (value any, ok bool) {
	for i := len(c.providers) - 1; i >= 0; i-- {
		if c.providers[i].key == key {
			return c.providers[i].value, true
		}
	}
	return nil, false
}

// RecordHandler appends a handler produced this render to the pass-wide
// handler list.
func (c *Context) RecordHandler(h IdentifiableHandler) {
	c.Handlers = append(c.Handlers, h)
}
