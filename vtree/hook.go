// Package vtree defines the reconciled tree: the post-reconciliation
// node variants that carry hook state,
// handler ids, and resolved props. It has no dependency on the element
// or hook packages — it is the leaf of the dependency graph that both
// sides (the building of elements and the running of hooks) target.
package vtree

import (
	orderedmap "github.com/elliotchance/orderedmap/v2"

	"github.com/orbitkit/orbit/internal/ident"
)

// HookKind discriminates the hook variants for dev-mode hook order
// validation and diagnostics.
type HookKind uint8

const (
	KindState HookKind = iota + 1
	KindReducer
	KindEffect
	KindMemo
	KindCallback
	KindHandler
	KindClient
)

// String renders a human-readable hook kind name, used in fatal
// programmer-error diagnostics.
func (k HookKind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindReducer:
		return "Reducer"
	case KindEffect:
		return "Effect"
	case KindMemo:
		return "Memo"
	case KindCallback:
		return "Callback"
	case KindHandler:
		return "Handler"
	case KindClient:
		return "Client"
	default:
		return "Unknown"
	}
}

// Hook is the common interface every hook variant satisfies. Every hook
// carries a stable id and a Kind used for dev-mode order drift
// detection.
type Hook interface {
	HookID() ident.ID
	Kind() HookKind
}

// ReducerHandle is the minimal actor handle a Reducer hook needs: a
// synchronous Get, a fire-and-forget Dispatch, and a terminal Shutdown.
// The concrete implementation (an isolated goroutine with its own
// mailbox) lives in package hook; vtree only needs the shape so
// that ReducerHook can be declared here without an import cycle.
type ReducerHandle interface {
	Get() (any, error)
	Dispatch(reduce func(model, msg any) any, msg any)
	Shutdown()
}

// StateHook holds a plain value. Value is mutated only via the setter's
// posted UpdateHookState message.
type StateHook struct {
	ID    ident.ID
	Value any
}

func (h *StateHook) HookID() ident.ID { return h.ID }
func (h *StateHook) Kind() HookKind   { return KindState }

// ReducerHook owns an isolated actor holding the model. Cleanup sends Shutdown on
// disposal.
type ReducerHook struct {
	ID      ident.ID
	Handle  ReducerHandle
	Cleanup func()
}

func (h *ReducerHook) HookID() ident.ID { return h.ID }
func (h *ReducerHook) Kind() HookKind   { return KindReducer }

// TriggerKind discriminates the Effect/Memo/Callback re-run rule.
type TriggerKind uint8

const (
	TriggerOnMount TriggerKind = iota
	TriggerOnUpdate
	TriggerWithDeps
)

// Trigger controls when an Effect, Memo, or Callback re-executes.
type Trigger struct {
	Kind TriggerKind
	Deps []any // only meaningful when Kind == TriggerWithDeps
}

// OnMount builds a Trigger that runs once, after first reconciliation.
func OnMount() Trigger { return Trigger{Kind: TriggerOnMount} }

// OnUpdate builds a Trigger that runs after every reconciliation.
func OnUpdate() Trigger { return Trigger{Kind: TriggerOnUpdate} }

// WithDeps builds a Trigger that runs when deps differ structurally
// from the previously stored deps (or there is no previous run). An
// empty deps slice behaves like OnMount.
func WithDeps(deps ...any) Trigger { return Trigger{Kind: TriggerWithDeps, Deps: deps} }

// EffectResult is the record of an effect's last run: the cleanup it
// returned and the deps it ran with, used to decide whether the next
// render should re-run it.
type EffectResult struct {
	Deps    []any
	Cleanup func()
	Ran     bool // true once the effect has run at least once
}

// EffectHook carries a replaceable function and trigger, plus the
// bookkeeping from its last run.
type EffectHook struct {
	ID      ident.ID
	Fn      func() func()
	Trigger Trigger
	Prev    *EffectResult
}

func (h *EffectHook) HookID() ident.ID { return h.ID }
func (h *EffectHook) Kind() HookKind   { return KindEffect }

// MemoHook recomputes Value from Fn when deps change; the dependency
// semantics are identical to EffectHook.
type MemoHook struct {
	ID       ident.ID
	Value    any
	PrevDeps []any
	HasPrev  bool
	Trigger  Trigger
}

func (h *MemoHook) HookID() ident.ID { return h.ID }
func (h *MemoHook) Kind() HookKind   { return KindMemo }

// CallbackHook surfaces a stable function reference whenever deps are
// unchanged, replacing it when they change.
type CallbackHook struct {
	ID       ident.ID
	Fn       any
	PrevDeps []any
	HasPrev  bool
	Trigger  Trigger
}

func (h *CallbackHook) HookID() ident.ID { return h.ID }
func (h *CallbackHook) Kind() HookKind   { return KindCallback }

// HandlerHook is an IdentifiableHandler's backing hook: fn is replaced
// every render, id is stable, and it is automatically recorded into the
// Context's handler list.
type HandlerHook struct {
	ID ident.ID
	Fn func(payload any)
}

func (h *HandlerHook) HookID() ident.ID { return h.ID }
func (h *HandlerHook) Kind() HookKind   { return KindHandler }

// ReplyDispatcher lets a Client hook's onEvent callback enqueue a
// client-directed message.
type ReplyDispatcher interface {
	Dispatch(event string, payload any)
}

// ClientHook binds a named client-side behavior to onEvent, which the
// runtime invokes when the browser reports an event for this hook's id.
type ClientHook struct {
	ID      ident.ID
	Name    string
	OnEvent func(event string, payload any, reply ReplyDispatcher)
}

func (h *ClientHook) HookID() ident.ID { return h.ID }
func (h *ClientHook) Kind() HookKind   { return KindClient }

// HookMap is an OrderedMap<int,Hook> holding ReconciledComponent.hooks:
// hooks are matched by call-order index within a component, so insertion
// order — not the integer value of the key — is what downstream
// disposal/diffing cares about.
type HookMap = orderedmap.OrderedMap[int, Hook]

// NewHookMap constructs an empty HookMap.
func NewHookMap() *HookMap {
	return orderedmap.NewOrderedMap[int, Hook]()
}

// HooksByID indexes a HookMap by hook id, used by disposed-hook-cleanup
// and by the runtime's UpdateHookState/
// ProcessClientHook traversal.
func HooksByID(m *HookMap) map[ident.ID]Hook {
	out := make(map[ident.ID]Hook)
	if m == nil {
		return out
	}
	for el := m.Front(); el != nil; el = el.Next() {
		out[el.Value.HookID()] = el.Value
	}
	return out
}
