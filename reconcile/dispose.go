package reconcile

import (
	"github.com/orbitkit/orbit/hook"
	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/vtree"
)

// DisposeRemoved disposes every hook present in prev but absent from
// next (by hook id) exactly once. It must be called before RunEffects
// for the same pass: a surviving effect's own stale cleanup is handled
// inside hook.RunEffect, but hooks that belong to components dropped
// from the tree entirely are only reachable from here.
func DisposeRemoved(prev, next vtree.Node) {
	prevHooks := make(map[ident.ID]vtree.Hook)
	collectHooks(prev, prevHooks)

	nextHooks := make(map[ident.ID]vtree.Hook)
	collectHooks(next, nextHooks)

	for id, h := range prevHooks {
		if _, stillPresent := nextHooks[id]; !stillPresent {
			disposeHook(h)
		}
	}
}

// collectHooks walks a reconciled tree pre-order and merges every
// component's hooks into out, keyed by hook id.
func collectHooks(n vtree.Node, out map[ident.ID]vtree.Hook) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *vtree.ReconciledElement:
		for _, c := range v.Children {
			collectHooks(c, out)
		}
	case *vtree.ReconciledFragment:
		for _, c := range v.Children {
			collectHooks(c, out)
		}
	case *vtree.ReconciledComponent:
		for id, h := range vtree.HooksByID(v.Hooks) {
			out[id] = h
		}
		collectHooks(v.Child, out)
	case *vtree.ReconciledText:
		// no hooks, no children
	}
}

// disposeHook runs the appropriate teardown for a single disposed hook.
// State/Memo/Callback/Handler/Client hooks carry no external resources
// and need no disposal beyond being dropped.
func disposeHook(h vtree.Hook) {
	switch v := h.(type) {
	case *vtree.EffectHook:
		hook.DisposeEffect(v)
	case *vtree.ReducerHook:
		if v.Cleanup != nil {
			v.Cleanup()
		}
	}
}
