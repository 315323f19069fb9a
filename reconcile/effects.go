package reconcile

import (
	"github.com/orbitkit/orbit/hook"
	"github.com/orbitkit/orbit/vtree"
)

// RunEffects is the post-reconciliation effect pass: it walks the new
// reconciled tree pre-order and runs every EffectHook it finds through
// hook.RunEffect, which itself decides — per the hook's trigger —
// whether the effect actually fires this render.
//
// This must be called after disposed-hook cleanup has already run for
// the same reconciliation pass: disposed hooks are torn down before any
// surviving effect re-runs.
func RunEffects(n vtree.Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *vtree.ReconciledElement:
		for _, c := range v.Children {
			RunEffects(c)
		}
	case *vtree.ReconciledFragment:
		for _, c := range v.Children {
			RunEffects(c)
		}
	case *vtree.ReconciledComponent:
		runComponentEffects(v.Hooks)
		RunEffects(v.Child)
	case *vtree.ReconciledText:
		// no hooks, no children
	}
}

func runComponentEffects(hooks *vtree.HookMap) {
	if hooks == nil {
		return
	}
	for el := hooks.Front(); el != nil; el = el.Next() {
		if eh, ok := el.Value.(*vtree.EffectHook); ok {
			hook.RunEffect(eh)
		}
	}
}
