package reconcile

import (
	"github.com/orbitkit/orbit/element"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// reconcileComponent runs a ComponentFunc against ctx and reconciles the
// elements it returns. ComponentFunc's signature is
// (Context, Props) -> (Context, []Element); this implementation mutates
// ctx in place — the idiomatic Go rendering of an immutable-context-
// threading rule onto a pointer receiver — and discards the returned
// Context value, since there is nothing for a component to meaningfully
// return there beyond the mutations it already made through ctx.
func reconcileComponent(ctx *rcontext.Context, v element.ComponentNode, prev vtree.Node) vtree.Node {
	fnID := vtree.IdentifyFn(v.FunctionalComponent)

	var prevHooks *vtree.HookMap
	var prevChild vtree.Node
	if pc, ok := prev.(*vtree.ReconciledComponent); ok && pc.ComponentFn == fnID && pc.Key == v.Key {
		prevHooks = pc.Hooks
		prevChild = pc.Child
	}

	cursor := rcontext.NewHookCursor(prevHooks)
	saved := ctx.EnterComponent(cursor)

	_, children := v.FunctionalComponent(ctx, v.Props)

	hooks := ctx.FinishComponent()
	ctx.LeaveComponent(saved)

	childEl := wrapChildren(children)
	reconciledChild := one(ctx, childEl, prevChild)

	return &vtree.ReconciledComponent{
		ComponentFn: fnID,
		Key:         v.Key,
		Props:       v.Props,
		Hooks:       hooks,
		Child:       reconciledChild,
	}
}

// wrapChildren reconciles a component's returned children as a single
// sub-element, wrapping multiple children in a fragment.
func wrapChildren(children []element.Element) element.Element {
	if len(children) == 1 {
		return children[0]
	}
	return element.Fragment(children)
}
