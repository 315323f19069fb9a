// Package reconcile implements the reconciler: a recursive diff of an
// element tree against the previously reconciled tree that
// threads hook state, handler ids, and provider bindings through
// rcontext.Context as it goes.
package reconcile

import (
	"github.com/orbitkit/orbit/element"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// Tree reconciles a root element against a previously reconciled tree
// (nil on first render). It resets the Context's per-pass state first,
// walks the tree left-to-right, pre-order, then runs disposed-hook
// cleanup followed by the effect pass, in that order.
func Tree(ctx *rcontext.Context, root element.Element, prev vtree.Node) vtree.Node {
	ctx.PrepareForReconciliation()
	ctx.View = root
	next := one(ctx, root, prev)
	DisposeRemoved(prev, next)
	RunEffects(next)
	return next
}

// one reconciles a single element against its previously reconciled
// counterpart, dispatching on the element's variant.
func one(ctx *rcontext.Context, el element.Element, prev vtree.Node) vtree.Node {
	switch v := el.(type) {
	case element.TextNode:
		return reconcileText(v, prev)
	case element.ElementNode:
		return reconcileElement(ctx, v, prev)
	case element.ComponentNode:
		return reconcileComponent(ctx, v, prev)
	case element.FragmentNode:
		return reconcileFragment(ctx, v, prev)
	case element.ProviderNode:
		return reconcileProvider(ctx, v, prev)
	default:
		panic("orbit: unknown element variant")
	}
}

// reconcileText always produces a ReconciledText carrying the new
// text, regardless of whether prev
// was also text (patch.Create is what decides whether the text actually
// changed).
func reconcileText(v element.TextNode, prev vtree.Node) vtree.Node {
	_ = prev
	return &vtree.ReconciledText{Text: v.Text}
}

// reconcileElement reconciles an ElementNode against its prior
// reconciled counterpart, if any.
func reconcileElement(ctx *rcontext.Context, v element.ElementNode, prev vtree.Node) vtree.Node {
	var prevChildren []vtree.Node
	if pe, ok := prev.(*vtree.ReconciledElement); ok && pe.Tag == v.Tag && pe.Key == v.Key {
		prevChildren = pe.Children
	}

	attrs := make([]vtree.Attribute, 0, len(v.Attributes))
	for _, a := range v.Attributes {
		attrs = append(attrs, convertAttribute(a))
	}

	children := reconcileChildren(ctx, v.Children, prevChildren)

	return &vtree.ReconciledElement{
		Tag:      v.Tag,
		Key:      v.Key,
		Attrs:    attrs,
		Children: children,
	}
}

// convertAttribute rebuilds a reconciled attribute from the new
// element's attribute. Event-handler and client-hook ids are carried
// over as-is — they were already resolved by the hook system (Handler/
// Client) before the element was constructed, so the reconciler never
// mints or reuses ids itself.
func convertAttribute(a element.Attribute) vtree.Attribute {
	switch at := a.(type) {
	case element.StaticAttribute:
		return vtree.StaticAttr{Name: at.Name, Value: at.Value}
	case element.EventHandlerAttribute:
		return vtree.EventHandler{Kind: at.Kind, ID: at.Handler.ID}
	case element.ClientHookAttribute:
		return vtree.ClientHookAttr{Name: at.Name, ID: identFromString(at.HookID)}
	default:
		panic("orbit: unknown attribute variant")
	}
}

// reconcileFragment reconciles a FragmentNode's children as a flat,
// keyable list with no wrapping DOM node of its own.
func reconcileFragment(ctx *rcontext.Context, v element.FragmentNode, prev vtree.Node) vtree.Node {
	var prevChildren []vtree.Node
	if pf, ok := prev.(*vtree.ReconciledFragment); ok && pf.Key == v.Key {
		prevChildren = pf.Children
	}
	children := reconcileChildren(ctx, v.Children, prevChildren)
	return &vtree.ReconciledFragment{Key: v.Key, Children: children}
}

// reconcileProvider pushes (key, value) for the duration of
// reconciling Child, then pops. The provider stack is
// persistent/copy-on-push so popping back to a saved depth is always
// safe even if reconciling Child panics and is recovered higher up.
func reconcileProvider(ctx *rcontext.Context, v element.ProviderNode, prev vtree.Node) vtree.Node {
	depth := ctx.ProviderDepth()
	ctx.PushProvider(v.Key, v.Value)
	defer ctx.PopProvider(depth)
	return one(ctx, v.Child, prev)
}
