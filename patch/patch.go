// Package patch implements the structural diff algebra: a
// Patch describes how to transform one reconciled tree into another, and
// Apply performs that transformation. Patch values are plain data (no
// methods beyond the marker interface) so they serialise cleanly over
// the wire.
package patch

import "github.com/orbitkit/orbit/vtree"

// Patch is the common interface for the six node-patch variants.
type Patch interface {
	isPatch()
}

// NoOp means prev and next are structurally identical at this node.
type NoOp struct{}

func (NoOp) isPatch() {}

// Update carries an attribute delta plus per-child patches for a node
// whose tag/key (or componentFn/key) matched between prev and next.
// Exactly one of Children or Child is populated, depending on whether
// prev was a multi-child node (Element/Fragment) or a single-child node
// (Component).
type Update struct {
	Attrs    []AttrPatch
	Children []ChildPatch
	Child    Patch
}

func (*Update) isPatch() {}

// Replace means prev and next disagree in variant, tag, key, or
// componentFn — the entire subtree is swapped for next wholesale.
type Replace struct {
	Node vtree.Node
}

func (*Replace) isPatch() {}

// Insert means there was no corresponding prev node at this slot; Node
// is mounted fresh.
type Insert struct {
	Node vtree.Node
}

func (*Insert) isPatch() {}

// Remove means the prev node at this slot has no counterpart in next
// and is dropped. Remove only ever appears as a ChildPatch.Patch value;
// Apply never receives it as the immediate node-level patch because
// Create always pairs within an existing children list (see children.go).
type Remove struct{}

func (*Remove) isPatch() {}

// Move means prev and next matched by key but at different positions,
// with no content change — a pure reorder.
type Move struct {
	From int
	To   int
}

func (*Move) isPatch() {}

// Create computes the patch that transforms prev into next. Component nodes are matched on (componentFn, key) and
// descended into their single child; any mismatch (including a
// different node variant entirely) yields Replace.
func Create(prev, next vtree.Node) Patch {
	switch nv := next.(type) {
	case *vtree.ReconciledText:
		pv, ok := prev.(*vtree.ReconciledText)
		if !ok || pv.Text != nv.Text {
			return &Replace{Node: next}
		}
		return NoOp{}

	case *vtree.ReconciledElement:
		pv, ok := prev.(*vtree.ReconciledElement)
		if !ok || pv.Tag != nv.Tag || pv.Key != nv.Key {
			return &Replace{Node: next}
		}
		attrs := diffAttrs(pv.Attrs, nv.Attrs)
		children := diffChildren(pv.Children, nv.Children)
		if len(attrs) == 0 && childrenAreNoOp(children) {
			return NoOp{}
		}
		return &Update{Attrs: attrs, Children: children}

	case *vtree.ReconciledFragment:
		pv, ok := prev.(*vtree.ReconciledFragment)
		if !ok || pv.Key != nv.Key {
			return &Replace{Node: next}
		}
		children := diffChildren(pv.Children, nv.Children)
		if childrenAreNoOp(children) {
			return NoOp{}
		}
		return &Update{Children: children}

	case *vtree.ReconciledComponent:
		pv, ok := prev.(*vtree.ReconciledComponent)
		if !ok || pv.ComponentFn != nv.ComponentFn || pv.Key != nv.Key {
			return &Replace{Node: next}
		}
		childPatch := Create(pv.Child, nv.Child)
		if _, noop := childPatch.(NoOp); noop {
			return NoOp{}
		}
		return &Update{Child: childPatch}

	default:
		panic("orbit: unknown reconciled node variant")
	}
}

// childrenAreNoOp reports whether every child patch is an unmoved,
// unchanged NoOp with nothing inserted or removed — the condition under
// which an Update collapses to NoOp.
func childrenAreNoOp(children []ChildPatch) bool {
	for _, c := range children {
		if c.OldIndex != c.NewIndex {
			return false
		}
		if _, ok := c.Patch.(NoOp); !ok {
			return false
		}
	}
	return true
}
