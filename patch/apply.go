package patch

import "github.com/orbitkit/orbit/vtree"

// Apply transforms prev by p, producing the tree patch.Create(prev, ?)
// was computed against.
func Apply(prev vtree.Node, p Patch) vtree.Node {
	switch v := p.(type) {
	case NoOp:
		return prev
	case *Replace:
		return v.Node
	case *Insert:
		return v.Node
	case *Remove:
		return nil
	case *Move:
		return prev
	case *Update:
		return applyUpdate(prev, v)
	default:
		panic("orbit: unknown patch variant")
	}
}

func applyUpdate(prev vtree.Node, u *Update) vtree.Node {
	switch pv := prev.(type) {
	case *vtree.ReconciledElement:
		return &vtree.ReconciledElement{
			Tag:      pv.Tag,
			Key:      pv.Key,
			Attrs:    applyAttrs(pv.Attrs, u.Attrs),
			Children: applyChildren(pv.Children, u.Children),
		}
	case *vtree.ReconciledFragment:
		return &vtree.ReconciledFragment{
			Key:      pv.Key,
			Children: applyChildren(pv.Children, u.Children),
		}
	case *vtree.ReconciledComponent:
		return &vtree.ReconciledComponent{
			ComponentFn: pv.ComponentFn,
			Key:         pv.Key,
			Props:       pv.Props,
			Hooks:       pv.Hooks,
			Child:       Apply(pv.Child, u.Child),
		}
	default:
		panic("orbit: Update patch applied to an incompatible prev node")
	}
}

// applyChildren rebuilds a children slice from prev's children plus the
// per-slot ChildPatch list; entries with NewIndex < 0 are prev children
// that were removed and contribute nothing to the result.
func applyChildren(prev []vtree.Node, ops []ChildPatch) []vtree.Node {
	count := 0
	for _, op := range ops {
		if op.NewIndex >= 0 {
			count++
		}
	}
	if count == 0 && prev == nil {
		return nil
	}

	result := make([]vtree.Node, count)
	for _, op := range ops {
		if op.NewIndex < 0 {
			continue
		}
		var prevChild vtree.Node
		if op.OldIndex >= 0 {
			prevChild = prev[op.OldIndex]
		}
		result[op.NewIndex] = Apply(prevChild, op.Patch)
	}
	return result
}
