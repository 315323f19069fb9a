package patch

import (
	"fmt"

	"github.com/orbitkit/orbit/vtree"
)

// ChildPatch positions one result of diffing two children lists. OldIndex
// is the index into prev's children (-1 for a freshly inserted node).
// NewIndex is the index into next's children (-1 for a node dropped
// entirely, carried only so Remove is visible in the patch for
// introspection — Apply skips these when rebuilding the children slice).
type ChildPatch struct {
	OldIndex int
	NewIndex int
	Patch    Patch
}

// nodeVariantAndKey classifies a reconciled node for the same keyed-diff
// pairing rule the reconciler uses: build keyed maps on both sides, pair
// unkeyed children positionally among their variant-tag peers.
func nodeVariantAndKey(n vtree.Node) (tag, key string, hasKey bool) {
	switch v := n.(type) {
	case *vtree.ReconciledText:
		return "text", "", false
	case *vtree.ReconciledElement:
		return "element:" + v.Tag, v.Key, v.Key != ""
	case *vtree.ReconciledComponent:
		return fmt.Sprintf("component:%d", v.ComponentFn), v.Key, v.Key != ""
	case *vtree.ReconciledFragment:
		return "fragment", v.Key, v.Key != ""
	default:
		panic("orbit: unknown reconciled node variant")
	}
}

// diffChildren pairs prevChildren against nextChildren by key (falling
// back to positional pairing among same-variant unkeyed siblings),
// emitting one ChildPatch per next slot plus a trailing ChildPatch per
// unmatched prev slot (Remove, NewIndex -1).
func diffChildren(prevChildren, nextChildren []vtree.Node) []ChildPatch {
	consumed := make([]bool, len(prevChildren))
	keyed := make(map[string]int, len(prevChildren))
	unkeyedQueue := make(map[string][]int, len(prevChildren))

	for i, pc := range prevChildren {
		tag, key, hasKey := nodeVariantAndKey(pc)
		if hasKey {
			keyed[tag+"|"+key] = i
		} else {
			unkeyedQueue[tag] = append(unkeyedQueue[tag], i)
		}
	}

	ops := make([]ChildPatch, 0, len(nextChildren))
	for i, nc := range nextChildren {
		tag, key, hasKey := nodeVariantAndKey(nc)

		oldIdx := -1
		if hasKey {
			if idx, ok := keyed[tag+"|"+key]; ok && !consumed[idx] {
				oldIdx = idx
			}
		} else if q := unkeyedQueue[tag]; len(q) > 0 {
			oldIdx = q[0]
			unkeyedQueue[tag] = q[1:]
		}

		if oldIdx < 0 {
			ops = append(ops, ChildPatch{OldIndex: -1, NewIndex: i, Patch: &Insert{Node: nc}})
			continue
		}

		consumed[oldIdx] = true
		content := Create(prevChildren[oldIdx], nc)
		if oldIdx != i {
			if _, noop := content.(NoOp); noop {
				content = &Move{From: oldIdx, To: i}
			}
		}
		ops = append(ops, ChildPatch{OldIndex: oldIdx, NewIndex: i, Patch: content})
	}

	for j := range prevChildren {
		if !consumed[j] {
			ops = append(ops, ChildPatch{OldIndex: j, NewIndex: -1, Patch: &Remove{}})
		}
	}

	return ops
}
