package reconcile

import (
	"fmt"

	"github.com/orbitkit/orbit/element"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// variantAndKey classifies a new-tree element for keyed-diff pairing.
// ProviderNode is transparent here exactly as it is during
// reconciliation itself — its own "key" field is a provider-binding
// key, unrelated to the sibling disambiguation key this function
// reports, so pairing looks through it to the wrapped child.
func variantAndKey(el element.Element) (tag, key string, hasKey bool) {
	switch v := el.(type) {
	case element.ProviderNode:
		return variantAndKey(v.Child)
	case element.TextNode:
		return "text", "", false
	case element.ElementNode:
		return "element:" + v.Tag, v.Key, v.HasKey
	case element.ComponentNode:
		return fmt.Sprintf("component:%d", vtree.IdentifyFn(v.FunctionalComponent)), v.Key, v.HasKey
	case element.FragmentNode:
		return "fragment", v.Key, v.HasKey
	default:
		panic("orbit: unknown element variant")
	}
}

// prevVariantAndKey classifies a previously reconciled node the same
// way, so it can be paired against variantAndKey's output.
func prevVariantAndKey(n vtree.Node) (tag, key string, hasKey bool) {
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

// reconcileChildren pairs new children with previous children by
// (variantTag, key) where keys are present;
// unkeyed children pair positionally among their variantTag-peers.
// Unmatched previous children are discarded (their hooks are picked up
// by the disposed-hook cleanup pass over the whole tree).
func reconcileChildren(ctx *rcontext.Context, newChildren []element.Element, prevChildren []vtree.Node) []vtree.Node {
	consumed := make([]bool, len(prevChildren))
	keyed := make(map[string]int, len(prevChildren))
	unkeyedQueue := make(map[string][]int, len(prevChildren))

	for i, pc := range prevChildren {
		tag, key, hasKey := prevVariantAndKey(pc)
		if hasKey {
			keyed[tag+"|"+key] = i
		} else {
			unkeyedQueue[tag] = append(unkeyedQueue[tag], i)
		}
	}

	result := make([]vtree.Node, len(newChildren))
	for i, nc := range newChildren {
		tag, key, hasKey := variantAndKey(nc)

		matchIdx := -1
		if hasKey {
			if idx, ok := keyed[tag+"|"+key]; ok && !consumed[idx] {
				matchIdx = idx
			}
		} else if q := unkeyedQueue[tag]; len(q) > 0 {
			matchIdx = q[0]
			unkeyedQueue[tag] = q[1:]
		}

		var prevNode vtree.Node
		if matchIdx >= 0 {
			prevNode = prevChildren[matchIdx]
			consumed[matchIdx] = true
		}

		result[i] = one(ctx, nc, prevNode)
	}

	return result
}
