package render

import (
	"github.com/orbitkit/orbit/patch"
	"github.com/orbitkit/orbit/vtree"
)

// PatchToJSON renders a Patch to the wire shape a transport forwards to
// the browser client. This shape sits alongside the
// reconciled-tree JSON shape — it is not pinned the same way the tree
// shape is, but it must stay stable for WireVersion all the same.
func PatchToJSON(p patch.Patch) any {
	switch v := p.(type) {
	case patch.NoOp:
		return map[string]any{"op": "noop"}
	case *patch.Replace:
		return map[string]any{"op": "replace", "node": toJSON(v.Node)}
	case *patch.Insert:
		return map[string]any{"op": "insert", "node": toJSON(v.Node)}
	case *patch.Remove:
		return map[string]any{"op": "remove"}
	case *patch.Move:
		return map[string]any{"op": "move", "from": v.From, "to": v.To}
	case *patch.Update:
		m := map[string]any{"op": "update"}
		if len(v.Attrs) > 0 {
			m["attrs"] = attrPatchesToJSON(v.Attrs)
		}
		if v.Children != nil {
			m["children"] = childPatchesToJSON(v.Children)
		}
		if v.Child != nil {
			m["child"] = PatchToJSON(v.Child)
		}
		return m
	default:
		panic("orbit: unknown patch variant")
	}
}

func attrPatchesToJSON(ops []patch.AttrPatch) []map[string]any {
	out := make([]map[string]any, len(ops))
	for i, op := range ops {
		if op.Removed {
			out[i] = map[string]any{"key": op.Key, "removed": true}
			continue
		}
		out[i] = map[string]any{"key": op.Key, "value": attrValueToJSON(op.Attr)}
	}
	return out
}

// attrValueToJSON renders a single attribute's new value as one string:
// a static attribute's value and an event handler's id, as attrsToJSON
// writes them, while a client-hook binding (two separate keys in
// attrsToJSON) is packed as "name|id" under the patch's identity key.
func attrValueToJSON(a vtree.Attribute) string {
	switch at := a.(type) {
	case vtree.StaticAttr:
		return at.Value
	case vtree.EventHandler:
		return string(at.ID)
	case vtree.ClientHookAttr:
		return at.Name + "|" + string(at.ID)
	default:
		return ""
	}
}

func childPatchesToJSON(ops []patch.ChildPatch) []map[string]any {
	out := make([]map[string]any, len(ops))
	for i, op := range ops {
		out[i] = map[string]any{
			"old":   op.OldIndex,
			"new":   op.NewIndex,
			"patch": PatchToJSON(op.Patch),
		}
	}
	return out
}
