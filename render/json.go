package render

import (
	"encoding/json"
	"strconv"

	"github.com/orbitkit/orbit/vtree"
)

// JSONAdapter serialises a reconciled tree to a pinned wire shape: each
// ReconciledElement becomes
// { "type": tag, "attrs": {...}, "0": child0, "1": child1, ... },
// components become { "type": "component", "0": ... }, and text renders
// as a bare JSON string.
type JSONAdapter struct{}

func (JSONAdapter) Render(n vtree.Node) (any, error) {
	return toJSON(n), nil
}

// MarshalJSON renders n through JSONAdapter and encodes the result.
func MarshalJSON(n vtree.Node) ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func toJSON(n vtree.Node) any {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *vtree.ReconciledText:
		return v.Text

	case *vtree.ReconciledElement:
		m := map[string]any{
			"type":  v.Tag,
			"attrs": attrsToJSON(v),
		}
		for i, c := range v.Children {
			m[strconv.Itoa(i)] = toJSON(c)
		}
		return m

	case *vtree.ReconciledFragment:
		m := map[string]any{"type": "fragment"}
		for i, c := range v.Children {
			m[strconv.Itoa(i)] = toJSON(c)
		}
		return m

	case *vtree.ReconciledComponent:
		return map[string]any{
			"type": "component",
			"0":    toJSON(v.Child),
		}

	default:
		panic("orbit: unknown reconciled node variant")
	}
}

// attrsToJSON flattens an element's key, static attributes, event
// handlers, and client-hook binding into a single "attrs" object.
func attrsToJSON(v *vtree.ReconciledElement) map[string]string {
	attrs := make(map[string]string, len(v.Attrs)+1)
	if v.Key != "" {
		attrs[KeyAttr] = v.Key
	}
	for _, a := range v.Attrs {
		switch at := a.(type) {
		case vtree.StaticAttr:
			attrs[at.Name] = at.Value
		case vtree.EventHandler:
			attrs[EventAttrPrefix+"-"+at.Kind] = string(at.ID)
		case vtree.ClientHookAttr:
			attrs[ClientHookAttrPrefix] = at.Name
			attrs[ClientHookAttrPrefix+"-id"] = string(at.ID)
		}
	}
	return attrs
}
