package patch

import (
	"sort"

	"github.com/orbitkit/orbit/vtree"
)

// AttrPatch adds, replaces, or removes a single attribute, identified by
// Key: add/remove/replace by name, with event-handler deltas compared
// by (kind, id) instead.
type AttrPatch struct {
	Key     string
	Removed bool
	Attr    vtree.Attribute
}

// attrIdentity returns the identity key two attributes are compared
// under: name for static and client-hook attributes, event kind for
// event handlers (an element has at most one handler per DOM event kind).
func attrIdentity(a vtree.Attribute) string {
	switch v := a.(type) {
	case vtree.StaticAttr:
		return "static:" + v.Name
	case vtree.EventHandler:
		return "event:" + v.Kind
	case vtree.ClientHookAttr:
		return "clienthook:" + v.Name
	default:
		panic("orbit: unknown reconciled attribute variant")
	}
}

func attrsEqual(a, b vtree.Attribute) bool {
	switch av := a.(type) {
	case vtree.StaticAttr:
		bv, ok := b.(vtree.StaticAttr)
		return ok && av == bv
	case vtree.EventHandler:
		bv, ok := b.(vtree.EventHandler)
		return ok && av == bv
	case vtree.ClientHookAttr:
		bv, ok := b.(vtree.ClientHookAttr)
		return ok && av == bv
	default:
		return false
	}
}

// diffAttrs computes add/remove/replace operations between two attribute
// lists, keyed by attrIdentity and sorted by key for determinism (map
// iteration order is not stable).
func diffAttrs(prev, next []vtree.Attribute) []AttrPatch {
	prevByKey := make(map[string]vtree.Attribute, len(prev))
	for _, a := range prev {
		prevByKey[attrIdentity(a)] = a
	}
	nextByKey := make(map[string]vtree.Attribute, len(next))
	for _, a := range next {
		nextByKey[attrIdentity(a)] = a
	}

	var ops []AttrPatch
	for key := range prevByKey {
		if _, ok := nextByKey[key]; !ok {
			ops = append(ops, AttrPatch{Key: key, Removed: true})
		}
	}
	for key, na := range nextByKey {
		if pa, ok := prevByKey[key]; !ok || !attrsEqual(pa, na) {
			ops = append(ops, AttrPatch{Key: key, Attr: na})
		}
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].Key < ops[j].Key })
	return ops
}

// applyAttrs rebuilds an attribute list from prev plus a set of
// AttrPatch operations: kept/updated attributes retain prev's relative
// order, newly added ones are appended in Key order (diffAttrs already
// sorted the ops).
func applyAttrs(prev []vtree.Attribute, ops []AttrPatch) []vtree.Attribute {
	order := make([]string, 0, len(prev)+len(ops))
	present := make(map[string]bool, len(prev)+len(ops))
	values := make(map[string]vtree.Attribute, len(prev)+len(ops))

	for _, a := range prev {
		k := attrIdentity(a)
		order = append(order, k)
		values[k] = a
		present[k] = true
	}

	for _, op := range ops {
		if op.Removed {
			present[op.Key] = false
			continue
		}
		if !present[op.Key] {
			order = append(order, op.Key)
		}
		values[op.Key] = op.Attr
		present[op.Key] = true
	}

	result := make([]vtree.Attribute, 0, len(order))
	for _, k := range order {
		if present[k] {
			result = append(result, values[k])
		}
	}
	if len(result) == 0 && prev == nil {
		return nil
	}
	return result
}
