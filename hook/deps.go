// Package hook implements the hook library: state, reducer, effect,
// memo, callback, handler, client, and consumer. Every
// hook shares the same discipline — fetch-or-init at the current cursor
// index, replace non-identity fields, return a callback-shaped API — so
// each hook function here is a thin wrapper around
// rcontext.Context.FetchOrInitHook plus its own re-run/replace rule.
package hook

import (
	"reflect"

	"github.com/orbitkit/orbit/vtree"
)

// compareDeps implements the dependency-comparison rule used by Effect,
// Memo, and Callback: equal length is
// required (a length mismatch is a programmer error, since deps arity
// for a given call site must be stable across renders, just like hook
// order itself), element-wise structural equality otherwise.
func compareDeps(prev, next []any) (changed bool) {
	if prev == nil {
		return true
	}
	if len(prev) != len(next) {
		panic("orbit: dependency list length changed between renders for the same hook call site")
	}
	for i := range next {
		if !reflect.DeepEqual(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// shouldRun decides whether an Effect/Memo/Callback should (re-)run
// given its trigger and the previously stored deps.
func shouldRun(trigger vtree.Trigger, prevDeps []any, hasPrev bool) (run bool, nextDeps []any) {
	switch trigger.Kind {
	case vtree.TriggerOnMount:
		return !hasPrev, nil
	case vtree.TriggerOnUpdate:
		return true, nil
	case vtree.TriggerWithDeps:
		if len(trigger.Deps) == 0 {
			// WithDeps([]) behaves as OnMount.
			return !hasPrev, trigger.Deps
		}
		if !hasPrev {
			return true, trigger.Deps
		}
		return compareDeps(prevDeps, trigger.Deps), trigger.Deps
	default:
		return true, nil
	}
}
