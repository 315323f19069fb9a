package hook

import (
	"testing"

	"github.com/orbitkit/orbit/vtree"
)

func TestMemoRecomputesOnlyWhenDepsChange(t *testing.T) {
	ctx := newTestContext()
	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	var hooks *vtree.HookMap
	hooks = render(ctx, nil, func() {
		Memo(ctx, compute, vtree.WithDeps(1))
	})
	if calls != 1 {
		t.Fatalf("expected 1 call on mount, got %d", calls)
	}

	hooks = render(ctx, hooks, func() {
		Memo(ctx, compute, vtree.WithDeps(1))
	})
	if calls != 1 {
		t.Fatalf("expected memo to skip recompute when deps unchanged, calls=%d", calls)
	}

	var v int
	render(ctx, hooks, func() {
		v = Memo(ctx, compute, vtree.WithDeps(2))
	})
	if calls != 2 || v != 2 {
		t.Fatalf("expected memo to recompute on dep change, calls=%d v=%d", calls, v)
	}
}

func TestCallbackIdentityStableWhenDepsUnchanged(t *testing.T) {
	ctx := newTestContext()

	fnA := func() int { return 1 }
	fnB := func() int { return 2 }

	var first, second func() int
	hooks := render(ctx, nil, func() {
		first = Callback(ctx, fnA, vtree.WithDeps("x"))
	})
	render(ctx, hooks, func() {
		second = Callback(ctx, fnB, vtree.WithDeps("x"))
	})

	if second() != first() {
		t.Fatalf("expected Callback to keep the original fn when deps are unchanged")
	}
}

func TestDepsArityChangePanics(t *testing.T) {
	ctx := newTestContext()
	hooks := render(ctx, nil, func() {
		Memo(ctx, func() int { return 1 }, vtree.WithDeps(1, 2))
	})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on dependency-list arity change")
		}
	}()
	render(ctx, hooks, func() {
		Memo(ctx, func() int { return 1 }, vtree.WithDeps(1))
	})
}
