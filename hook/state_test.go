package hook

import (
	"testing"

	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

func TestStateInitialValue(t *testing.T) {
	ctx := newTestContext()
	var got string
	render(ctx, nil, func() {
		got, _ = State(ctx, "hello")
	})
	if got != "hello" {
		t.Fatalf("State initial = %q, want %q", got, "hello")
	}
}

func TestStateIDStableAcrossRenders(t *testing.T) {
	ctx := newTestContext()

	hooks := render(ctx, nil, func() {
		State(ctx, 0)
	})
	first, _ := hooks.Get(0)

	hooks2 := render(ctx, hooks, func() {
		State(ctx, 0)
	})
	second, _ := hooks2.Get(0)

	if first.HookID() != second.HookID() {
		t.Fatalf("hook id changed across renders: %v != %v", first.HookID(), second.HookID())
	}
}

// TestStateSetterAppliesViaUpdateHook verifies a setter posts a mutation
// that, applied the way a runtime applies it (fn against the live hook
// object), changes the stored value, and also schedules a re-render.
func TestStateSetterAppliesViaUpdateHook(t *testing.T) {
	var gotID ident.ID
	var gotFn func(vtree.Hook) vtree.Hook
	renderScheduled := false

	ctx := rcontext.New(
		func() { renderScheduled = true },
		func(id ident.ID, fn func(vtree.Hook) vtree.Hook) { gotID, gotFn = id, fn },
		nil,
	)

	hooks := render(ctx, nil, func() {
		_, setter := State(ctx, "a")
		setter("b")
	})
	h, ok := hooks.Get(0)
	if !ok {
		t.Fatalf("expected a hook at slot 0")
	}
	sh := h.(*vtree.StateHook)

	if !renderScheduled {
		t.Fatalf("expected setter to schedule a render update")
	}
	if gotID != sh.ID {
		t.Fatalf("UpdateHook called with id %v, want %v", gotID, sh.ID)
	}
	gotFn(sh)
	if sh.Value != "b" {
		t.Fatalf("State value after applying setter mutation = %v, want %q", sh.Value, "b")
	}
}
