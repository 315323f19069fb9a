package hook

import (
	"errors"
	"testing"
	"time"

	"github.com/orbitkit/orbit/vtree"
)

type counterMsg int

func reduceCounter(model int, msg counterMsg) int {
	return model + int(msg)
}

func TestReducerDispatchUpdatesModel(t *testing.T) {
	ctx := newTestContext()

	hooks := render(ctx, nil, func() {
		model, dispatch := Reducer(ctx, 0, reduceCounter)
		if model != 0 {
			t.Fatalf("initial model = %d, want 0", model)
		}
		dispatch(counterMsg(3))
		dispatch(counterMsg(4))
	})

	h, _ := hooks.Get(0)
	rh := h.(*vtree.ReducerHook)

	// Dispatch is fire-and-forget through the actor's own mailbox; give
	// it a moment to apply before reading back via Get.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		got, err := rh.Handle.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if v, _ := got.(int); v == 7 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected model to settle at 7")
}

func TestReducerHandleSurvivesAcrossRenders(t *testing.T) {
	ctx := newTestContext()

	hooks := render(ctx, nil, func() {
		_, dispatch := Reducer(ctx, 0, reduceCounter)
		dispatch(counterMsg(1))
	})
	h1, _ := hooks.Get(0)

	hooks2 := render(ctx, hooks, func() {
		Reducer(ctx, 0, reduceCounter)
	})
	h2, _ := hooks2.Get(0)

	if h1.HookID() != h2.HookID() {
		t.Fatalf("reducer hook id changed across renders")
	}
	rh2 := h2.(*vtree.ReducerHook)
	if rh2.Handle != h1.(*vtree.ReducerHook).Handle {
		t.Fatalf("expected the same actor handle to be retained across renders")
	}
}

func TestReducerCleanupShutsDownActor(t *testing.T) {
	ctx := newTestContext()
	hooks := render(ctx, nil, func() {
		Reducer(ctx, 0, reduceCounter)
	})
	h, _ := hooks.Get(0)
	rh := h.(*vtree.ReducerHook)

	rh.Cleanup()

	a := rh.Handle.(*reducerActor)
	select {
	case <-a.done:
	case <-time.After(time.Second):
		t.Fatalf("expected actor goroutine to exit after Cleanup")
	}
}

// TestReducerActorGetTimesOutAfterRetry forces both Get attempts to miss
// their deadline by keeping the actor's mailbox busy on a blocked
// dispatch, and checks the retry gives up with ErrReducerTimeout rather
// than a bare nil.
func TestReducerActorGetTimesOutAfterRetry(t *testing.T) {
	orig := DefaultCallTimeout
	DefaultCallTimeout = 20 * time.Millisecond
	defer func() { DefaultCallTimeout = orig }()

	a := newReducerActor(0)
	defer a.Shutdown()

	block := make(chan struct{})
	a.Dispatch(func(model, msg any) any {
		<-block
		return model
	}, nil)

	_, err := a.Get()
	close(block)

	if !errors.Is(err, ErrReducerTimeout) {
		t.Fatalf("Get err = %v, want ErrReducerTimeout", err)
	}
}

// TestReducerSurfacesTimeoutToObserver exercises the Reducer hook's own
// call site: a Get that exhausts its retry must log and call the
// Context's reducer-timeout observer (wired by the runtime to its
// Prometheus counter), returning the model's zero value rather than
// the stale or wrong one.
func TestReducerSurfacesTimeoutToObserver(t *testing.T) {
	orig := DefaultCallTimeout
	DefaultCallTimeout = 20 * time.Millisecond
	defer func() { DefaultCallTimeout = orig }()

	ctx := newTestContext()
	var timeouts int
	ctx.SetObserveReducerTimeout(func() { timeouts++ })

	hooks := render(ctx, nil, func() {
		Reducer(ctx, 0, reduceCounter)
	})
	h, _ := hooks.Get(0)
	rh := h.(*vtree.ReducerHook)
	defer rh.Cleanup()

	block := make(chan struct{})
	rh.Handle.Dispatch(func(model, msg any) any {
		<-block
		return model
	}, nil)

	render(ctx, hooks, func() {
		model, _ := Reducer(ctx, 0, reduceCounter)
		if model != 0 {
			t.Fatalf("expected zero-value model on timeout, got %d", model)
		}
	})
	close(block)

	if timeouts != 1 {
		t.Fatalf("observeReducerTimeout called %d times, want 1", timeouts)
	}
}
