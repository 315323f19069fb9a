package runtime

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/orbitkit/orbit/element"
	"github.com/orbitkit/orbit/hook"
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// recordingUpdater collects every RenderedUpdate sent to it and signals
// a channel after each Send, so tests can wait for a specific number of
// renders without sleeping arbitrarily.
type recordingUpdater struct {
	mu      sync.Mutex
	updates []RenderedUpdate
	notify  chan struct{}
}

func newRecordingUpdater() *recordingUpdater {
	return &recordingUpdater{notify: make(chan struct{}, 64)}
}

func (u *recordingUpdater) Send(update RenderedUpdate) error {
	u.mu.Lock()
	u.updates = append(u.updates, update)
	u.mu.Unlock()
	u.notify <- struct{}{}
	return nil
}

func (u *recordingUpdater) waitForN(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		u.mu.Lock()
		got := len(u.updates)
		u.mu.Unlock()
		if got >= n {
			return
		}
		select {
		case <-u.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %d renders, got %d", n, got)
		}
	}
}

func TestStartSendsFullUpdateThenPatchOnStateChange(t *testing.T) {
	updater := newRecordingUpdater()
	var setter hook.Setter[int]

	view := element.Component(func(ctx *rcontext.Context, props any) (*rcontext.Context, []element.Element) {
		n, s := hook.State(ctx, 0)
		setter = s
		return ctx, []element.Element{element.Text(string(rune('0' + n)))}
	}, nil)

	h := Start(view, updater, nil)
	defer h.Stop()

	updater.waitForN(t, 1)
	updater.mu.Lock()
	_, isFull := updater.updates[0].(FullUpdate)
	updater.mu.Unlock()
	if !isFull {
		t.Fatalf("expected the first update to be a FullUpdate")
	}

	setter(1)
	updater.waitForN(t, 2)
	updater.mu.Lock()
	_, isPatch := updater.updates[1].(PatchUpdate)
	updater.mu.Unlock()
	if !isPatch {
		t.Fatalf("expected the second update to be a PatchUpdate")
	}
}

func TestProcessEventImmediateDispatchesHandler(t *testing.T) {
	updater := newRecordingUpdater()
	called := make(chan any, 1)

	view := element.Component(func(ctx *rcontext.Context, props any) (*rcontext.Context, []element.Element) {
		h := hook.Handler(ctx, func(payload any) { called <- payload })
		return ctx, []element.Element{
			element.El("button", []element.Attribute{element.EventHandlerAttribute{Kind: "click", Handler: h}}),
		}
	}, nil)

	h := Start(view, updater, nil)
	defer h.Stop()
	updater.waitForN(t, 1)

	tree, ok := h.GetReconciled()
	if !ok {
		t.Fatalf("expected a reconciled tree")
	}
	el := tree.(*vtree.ReconciledElement)
	handlerID := el.Attrs[0].(vtree.EventHandler).ID

	if err := h.ProcessEventImmediate(handlerID, "payload"); err != nil {
		t.Fatalf("ProcessEventImmediate: %v", err)
	}
	select {
	case got := <-called:
		if got != "payload" {
			t.Fatalf("handler payload = %v, want payload", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestProcessEventImmediateMissReturnsErrHandlerNotFound(t *testing.T) {
	updater := newRecordingUpdater()
	view := element.Text("leaf")
	h := Start(view, updater, nil)
	defer h.Stop()
	updater.waitForN(t, 1)

	if err := h.ProcessEventImmediate("unknown", nil); err != ErrHandlerNotFound {
		t.Fatalf("err = %v, want ErrHandlerNotFound", err)
	}
}

func TestStopRunsEffectCleanupExactlyOnce(t *testing.T) {
	updater := newRecordingUpdater()
	cleanups := 0
	view := element.Component(func(ctx *rcontext.Context, props any) (*rcontext.Context, []element.Element) {
		hook.Effect(ctx, func() func() {
			return func() { cleanups++ }
		}, vtree.OnMount())
		return ctx, []element.Element{element.Text("x")}
	}, nil)

	h := Start(view, updater, nil)
	updater.waitForN(t, 1)
	h.Stop()

	deadline := time.After(time.Second)
	for cleanups == 0 {
		select {
		case <-deadline:
			t.Fatalf("expected cleanup to run on shutdown")
		case <-time.After(time.Millisecond):
		}
	}
	if cleanups != 1 {
		t.Fatalf("cleanups = %d, want 1", cleanups)
	}

	if err := h.ProcessEventImmediate("x", nil); err != ErrStopped {
		t.Fatalf("expected ErrStopped after Stop, got %v", err)
	}
}

func TestDevModeHookOrderDriftShutsDownActorCleanly(t *testing.T) {
	updater := newRecordingUpdater()
	var setter hook.Setter[bool]

	view := element.Component(func(ctx *rcontext.Context, props any) (*rcontext.Context, []element.Element) {
		drift, s := hook.State(ctx, false)
		setter = s
		if drift {
			hook.Effect(ctx, func() func() { return nil }, vtree.OnMount())
		} else {
			hook.State(ctx, 0)
		}
		return ctx, []element.Element{element.Text("x")}
	}, nil)

	h := Start(view, updater, nil, WithDevMode(true))
	updater.waitForN(t, 1)

	setter(true)

	stopped := false
	for i := 0; i < 1000 && !stopped; i++ {
		select {
		case <-h.stopped:
			stopped = true
		case <-time.After(time.Millisecond):
		}
	}
	if !stopped {
		t.Fatalf("expected hook-order drift in dev mode to shut the actor down")
	}
	if err := h.ProcessEventImmediate("x", nil); err != ErrStopped {
		t.Fatalf("err = %v, want ErrStopped after a fatal shutdown", err)
	}
}

func TestPatchHistorySinceReplaysUpdatesAfterSeq(t *testing.T) {
	updater := newRecordingUpdater()
	var setter hook.Setter[int]

	view := element.Component(func(ctx *rcontext.Context, props any) (*rcontext.Context, []element.Element) {
		n, s := hook.State(ctx, 0)
		setter = s
		return ctx, []element.Element{element.Text(strconv.Itoa(n))}
	}, nil)

	h := Start(view, updater, nil, WithPatchHistory(8))
	defer h.Stop()
	updater.waitForN(t, 1)

	setter(1)
	updater.waitForN(t, 2)
	setter(2)
	updater.waitForN(t, 3)

	entries := h.PatchHistorySince(1)
	if len(entries) != 2 {
		t.Fatalf("PatchHistorySince(1) returned %d entries, want 2", len(entries))
	}
	if entries[0].Seq != 2 || entries[1].Seq != 3 {
		t.Fatalf("entries out of order: %+v", entries)
	}
	for _, e := range entries {
		if _, ok := e.Update.(PatchUpdate); !ok {
			t.Fatalf("entry seq %d = %#v, want a PatchUpdate", e.Seq, e.Update)
		}
	}

	if h.PatchHistorySince(3) != nil && len(h.PatchHistorySince(3)) != 0 {
		t.Fatalf("expected no entries after the latest seq")
	}
}

func TestPatchHistoryDisabledByDefault(t *testing.T) {
	updater := newRecordingUpdater()
	h := Start(element.Text("x"), updater, nil)
	defer h.Stop()
	updater.waitForN(t, 1)

	if entries := h.PatchHistorySince(0); entries != nil {
		t.Fatalf("expected nil history when WithPatchHistory was not set, got %#v", entries)
	}
}

func TestGetReconciledNilBeforeFirstRenderIsNeverObservedExternally(t *testing.T) {
	// GetReconciled always blocks until at least one render has been
	// processed ahead of it in the mailbox, since Start's loop runs the
	// first render before entering the message-handling range.
	updater := newRecordingUpdater()
	h := Start(element.Text("x"), updater, nil)
	defer h.Stop()

	tree, ok := h.GetReconciled()
	if !ok || tree == nil {
		t.Fatalf("expected a non-nil reconciled tree immediately after Start")
	}
}
