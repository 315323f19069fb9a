package hook

import (
	"errors"
	"time"
)

// ErrReducerTimeout is returned by reducerActor.Get when the actor does
// not reply within the call timeout.
var ErrReducerTimeout = errors.New("orbit: reducer Get timed out")

// DefaultCallTimeout bounds how long a Reducer hook's Get waits for the
// actor's reply.
var DefaultCallTimeout = 2 * time.Second

type getMsg struct {
	reply chan any
}

type dispatchMsg struct {
	reduce func(model, msg any) any
	msg    any
}

// reducerActor is an isolated goroutine holding a reducer's model, with
// its own mailbox: a Reducer hook runs in an isolated per-hook task
// whose only external interaction is reply-with-model (Get) and
// fire-and-forget Dispatch, scaled down from a goroutine-per-concern
// style to a single-purpose actor.
type reducerActor struct {
	mailbox chan any // getMsg | dispatchMsg | shutdownMsg
	done    chan struct{}
}

type shutdownMsg struct{}

// newReducerActor spawns the actor with the given initial model and
// starts its mailbox loop.
func newReducerActor(initial any) *reducerActor {
	a := &reducerActor{
		mailbox: make(chan any, 32),
		done:    make(chan struct{}),
	}
	go a.loop(initial)
	return a
}

func (a *reducerActor) loop(model any) {
	defer close(a.done)
	for m := range a.mailbox {
		switch msg := m.(type) {
		case getMsg:
			msg.reply <- model
		case dispatchMsg:
			model = msg.reduce(model, msg.msg)
		case shutdownMsg:
			return
		}
	}
}

// Get synchronously fetches the current model, bounded by
// DefaultCallTimeout. A second consecutive timeout is returned to the
// caller as ErrReducerTimeout rather than swallowed.
func (a *reducerActor) Get() (any, error) {
	v, err := a.tryGet(DefaultCallTimeout)
	if err != nil {
		// One retry on a timed-out Get before giving up.
		v, err = a.tryGet(DefaultCallTimeout)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (a *reducerActor) tryGet(timeout time.Duration) (any, error) {
	reply := make(chan any, 1)
	select {
	case a.mailbox <- getMsg{reply: reply}:
	case <-time.After(timeout):
		return nil, ErrReducerTimeout
	}
	select {
	case v := <-reply:
		return v, nil
	case <-time.After(timeout):
		return nil, ErrReducerTimeout
	}
}

// Dispatch sends a fire-and-forget reduce application to the actor.
func (a *reducerActor) Dispatch(reduce func(model, msg any) any, msg any) {
	select {
	case a.mailbox <- dispatchMsg{reduce: reduce, msg: msg}:
	case <-a.done:
	}
}

// Shutdown is a terminal message; it is idempotent.
func (a *reducerActor) Shutdown() {
	select {
	case a.mailbox <- shutdownMsg{}:
	case <-a.done:
	}
}
