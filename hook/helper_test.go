package hook

import (
	"github.com/orbitkit/orbit/rcontext"
	"github.com/orbitkit/orbit/vtree"
)

// newTestContext builds a Context with inert scheduling callbacks,
// suitable for exercising a single hook call site without a runtime.
func newTestContext() *rcontext.Context {
	return rcontext.New(nil, nil, nil)
}

// render runs body as one simulated component render against prevHooks
// (nil for a first render), returning the materialized HookMap the way
// reconcileComponent would.
func render(ctx *rcontext.Context, prevHooks *vtree.HookMap, body func()) *vtree.HookMap {
	cursor := rcontext.NewHookCursor(prevHooks)
	saved := ctx.EnterComponent(cursor)
	body()
	hooks := ctx.FinishComponent()
	ctx.LeaveComponent(saved)
	return hooks
}
