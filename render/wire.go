// Package render implements the renderer adapters: a single
// render(reconciled) -> T operation with two concrete adapters,
// Identity and JSON.
package render

// Wire constants. Exact strings are
// implementation-chosen but fixed for WireVersion and must be mirrored
// by the browser client.
const (
	WireVersion          = 1
	EventAttrPrefix      = "data-orbit-on"
	ClientHookAttrPrefix = "data-orbit-hook"
	KeyAttr              = "data-orbit-key"
)
