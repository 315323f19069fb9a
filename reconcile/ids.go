package reconcile

import "github.com/orbitkit/orbit/internal/ident"

// identFromString adapts a caller-supplied hook-id string (as stored on
// element.ClientHookAttribute, which predates reconciliation) to the
// ident.ID type the reconciled tree uses internally.
func identFromString(s string) ident.ID {
	return ident.ID(s)
}
