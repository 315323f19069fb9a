package render

import "github.com/orbitkit/orbit/vtree"

// Adapter is the renderer interface: one operation, render(reconciled)
// -> T, with T left to the adapter.
type Adapter interface {
	Render(n vtree.Node) (any, error)
}

// IdentityAdapter returns the reconciled tree unchanged.
type IdentityAdapter struct{}

func (IdentityAdapter) Render(n vtree.Node) (any, error) {
	return n, nil
}
