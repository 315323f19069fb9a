// Package element provides the immutable virtual-tree node variants
// and their pure constructors. Elements
// are built by callers and component functions; they live only for the
// duration of one reconciliation pass.
package element

import (
	"strings"

	"github.com/orbitkit/orbit/rcontext"
)

// Element is the common interface for the five virtual-node variants.
type Element interface {
	isElement()
}

// ComponentFunc is the signature of a functional component:
// (Context, Props) -> (Context, list<Element>). Props is an opaque,
// type-erased carrier — components type-assert it back to their own
// prop struct, a single chokepoint for dynamic Props maps.
type ComponentFunc func(ctx *rcontext.Context, props any) (*rcontext.Context, []Element)

// ElementNode is a tagged DOM-shaped node: a tag name, an optional key,
// a list of attributes, and children.
type ElementNode struct {
	Tag        string
	Key        string
	HasKey     bool
	Attributes []Attribute
	Children   []Element
}

func (ElementNode) isElement() {}

// ComponentNode wraps a functional component and the props to invoke it
// with.
type ComponentNode struct {
	FunctionalComponent ComponentFunc
	Props                any
	Key                  string
	HasKey               bool
}

func (ComponentNode) isElement() {}

// FragmentNode groups children without introducing a wrapper element.
type FragmentNode struct {
	Key      string
	HasKey   bool
	Children []Element
}

func (FragmentNode) isElement() {}

// ProviderNode pushes a scoped (key, value) binding visible to Child's
// descendants during reconciliation.
type ProviderNode struct {
	Key   string
	Value any
	Child Element
}

func (ProviderNode) isElement() {}

// TextNode is a leaf text value.
type TextNode struct {
	Text string
}

func (TextNode) isElement() {}

// Attribute is the common interface for the four attribute variants.
type Attribute interface {
	isAttribute()
}

// StaticAttribute is a plain name/value attribute.
type StaticAttribute struct {
	Name  string
	Value string
}

func (StaticAttribute) isAttribute() {}

// EventHandlerAttribute carries an IdentifiableHandler: a stable id
// paired with the closure produced by this render.
type EventHandlerAttribute struct {
	Kind    string
	Handler rcontext.IdentifiableHandler
}

func (EventHandlerAttribute) isAttribute() {}

// ClientHookAttribute binds a named client-side behavior to a hook id.
type ClientHookAttribute struct {
	HookID string
	Name   string
}

func (ClientHookAttribute) isAttribute() {}

// KeyAttribute sets the enclosing node's reconciliation key. It is
// lifted onto the node during construction (Key/HasKey fields) rather
// than retained as an attribute.
type KeyAttribute struct {
	Value string
}

func (KeyAttribute) isAttribute() {}

// El builds an ElementNode, lifting any KeyAttribute found among attrs
// onto the node's Key field.
func El(tag string, attrs []Attribute, children ...Element) ElementNode {
	n := ElementNode{Tag: tag, Children: children}
	kept := attrs[:0:0]
	for _, a := range attrs {
		if k, ok := a.(KeyAttribute); ok {
			n.Key = k.Value
			n.HasKey = true
			continue
		}
		kept = append(kept, a)
	}
	n.Attributes = kept
	return n
}

// Text builds a TextNode.
func Text(s string) TextNode {
	return TextNode{Text: s}
}

// Component builds a ComponentNode, lifting a key out of opts if one is
// supplied via WithKey.
func Component(fn ComponentFunc, props any, opts ...NodeOption) ComponentNode {
	n := ComponentNode{FunctionalComponent: fn, Props: props}
	for _, o := range opts {
		o(&n.Key, &n.HasKey)
	}
	return n
}

// NodeOption configures optional fields (currently just the key) on
// constructors that don't take an attribute list, such as Component and
// Fragment.
type NodeOption func(key *string, hasKey *bool)

// WithKey attaches a reconciliation key.
func WithKey(key string) NodeOption {
	return func(k *string, has *bool) {
		*k = key
		*has = true
	}
}

// Fragment builds a FragmentNode.
func Fragment(children []Element, opts ...NodeOption) FragmentNode {
	n := FragmentNode{Children: children}
	for _, o := range opts {
		o(&n.Key, &n.HasKey)
	}
	return n
}

// Provider builds a ProviderNode.
func Provider(key string, value any, child Element) ProviderNode {
	return ProviderNode{Key: key, Value: value, Child: child}
}

// Classes composes a space-joined class string from a list of optional
// class names, dropping absent (nil) entries. Entries pointing at an
// empty string are dropped as well, so neither adds a separator.
func Classes(parts ...*string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != nil && *p != "" {
			kept = append(kept, *p)
		}
	}
	return strings.Join(kept, " ")
}

// Some is a convenience constructor for an option<string> used with
// Classes.
func Some(s string) *string { return &s }
