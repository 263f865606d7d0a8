// Package vdom provides the virtual node model and the node factory.
//
// A VNode is an immutable description of a piece of UI. It is one of four
// kinds: a fragment (transparent grouping, no host node of its own), a text
// node, an element, or a component (a function plus the single subtree it
// rendered).
//
// # Node factory
//
// Create builds a node from a tag, a property bag and children:
//
//	list, err := vdom.Create("ul", vdom.Props{"className": "todo"},
//	    vdom.H("li", vdom.Props{"key": "a"}, "Buy milk"),
//	    vdom.H("li", vdom.Props{"key": "b"}, "Walk dog"),
//	)
//
// Children are normalized: nil, booleans and "" become empty fragments,
// slices become fragments, numbers and strings become text nodes. Every
// child without an explicit key is keyed by its position.
//
// The props "mount", "unmount" and "update" (or "onMount", "onUnmount",
// "onUpdate") are lifecycle hooks and land in VNode.Hooks; "key" lands in
// VNode.Key. Neither reaches the host.
//
// # Element API
//
// Elements can also be created with variadic builders:
//
//	Div(ClassName("card"), Key("c1"),
//	    H1("Title"),
//	    Button(OnClick(handler), "Save"),
//	)
//
// # Components
//
// A ComponentFunc is invoked eagerly by the factory and receives its
// Instance, a handle it may keep to re-render itself through Instance.Update
// once the tree is mounted by a reconciler.
package vdom
