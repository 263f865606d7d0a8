package vdom

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindFragment  VKind = iota // Grouping without a host node
	KindText                   // Plain text node
	KindElement                // <div>, <button>, etc.
	KindComponent              // Component function plus its rendered subtree
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindFragment:
		return "Fragment"
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// NodeID identifies a VNode for the lifetime of the process.
// The reconciler keys its host reference table by NodeID.
type NodeID uint64

var lastID atomic.Uint64

func nextID() NodeID {
	return NodeID(lastID.Add(1))
}

// VNode is the virtual DOM node.
//
// Which fields are meaningful depends on Kind:
//
//	KindFragment:  Children
//	KindText:      Text
//	KindElement:   Tag, Props, Children
//	KindComponent: Comp, Props, Children (exactly one), Instance
type VNode struct {
	ID       NodeID        // Stable identity, assigned by the factory
	Kind     VKind         // Node type
	Tag      string        // Element tag name (e.g., "div")
	Props    Props         // Attributes and event handlers
	Children []*VNode      // Child nodes, in display order
	Key      string        // Reconciliation key
	Text     string        // For KindText
	Comp     ComponentFunc // For KindComponent
	Hooks    Lifecycles    // mount / unmount / update callbacks
	Instance *Instance     // For KindComponent

	placed  bool // already a child of some node
	autoKey bool // Key was assigned from the position
}

// Props holds attributes and event handlers.
type Props map[string]any

// Keys returns the property names in sorted order.
func (p Props) Keys() []string {
	return sortedKeys(p)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lifecycles holds the hooks extracted from a property bag.
type Lifecycles struct {
	Mount   MountHook
	Unmount UnmountHook
	Update  UpdateHook
}

// MountHook runs once the node's host content is attached.
type MountHook func(props Props)

// UnmountHook runs before the node's host content is detached.
type UnmountHook func()

// UpdateHook runs after the node was patched.
type UpdateHook func(prev, next Props)

// ComponentFunc renders a subtree from props. The instance is the handle the
// component uses to re-render itself later.
type ComponentFunc func(props Props, self *Instance) *VNode

// IsFragment reports whether the node is a fragment.
func (v *VNode) IsFragment() bool {
	return v != nil && v.Kind == KindFragment
}

// IsEmpty reports whether the node is a placeholder: a fragment with no children.
func (v *VNode) IsEmpty() bool {
	return v == nil || (v.Kind == KindFragment && len(v.Children) == 0)
}

// Child returns the rendered subtree of a component node.
func (v *VNode) Child() *VNode {
	if v == nil || len(v.Children) == 0 {
		return nil
	}
	return v.Children[0]
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// positionKey is the key a child receives when it has none of its own.
func positionKey(index int) string {
	return strconv.Itoa(index)
}

// clone copies node's subtree with fresh IDs. Keys are kept. A component
// clone gets its own unmounted instance over the cloned rendered subtree.
func (v *VNode) clone() *VNode {
	c := *v
	c.ID = nextID()
	c.placed = false
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			cc := child.clone()
			cc.placed = true
			c.Children[i] = cc
		}
	}
	if v.Instance != nil {
		inst := &Instance{
			fn:       v.Instance.fn,
			node:     &c,
			props:    v.Instance.props,
			children: v.Instance.children,
		}
		if len(c.Children) == 1 {
			inst.rendered = c.Children[0]
		}
		c.Instance = inst
	}
	return &c
}

func newNode(kind VKind) *VNode {
	return &VNode{ID: nextID(), Kind: kind}
}

// Text creates a text node.
func Text(content string) *VNode {
	n := newNode(KindText)
	n.Text = content
	return n
}

// Empty creates a placeholder fragment with no children.
func Empty() *VNode {
	n := newNode(KindFragment)
	n.Children = []*VNode{}
	return n
}
