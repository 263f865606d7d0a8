package vdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/vreconcile/internal/errors"
)

// Construction errors. Returned errors match these under errors.Is.
var (
	ErrInvalidTag   = errors.New("E101")
	ErrInvalidHook  = errors.New("E102")
	ErrUnsupported  = errors.New("E103")
	ErrNilComponent = errors.New("E104")
)

// Hook property names. Both spellings are accepted.
const (
	hookMount   = "mount"
	hookUnmount = "unmount"
	hookUpdate  = "update"
)

var hookNames = map[string]string{
	"mount":     hookMount,
	"onMount":   hookMount,
	"unmount":   hookUnmount,
	"onUnmount": hookUnmount,
	"update":    hookUpdate,
	"onUpdate":  hookUpdate,
}

// Create builds a node from a tag, a property bag and children.
//
// tag is a string element name, a ComponentFunc (or a plain
// func(Props, *Instance) *VNode), or nil for a fragment. Lifecycle hooks and
// "key" are pulled out of props; the rest become the node's Props.
//
// A component function is invoked once, synchronously, before Create returns.
// A panic inside it propagates to the caller.
func Create(tag any, props Props, children ...any) (*VNode, error) {
	attrs, hooks, key, err := splitProps(props)
	if err != nil {
		return nil, err
	}

	var node *VNode
	switch t := tag.(type) {
	case nil:
		node = newNode(KindFragment)
	case string:
		if t == "" {
			return nil, errors.New("E101").WithDetail("empty tag name")
		}
		node = newNode(KindElement)
		node.Tag = t
	case ComponentFunc:
		return createComponent(t, attrs, hooks, key, children)
	case func(Props, *Instance) *VNode:
		return createComponent(t, attrs, hooks, key, children)
	default:
		return nil, errors.New("E101").WithDetailf("tag has type %T", tag)
	}

	node.Props = attrs
	node.Hooks = hooks
	node.Key = key
	node.Children, err = normalizeChildren(children)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// H is like Create but panics on a construction error.
func H(tag any, props Props, children ...any) *VNode {
	node, err := Create(tag, props, children...)
	if err != nil {
		panic(err)
	}
	return node
}

// Comp creates a component node. It panics on a construction error.
func Comp(fn ComponentFunc, props Props, children ...any) *VNode {
	return H(fn, props, children...)
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return H(nil, nil, children...)
}

func createComponent(fn ComponentFunc, attrs Props, hooks Lifecycles, key string, children []any) (*VNode, error) {
	node := newNode(KindComponent)
	node.Comp = fn
	node.Props = attrs
	node.Hooks = hooks
	node.Key = key

	inst := &Instance{fn: fn, node: node, props: attrs, children: children}
	node.Instance = inst

	rendered, err := inst.render(attrs)
	if err != nil {
		return nil, err
	}
	node.Children = []*VNode{rendered}
	inst.rendered = rendered
	return node, nil
}

// componentProps merges the explicit children argument into a copy of props.
// An explicit argument wins over a "children" prop. Several arguments are
// passed as one []any.
func componentProps(props Props, children []any) Props {
	merged := make(Props, len(props)+1)
	for k, v := range props {
		merged[k] = v
	}
	switch len(children) {
	case 0:
	case 1:
		if children[0] != nil {
			merged["children"] = children[0]
		}
	default:
		merged["children"] = children
	}
	return merged
}

// splitProps separates hooks and the key from ordinary attributes.
func splitProps(props Props) (Props, Lifecycles, string, error) {
	attrs := make(Props, len(props))
	var hooks Lifecycles
	var key string

	for name, value := range props {
		if name == "key" {
			key = keyString(value)
			continue
		}
		hook, ok := hookNames[name]
		if !ok {
			attrs[name] = value
			continue
		}
		if value == nil {
			continue
		}
		if err := setHook(&hooks, hook, value); err != nil {
			return nil, Lifecycles{}, "", err
		}
	}
	return attrs, hooks, key, nil
}

func setHook(hooks *Lifecycles, name string, value any) error {
	switch name {
	case hookMount:
		switch fn := value.(type) {
		case MountHook:
			hooks.Mount = fn
		case func(Props):
			hooks.Mount = fn
		case func():
			hooks.Mount = func(Props) { fn() }
		default:
			return errors.New("E102").WithDetailf("mount hook has type %T", value)
		}
	case hookUnmount:
		switch fn := value.(type) {
		case UnmountHook:
			hooks.Unmount = fn
		case func():
			hooks.Unmount = fn
		default:
			return errors.New("E102").WithDetailf("unmount hook has type %T", value)
		}
	case hookUpdate:
		switch fn := value.(type) {
		case UpdateHook:
			hooks.Update = fn
		case func(prev, next Props):
			hooks.Update = fn
		case func():
			hooks.Update = func(Props, Props) { fn() }
		default:
			return errors.New("E102").WithDetailf("update hook has type %T", value)
		}
	}
	return nil
}

func keyString(v any) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(v)
	}
}

func normalizeChildren(children []any) ([]*VNode, error) {
	out := make([]*VNode, 0, len(children))
	for i, child := range children {
		node, err := normalizeChild(child, i)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// normalizeChild turns one child argument into a node keyed by its position
// unless it already carries a key.
func normalizeChild(child any, index int) (*VNode, error) {
	var node *VNode
	switch v := child.(type) {
	case nil:
		node = Empty()
	case bool:
		node = Empty()
	case string:
		if v == "" {
			node = Empty()
		} else {
			node = Text(v)
		}
	case *VNode:
		if v == nil {
			node = Empty()
		} else {
			node = v
		}
	case []*VNode:
		items := make([]any, len(v))
		for i, c := range v {
			items[i] = c
		}
		return listFragment(items, index)
	case []any:
		return listFragment(v, index)
	case []string:
		items := make([]any, len(v))
		for i, c := range v {
			items[i] = c
		}
		return listFragment(items, index)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		node = Text(fmt.Sprint(v))
	case fmt.Stringer:
		node = Text(v.String())
	default:
		return nil, errors.New("E103").WithDetailf("child %d has type %T", index, child)
	}
	return place(node, index), nil
}

// place claims node for one child slot. A node that already fills another
// slot is cloned, since each slot needs its own host nodes.
func place(node *VNode, index int) *VNode {
	if node.placed {
		node = node.clone()
		if node.autoKey {
			node.Key = ""
			node.autoKey = false
		}
	}
	if node.Key == "" {
		node.Key = positionKey(index)
		node.autoKey = true
	}
	node.placed = true
	return node
}

func listFragment(items []any, index int) (*VNode, error) {
	children, err := normalizeChildren(items)
	if err != nil {
		return nil, err
	}
	node := newNode(KindFragment)
	node.Children = children
	node.Key = positionKey(index)
	node.autoKey = true
	node.placed = true
	return node, nil
}
