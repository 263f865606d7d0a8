package reconcile

import (
	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/host"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// mount materializes node into container before the anchor (append when
// nil) and returns node's host reference.
func (e *Engine) mount(node *vdom.VNode, container, before host.Node) (host.Node, error) {
	switch node.Kind {
	case vdom.KindFragment:
		e.parents[node.ID] = container
		e.pass.Mounted++
		e.own(node)
		for _, child := range node.Children {
			if _, err := e.mount(child, container, before); err != nil {
				return nil, err
			}
		}
		return before, nil

	case vdom.KindComponent:
		if len(node.Children) != 1 || node.Children[0] == nil {
			return nil, errors.New("E302").WithDetailf("component node %d has %d children", node.ID, len(node.Children))
		}
		e.parents[node.ID] = container
		e.pass.Mounted++
		e.own(node)
		if inst := node.Instance; inst != nil {
			inst.Bind(e, container)
		}
		if node.Hooks.Mount != nil {
			node.Hooks.Mount(node.Props)
		}
		return e.mount(node.Children[0], container, before)

	case vdom.KindText:
		n, err := e.createText(node.Text)
		if err != nil {
			return nil, err
		}
		return e.attach(node, n, container, before)

	default:
		n, err := e.createElement(node.Tag)
		if err != nil {
			return nil, err
		}
		for _, key := range node.Props.Keys() {
			if err := e.applyAttribute(n, key, node.Props[key]); err != nil {
				return nil, err
			}
		}
		e.own(node)
		for _, child := range node.Children {
			if _, err := e.mount(child, n, nil); err != nil {
				return nil, err
			}
		}
		return e.attach(node, n, container, before)
	}
}

// attach records n as node's host node, inserts it and fires the mount
// hook.
func (e *Engine) attach(node *vdom.VNode, n, container, before host.Node) (host.Node, error) {
	e.refs[node.ID] = n
	e.parents[node.ID] = container
	if err := e.place(container, n, before); err != nil {
		return nil, err
	}
	e.pass.Mounted++
	if node.Hooks.Mount != nil {
		node.Hooks.Mount(node.Props)
	}
	return n, nil
}
