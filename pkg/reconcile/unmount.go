package reconcile

import (
	"github.com/vango-dev/vreconcile/pkg/host"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// remove fires the unmount hooks of node's subtree and then detaches its
// host nodes from parent.
func (e *Engine) remove(parent host.Node, node *vdom.VNode) error {
	hosts := e.hostNodes(node)
	e.unmountTree(node)
	for _, n := range hosts {
		if err := e.removeChild(parent, n); err != nil {
			return err
		}
	}
	return nil
}

// unmountTree fires unmount hooks children first, retires component
// instances and drops the subtree's table entries.
func (e *Engine) unmountTree(node *vdom.VNode) {
	if node == nil {
		return
	}
	for _, c := range node.Children {
		e.unmountTree(c)
	}
	if node.Hooks.Unmount != nil {
		node.Hooks.Unmount()
	}
	if node.Instance != nil {
		node.Instance.Retire()
	}
	e.forget(node)
	e.pass.Unmounted++
}
