package reconcile

import (
	"github.com/vango-dev/vreconcile/pkg/host"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// HostRef returns the host node node produced: its own for elements and
// text, its rendered subtree's for components, nil for fragments and for
// nodes this engine has not mounted.
func (e *Engine) HostRef(node *vdom.VNode) host.Node {
	for node != nil {
		switch node.Kind {
		case vdom.KindElement, vdom.KindText:
			return e.refs[node.ID]
		case vdom.KindComponent:
			node = node.Child()
		default:
			return nil
		}
	}
	return nil
}

// FirstHost returns the first host node in document order under node, or
// nil when node has no host content.
func (e *Engine) FirstHost(node *vdom.VNode) host.Node {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case vdom.KindElement, vdom.KindText:
		return e.refs[node.ID]
	case vdom.KindComponent:
		return e.FirstHost(node.Child())
	}
	for _, c := range node.Children {
		if h := e.FirstHost(c); h != nil {
			return h
		}
	}
	return nil
}

func (e *Engine) lastHost(node *vdom.VNode) host.Node {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case vdom.KindElement, vdom.KindText:
		return e.refs[node.ID]
	case vdom.KindComponent:
		return e.lastHost(node.Child())
	}
	for i := len(node.Children) - 1; i >= 0; i-- {
		if h := e.lastHost(node.Children[i]); h != nil {
			return h
		}
	}
	return nil
}

// hostNodes returns the top-level host nodes of node in document order:
// one for elements and text, all of a fragment's descendants' otherwise.
func (e *Engine) hostNodes(node *vdom.VNode) []host.Node {
	var out []host.Node
	e.collectHosts(node, &out)
	return out
}

func (e *Engine) collectHosts(node *vdom.VNode, out *[]host.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case vdom.KindElement, vdom.KindText:
		if h, ok := e.refs[node.ID]; ok {
			*out = append(*out, h)
		}
	case vdom.KindComponent:
		e.collectHosts(node.Child(), out)
	default:
		for _, c := range node.Children {
			e.collectHosts(c, out)
		}
	}
}

// tailOf returns the host node following node's content, when the adapter
// can tell.
func (e *Engine) tailOf(node *vdom.VNode) host.Node {
	sr, ok := e.adapter.(host.SiblingReader)
	if !ok {
		return nil
	}
	last := e.lastHost(node)
	if last == nil {
		return nil
	}
	return sr.NextSibling(last)
}

// adopt moves last's table entries to next. A host node is owned by one
// virtual node at a time.
func (e *Engine) adopt(parent host.Node, last, next *vdom.VNode) {
	if last.ID == next.ID {
		e.parents[next.ID] = parent
		return
	}
	if ref, ok := e.refs[last.ID]; ok {
		delete(e.refs, last.ID)
		e.refs[next.ID] = ref
	}
	delete(e.parents, last.ID)
	e.parents[next.ID] = parent
	if owner, ok := e.owners[last.ID]; ok {
		delete(e.owners, last.ID)
		e.owners[next.ID] = owner
	}
}

// own records node as the owner of its children.
func (e *Engine) own(node *vdom.VNode) {
	for _, c := range node.Children {
		if c != nil {
			e.owners[c.ID] = node
		}
	}
}

// substitute puts next in old's slot of owner's children. For a component
// owner next becomes the rendered subtree.
func (e *Engine) substitute(owner, old, next *vdom.VNode) {
	if owner == nil || old == next {
		return
	}
	if owner.Kind == vdom.KindComponent && owner.Instance != nil {
		owner.Instance.SetRendered(next)
	} else {
		for i, c := range owner.Children {
			if c == old {
				owner.Children[i] = next
			}
		}
	}
	e.owners[next.ID] = owner
}

func (e *Engine) forget(node *vdom.VNode) {
	delete(e.refs, node.ID)
	delete(e.parents, node.ID)
	delete(e.owners, node.ID)
}
