package vdom

import "github.com/vango-dev/vreconcile/internal/errors"

// Lifecycle errors returned by Instance methods.
var (
	ErrNotMounted = errors.New("E201")
	ErrUnmounted  = errors.New("E202")
)

// Patcher runs a patch pass for a component instance. The reconciler
// implements it and binds itself to every instance it mounts. prev is the
// props the component had before the call.
type Patcher interface {
	PatchInstance(inst *Instance, next *VNode, prev Props) error
}

// Instance is the live record of a component: its function, current props,
// last rendered subtree and the engine that mounted it.
//
// A component receives its Instance when it renders and may keep it to
// re-render itself later, typically from an event handler:
//
//	func Counter(props vdom.Props, self *vdom.Instance) *vdom.VNode {
//	    count := 0
//	    var view func() *vdom.VNode
//	    view = func() *vdom.VNode {
//	        return vdom.Button(vdom.OnClick(func() {
//	            count++
//	            self.Update(view())
//	        }), vdom.Textf("%d", count))
//	    }
//	    return view()
//	}
type Instance struct {
	fn        ComponentFunc
	node      *VNode
	props     Props
	children  []any
	rendered  *VNode
	patcher   Patcher
	container any
	mounted   bool
	unmounted bool
	successor *Instance
}

// Update patches the component's last rendered subtree to match next and
// records next as the rendered subtree. A nil next renders nothing. The
// props stay as they are; the component node's update hook receives them
// as both arguments.
//
// When called while the engine is in the middle of a pass (for example
// from a lifecycle hook), the update is queued and runs after that pass.
func (i *Instance) Update(next *VNode) error {
	i = i.current()
	if err := i.check(); err != nil {
		return err
	}
	if next == nil {
		next = Empty()
	}
	if next.Key == "" {
		next.Key = i.rendered.Key
	}
	return i.patcher.PatchInstance(i, next, i.props)
}

// SetProps re-invokes the component function with props and patches the
// result into place. The component node's update hook receives the old and
// new props.
func (i *Instance) SetProps(props Props) error {
	i = i.current()
	if err := i.check(); err != nil {
		return err
	}
	next, err := i.render(props)
	if err != nil {
		return err
	}
	prev := i.props
	i.props = props
	i.node.Props = props
	return i.patcher.PatchInstance(i, next, prev)
}

// Props returns the props the component was last rendered with.
func (i *Instance) Props() Props {
	return i.current().props
}

// Node returns the component node this instance belongs to.
func (i *Instance) Node() *VNode {
	return i.current().node
}

// Rendered returns the last rendered subtree.
func (i *Instance) Rendered() *VNode {
	return i.current().rendered
}

// Mounted reports whether the instance is attached to an engine.
func (i *Instance) Mounted() bool {
	c := i.current()
	return c.mounted && !c.unmounted
}

// Container returns the host container the component was mounted into.
func (i *Instance) Container() any {
	return i.current().container
}

// Bind attaches the instance to the engine that mounted it.
func (i *Instance) Bind(p Patcher, container any) {
	i.patcher = p
	i.container = container
	i.mounted = true
	i.unmounted = false
}

// SetRendered records the subtree currently on screen.
func (i *Instance) SetRendered(n *VNode) {
	i.rendered = n
	if i.node != nil {
		i.node.Children = []*VNode{n}
	}
}

// Retire marks the instance as unmounted.
func (i *Instance) Retire() {
	i.mounted = false
	i.unmounted = true
}

// Supersede forwards later calls on i to next. The reconciler calls it
// when a parent re-render replaces this component node with a new one.
func (i *Instance) Supersede(next *Instance) {
	if next == nil || next == i {
		return
	}
	i.successor = next
}

func (i *Instance) current() *Instance {
	for i.successor != nil {
		i = i.successor
	}
	return i
}

func (i *Instance) check() error {
	switch {
	case i.unmounted:
		return errors.New("E202")
	case !i.mounted || i.patcher == nil:
		return errors.New("E201")
	}
	return nil
}

func (i *Instance) render(props Props) (*VNode, error) {
	rendered := i.fn(componentProps(props, i.children), i)
	if rendered == nil {
		return nil, errors.New("E104")
	}
	if rendered.Key == "" {
		rendered.Key = positionKey(0)
		rendered.autoKey = true
	}
	return rendered, nil
}
