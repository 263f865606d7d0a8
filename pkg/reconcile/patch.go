package reconcile

import (
	"reflect"

	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/host"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// patchNode updates the mounted node last, whose content lives in parent,
// to match next. tail is the host node following last's content, or nil
// when it is the last content in parent or unknown.
func (e *Engine) patchNode(parent host.Node, last, next *vdom.VNode, tail host.Node) error {
	if last == next {
		return nil
	}
	if !sameShape(last, next) {
		return e.replace(parent, last, next, tail)
	}
	e.adopt(parent, last, next)

	switch next.Kind {
	case vdom.KindComponent:
		if len(last.Children) != 1 || len(next.Children) != 1 {
			return errors.New("E302").WithDetailf("component node %d", next.ID)
		}
		if next.Instance != nil {
			next.Instance.Bind(e, parent)
			if last.Instance != nil {
				last.Instance.Supersede(next.Instance)
			}
		}
		if vdom.ShallowEqual(last.Props, next.Props) && last.Child() == next.Child() {
			e.own(next)
			return nil
		}
		if err := e.patchNode(parent, last.Child(), next.Child(), tail); err != nil {
			return err
		}
		if next.Instance != nil {
			next.Instance.SetRendered(next.Child())
		}

	case vdom.KindText:
		if last.Text != next.Text {
			if err := e.setText(e.refs[next.ID], next.Text); err != nil {
				return err
			}
		}

	case vdom.KindElement:
		ref := e.refs[next.ID]
		if err := e.patchProps(ref, last.Props, next.Props); err != nil {
			return err
		}
		if _, err := e.patchChildren(ref, last.Children, next.Children, nil); err != nil {
			return err
		}

	default:
		if _, err := e.patchChildren(parent, last.Children, next.Children, tail); err != nil {
			return err
		}
	}

	e.own(next)
	if next.Hooks.Update != nil {
		next.Hooks.Update(last.Props, next.Props)
	}
	return nil
}

// patchProps applies every property of next whose value changed. Properties
// only present in last are left on the host node.
func (e *Engine) patchProps(n host.Node, last, next vdom.Props) error {
	for _, key := range next.Keys() {
		value := next[key]
		if prev, ok := last[key]; ok && vdom.PropsEqual(prev, value) {
			continue
		}
		if err := e.applyAttribute(n, key, value); err != nil {
			return err
		}
	}
	return nil
}

// replace unmounts last and mounts next where last's content was.
func (e *Engine) replace(parent host.Node, last, next *vdom.VNode, tail host.Node) error {
	if parent == nil {
		return errors.New("E301").WithDetailf("cannot replace %s node %d", last.Kind, last.ID)
	}
	if err := e.remove(parent, last); err != nil {
		return err
	}
	_, err := e.mount(next, parent, tail)
	return err
}

// sameShape reports whether next can be patched in place of last.
func sameShape(last, next *vdom.VNode) bool {
	if last.Kind != next.Kind {
		return false
	}
	switch next.Kind {
	case vdom.KindElement:
		return last.Tag == next.Tag
	case vdom.KindComponent:
		return sameFunc(last.Comp, next.Comp)
	}
	return true
}

// sameFunc compares component functions by code pointer. Closures created
// from the same literal compare equal.
func sameFunc(a, b vdom.ComponentFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
