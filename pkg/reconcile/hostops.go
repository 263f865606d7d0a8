package reconcile

import "github.com/vango-dev/vreconcile/pkg/host"

// Wrappers around the host adapter. Each one counts its call for the
// running pass.

func (e *Engine) createElement(tag string) (host.Node, error) {
	e.metrics.recordHostOp("create_element")
	n, err := e.adapter.CreateElement(tag)
	if err != nil {
		return nil, err
	}
	e.pass.Created++
	return n, nil
}

func (e *Engine) createText(text string) (host.Node, error) {
	e.metrics.recordHostOp("create_text")
	n, err := e.adapter.CreateText(text)
	if err != nil {
		return nil, err
	}
	e.pass.Created++
	return n, nil
}

func (e *Engine) applyAttribute(n host.Node, name string, value any) error {
	e.metrics.recordHostOp("apply_attribute")
	e.pass.Attributes++
	return host.ApplyAttribute(e.adapter, n, name, value)
}

func (e *Engine) setText(n host.Node, text string) error {
	e.metrics.recordHostOp("set_text")
	e.pass.TextUpdates++
	return e.adapter.SetText(n, text)
}

// place inserts n into parent before ref, appending when ref is nil.
func (e *Engine) place(parent, n, ref host.Node) error {
	if ref == nil {
		e.metrics.recordHostOp("append_child")
		return e.adapter.AppendChild(parent, n)
	}
	e.metrics.recordHostOp("insert_before")
	return e.adapter.InsertBefore(parent, n, ref)
}

func (e *Engine) move(parent, n, ref host.Node) error {
	if err := e.place(parent, n, ref); err != nil {
		return err
	}
	e.pass.Moved++
	return nil
}

func (e *Engine) removeChild(parent, n host.Node) error {
	e.metrics.recordHostOp("remove_child")
	if err := e.adapter.RemoveChild(parent, n); err != nil {
		return err
	}
	e.pass.Removed++
	return nil
}
