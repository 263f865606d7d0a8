package memdom

// Event is passed to handlers that accept one.
type Event struct {
	Type   string
	Target *Node
	Value  string
}

// Dispatch invokes the handler bound on n for typ. It reports whether a
// handler ran. Supported handler forms are func(), func(*Event) and
// func(string), the last receiving ev.Value.
func (d *Document) Dispatch(n *Node, typ string, ev *Event) bool {
	if n == nil {
		return false
	}
	if ev == nil {
		ev = &Event{}
	}
	ev.Type = typ
	ev.Target = n

	switch h := n.events[typ].(type) {
	case func():
		h()
	case func(*Event):
		h(ev)
	case func(string):
		h(ev.Value)
	default:
		return false
	}
	return true
}
