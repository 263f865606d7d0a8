package host

// Node is a concrete node on the display surface. Its type is up to the
// Adapter; the reconciler only stores and passes it back.
type Node = any

// Adapter is the set of display-surface primitives the mount engine and the
// reconciler use. Errors are returned unmodified to the caller of the
// reconciler; there is no retry or rollback.
type Adapter interface {
	// CreateElement returns a new, unattached node of kind tag.
	CreateElement(tag string) (Node, error)

	// CreateText returns a new, unattached text node.
	CreateText(text string) (Node, error)

	// SetAttribute sets a named attribute.
	SetAttribute(n Node, name, value string) error

	// BindEvent registers handler for events of type typ. Binding the same
	// type again replaces the previous handler; it never adds a second
	// listener. A nil handler unbinds.
	BindEvent(n Node, typ string, handler any) error

	// SetText replaces a text node's content.
	SetText(n Node, text string) error

	// InsertBefore inserts n into parent before ref, or appends when ref is
	// nil. A node that is already attached is moved.
	InsertBefore(parent, n, ref Node) error

	// AppendChild appends n to parent, moving it if already attached.
	AppendChild(parent, n Node) error

	// RemoveChild detaches n from parent.
	RemoveChild(parent, n Node) error
}

// SiblingReader is implemented by adapters that can report a node's next
// sibling. The reconciler uses it to find the insertion point after a
// fragment when the caller did not supply one.
type SiblingReader interface {
	NextSibling(n Node) Node
}
