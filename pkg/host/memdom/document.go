package memdom

import (
	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/host"
)

// Document owns a set of nodes and implements host.Adapter and
// host.SiblingReader over them.
type Document struct {
	lastID  int
	journal Journal
	fail    func(Op) error
}

var (
	_ host.Adapter       = (*Document)(nil)
	_ host.SiblingReader = (*Document)(nil)
)

// Option configures a Document.
type Option func(*Document)

// WithFailure installs an injector consulted before every operation. A
// non-nil error aborts the operation unapplied and unjournaled and is
// returned to the caller as-is.
func WithFailure(fn func(Op) error) Option {
	return func(d *Document) {
		d.fail = fn
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Journal returns the document's operation journal.
func (d *Document) Journal() *Journal {
	return &d.journal
}

// NewContainer creates a detached element to mount trees into. Containers
// are not journaled.
func (d *Document) NewContainer(tag string) *Node {
	return d.newNode(ElementNode, tag)
}

func (d *Document) newNode(typ NodeType, tag string) *Node {
	d.lastID++
	return &Node{doc: d, id: d.lastID, typ: typ, tag: tag}
}

func (d *Document) apply(op Op) error {
	if d.fail != nil {
		if err := d.fail(op); err != nil {
			return err
		}
	}
	d.journal.record(op)
	return nil
}

// node resolves a host.Node handed back by the reconciler.
func (d *Document) node(n host.Node) (*Node, error) {
	node, ok := n.(*Node)
	if !ok || node == nil {
		return nil, errors.New("E303").WithDetailf("got %T", n)
	}
	if node.doc != d {
		return nil, errors.New("E303").WithDetailf("node #%d belongs to another document", node.id)
	}
	return node, nil
}

// CreateElement implements host.Adapter.
func (d *Document) CreateElement(tag string) (host.Node, error) {
	if err := d.apply(Op{Kind: OpCreateElement, Target: d.lastID + 1, Name: tag}); err != nil {
		return nil, err
	}
	return d.newNode(ElementNode, tag), nil
}

// CreateText implements host.Adapter.
func (d *Document) CreateText(text string) (host.Node, error) {
	if err := d.apply(Op{Kind: OpCreateText, Target: d.lastID + 1, Value: text}); err != nil {
		return nil, err
	}
	n := d.newNode(TextNode, "")
	n.text = text
	return n, nil
}

// SetAttribute implements host.Adapter.
func (d *Document) SetAttribute(n host.Node, name, value string) error {
	node, err := d.node(n)
	if err != nil {
		return err
	}
	if err := d.apply(Op{Kind: OpSetAttribute, Target: node.id, Name: name, Value: value}); err != nil {
		return err
	}
	if node.attrs == nil {
		node.attrs = make(map[string]string)
	}
	node.attrs[name] = value
	return nil
}

// BindEvent implements host.Adapter. A nil handler removes the binding.
func (d *Document) BindEvent(n host.Node, typ string, handler any) error {
	node, err := d.node(n)
	if err != nil {
		return err
	}
	if err := d.apply(Op{Kind: OpBindEvent, Target: node.id, Name: typ}); err != nil {
		return err
	}
	if handler == nil {
		delete(node.events, typ)
		return nil
	}
	if node.events == nil {
		node.events = make(map[string]any)
	}
	node.events[typ] = handler
	return nil
}

// SetText implements host.Adapter.
func (d *Document) SetText(n host.Node, text string) error {
	node, err := d.node(n)
	if err != nil {
		return err
	}
	if node.typ != TextNode {
		return errors.New("E303").WithDetailf("node #%d is not a text node", node.id)
	}
	if err := d.apply(Op{Kind: OpSetText, Target: node.id, Value: text}); err != nil {
		return err
	}
	node.text = text
	return nil
}

// InsertBefore implements host.Adapter.
func (d *Document) InsertBefore(parent, n, ref host.Node) error {
	if ref == nil {
		return d.insert(OpInsert, parent, n, nil)
	}
	r, err := d.node(ref)
	if err != nil {
		return err
	}
	return d.insert(OpInsert, parent, n, r)
}

// AppendChild implements host.Adapter.
func (d *Document) AppendChild(parent, n host.Node) error {
	return d.insert(OpAppend, parent, n, nil)
}

func (d *Document) insert(kind OpKind, parent, n host.Node, ref *Node) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	child, err := d.node(n)
	if err != nil {
		return err
	}
	if p.typ != ElementNode {
		return errors.New("E304").WithDetailf("parent #%d is a text node", p.id)
	}
	if child.contains(p) {
		return errors.New("E304").WithDetailf("node #%d would become its own ancestor", child.id)
	}
	if ref != nil && ref.parent != p {
		return errors.New("E304").WithDetailf("ref #%d is not a child of #%d", ref.id, p.id)
	}

	op := Op{Kind: kind, Target: child.id, Parent: p.id}
	if ref != nil {
		op.Ref = ref.id
	}
	if err := d.apply(op); err != nil {
		return err
	}

	if child == ref {
		return nil
	}
	child.detach()
	at := len(p.children)
	if ref != nil {
		at = p.indexOf(ref)
	}
	p.insertAt(child, at)
	return nil
}

// RemoveChild implements host.Adapter.
func (d *Document) RemoveChild(parent, n host.Node) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	child, err := d.node(n)
	if err != nil {
		return err
	}
	if child.parent != p {
		return errors.New("E304").WithDetailf("node #%d is not a child of #%d", child.id, p.id)
	}
	if err := d.apply(Op{Kind: OpRemove, Target: child.id, Parent: p.id}); err != nil {
		return err
	}
	child.detach()
	return nil
}

// NextSibling implements host.SiblingReader.
func (d *Document) NextSibling(n host.Node) host.Node {
	node, ok := n.(*Node)
	if !ok || node == nil {
		return nil
	}
	if next := node.NextSibling(); next != nil {
		return next
	}
	return nil
}
