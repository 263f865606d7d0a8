package reconcile

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/host"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// DefaultMaxDeferred is the default bound on queued component updates.
const DefaultMaxDeferred = 64

const tracerName = "vreconcile"

// Stats counts the work done by an engine.
type Stats struct {
	Passes      int `json:"passes"`      // completed passes, including deferred ones
	Mounted     int `json:"mounted"`     // virtual nodes mounted
	Unmounted   int `json:"unmounted"`   // virtual nodes unmounted
	Created     int `json:"created"`     // host nodes created
	Removed     int `json:"removed"`     // host nodes removed
	Moved       int `json:"moved"`       // host nodes moved by keyed child diffs
	Attributes  int `json:"attributes"`  // attributes set and events bound
	TextUpdates int `json:"textUpdates"` // text nodes rewritten
	Deferred    int `json:"deferred"`    // component updates queued behind a running pass
}

func (s *Stats) add(o Stats) {
	s.Passes += o.Passes
	s.Mounted += o.Mounted
	s.Unmounted += o.Unmounted
	s.Created += o.Created
	s.Removed += o.Removed
	s.Moved += o.Moved
	s.Attributes += o.Attributes
	s.TextUpdates += o.TextUpdates
	s.Deferred += o.Deferred
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Passes are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics reports passes and host operations to m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer used for pass spans. The default is the
// global provider's "vreconcile" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithContext sets the parent context of pass spans.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

// WithMaxDeferred bounds the number of component updates that may be
// queued behind a running pass.
func WithMaxDeferred(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDeferred = n
		}
	}
}

// Engine mounts and patches virtual trees through a host adapter.
type Engine struct {
	adapter     host.Adapter
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
	ctx         context.Context
	maxDeferred int

	// refs maps element and text nodes to the host node they produced.
	refs map[vdom.NodeID]host.Node
	// parents maps every mounted node to the host node its content lives in.
	parents map[vdom.NodeID]host.Node
	// owners maps every mounted non-root node to the node holding it in
	// Children.
	owners map[vdom.NodeID]*vdom.VNode
	// roots holds the tree last rendered into each container.
	roots map[host.Node]*vdom.VNode

	active   bool
	queued   int
	deferred []func() error
	overflow []error
	pass     Stats
	stats    Stats
}

var _ vdom.Patcher = (*Engine)(nil)

// New creates an engine that drives adapter.
func New(adapter host.Adapter, opts ...Option) *Engine {
	e := &Engine{
		adapter:     adapter,
		logger:      slog.Default().With("component", "reconcile"),
		tracer:      otel.Tracer(tracerName),
		ctx:         context.Background(),
		maxDeferred: DefaultMaxDeferred,
		refs:        make(map[vdom.NodeID]host.Node),
		parents:     make(map[vdom.NodeID]host.Node),
		owners:      make(map[vdom.NodeID]*vdom.VNode),
		roots:       make(map[host.Node]*vdom.VNode),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats returns the counters accumulated since the engine was created.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Render makes container show node. The first call for a container mounts
// node; later calls patch the previously rendered tree into node.
func (e *Engine) Render(node *vdom.VNode, container host.Node) error {
	if node == nil {
		node = vdom.Empty()
	}
	return e.run("render", func() error {
		last, ok := e.roots[container]
		if !ok {
			if _, err := e.mount(node, container, nil); err != nil {
				return err
			}
			e.roots[container] = node
			return nil
		}
		if err := e.patchNode(container, last, node, e.tailOf(last)); err != nil {
			return err
		}
		e.roots[container] = node
		return nil
	})
}

// Root returns the tree last rendered into container.
func (e *Engine) Root(container host.Node) *vdom.VNode {
	return e.roots[container]
}

// Mount materializes node into container, before the host node before or
// at the end when before is nil. It returns node's host reference; for a
// fragment that is the anchor passed in.
func (e *Engine) Mount(node *vdom.VNode, container, before host.Node) (host.Node, error) {
	var ref host.Node
	err := e.run("mount", func() error {
		var err error
		ref, err = e.mount(node, container, before)
		return err
	})
	return ref, err
}

// Patch updates the mounted tree last to match next and returns next, which
// now owns last's host nodes, along with its host reference.
//
// last must have been mounted by this engine. When last is the root of a
// fragment and the adapter cannot report siblings, content added at the end
// of the fragment is appended to the container.
func (e *Engine) Patch(last, next *vdom.VNode) (*vdom.VNode, host.Node, error) {
	if next == nil {
		next = vdom.Empty()
	}
	if next.Key == "" {
		next.Key = last.Key
	}
	err := e.run("patch", func() error {
		parent, ok := e.parents[last.ID]
		if !ok {
			return errors.New("E301").WithDetailf("%s node %d is not mounted", last.Kind, last.ID)
		}
		owner := e.owners[last.ID]
		if err := e.patchNode(parent, last, next, e.tailOf(last)); err != nil {
			return err
		}
		if e.roots[parent] == last {
			e.roots[parent] = next
		}
		e.substitute(owner, last, next)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return next, e.HostRef(next), nil
}

// Unmount runs the unmount hooks of node's subtree and detaches its host
// nodes.
func (e *Engine) Unmount(node *vdom.VNode) error {
	return e.run("unmount", func() error {
		parent, ok := e.parents[node.ID]
		if !ok {
			return errors.New("E301").WithDetailf("%s node %d is not mounted", node.Kind, node.ID)
		}
		owner := e.owners[node.ID]
		if err := e.remove(parent, node); err != nil {
			return err
		}
		if e.roots[parent] == node {
			delete(e.roots, parent)
		}
		if owner != nil {
			// A keyed placeholder keeps the siblings' positions.
			hole := vdom.Empty()
			hole.Key = node.Key
			e.parents[hole.ID] = parent
			e.substitute(owner, node, hole)
		}
		return nil
	})
}

// PatchInstance implements vdom.Patcher. It patches the component's last
// rendered subtree into next, then fires the component node's update hook
// with prev and the current props. Called while a pass is running, it
// queues the update until the pass finishes. At most maxDeferred updates are
// queued per top-level call, counting updates queued by deferred passes.
func (e *Engine) PatchInstance(inst *vdom.Instance, next *vdom.VNode, prev vdom.Props) error {
	if !e.active {
		return e.run("update", func() error {
			return e.patchInstance(inst, next, prev)
		})
	}

	if e.queued >= e.maxDeferred {
		err := errors.New("E203").WithDetailf("%d updates already queued by this pass", e.queued)
		e.overflow = append(e.overflow, err)
		return err
	}
	e.queued++
	e.deferred = append(e.deferred, func() error {
		return e.patchInstance(inst, next, prev)
	})
	e.pass.Deferred++
	e.metrics.recordDeferred()
	e.logger.Warn("component update deferred until the running pass ends",
		"queued", len(e.deferred))
	return nil
}

func (e *Engine) patchInstance(inst *vdom.Instance, next *vdom.VNode, prev vdom.Props) error {
	comp := inst.Node()
	if !inst.Mounted() {
		return errors.New("E202")
	}
	inst = comp.Instance
	parent, ok := e.parents[comp.ID]
	if !ok {
		return errors.New("E301").WithDetailf("component node %d has no container", comp.ID)
	}
	last := inst.Rendered()
	if err := e.patchNode(parent, last, next, e.tailOf(last)); err != nil {
		return err
	}
	inst.SetRendered(next)
	e.owners[next.ID] = comp
	if comp.Hooks.Update != nil {
		comp.Hooks.Update(prev, comp.Props)
	}
	return nil
}

// run executes one top-level pass and then drains updates queued during it.
func (e *Engine) run(kind string, fn func() error) error {
	if e.active {
		return errors.New("E204").WithDetailf("%s requested during a running pass", kind)
	}
	e.active = true
	defer func() {
		e.active = false
		e.queued = 0
		e.deferred = nil
		e.overflow = nil
	}()

	var errs []error
	if err := e.runPass(kind, fn); err != nil {
		errs = append(errs, err)
	}
	for len(e.deferred) > 0 {
		next := e.deferred[0]
		e.deferred = e.deferred[1:]
		if err := e.runPass("deferred", next); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, e.overflow...)
	if len(errs) == 1 {
		return errs[0]
	}
	return stderrors.Join(errs...)
}

func (e *Engine) runPass(kind string, fn func() error) error {
	_, span := e.tracer.Start(e.ctx, tracerName+"."+kind,
		trace.WithAttributes(attribute.String("vreconcile.pass", kind)),
	)
	defer span.End()

	e.pass = Stats{Passes: 1}
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	s := e.pass
	e.stats.add(s)
	e.metrics.recordPass(kind, elapsed, s, err)

	span.SetAttributes(
		attribute.Int("vreconcile.mounted", s.Mounted),
		attribute.Int("vreconcile.unmounted", s.Unmounted),
		attribute.Int("vreconcile.created", s.Created),
		attribute.Int("vreconcile.removed", s.Removed),
		attribute.Int("vreconcile.moved", s.Moved),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Debug("pass failed", "kind", kind, "error", err)
		return err
	}
	span.SetStatus(codes.Ok, "")

	e.logger.Debug("pass complete",
		"kind", kind,
		"mounted", s.Mounted,
		"unmounted", s.Unmounted,
		"created", s.Created,
		"removed", s.Removed,
		"moved", s.Moved,
		"duration", elapsed,
	)
	return nil
}
