// Package reconcile mounts virtual node trees onto a host surface and keeps
// them up to date.
//
// An Engine owns the mapping from mounted virtual nodes to the host nodes
// they produced. Render mounts a root into a container the first time and
// patches it on later calls:
//
//	doc := memdom.New()
//	root := doc.NewContainer("div")
//	e := reconcile.New(doc)
//	e.Render(view(state), root)
//	state.count++
//	e.Render(view(state), root) // only the changed text is touched
//
// Patching follows a fixed policy:
//
//   - Nodes of a different shape (kind, tag or component function) are
//     replaced: the old subtree is unmounted and the new one mounted in its
//     place.
//   - Element attributes are applied only when their value changed.
//     Attributes missing from the new props are left in place.
//   - Children are matched by key. Removed keys are unmounted, new keys are
//     mounted, and surviving nodes are moved so that each displaced node
//     moves once and nodes already in order do not move at all.
//   - A component whose props are shallowly equal and whose rendered
//     subtree is the same node is skipped, hooks included.
//
// Hooks run in this order: a component's mount hook before its subtree is
// mounted; an element's mount hook after its subtree was built and the
// element was inserted; unmount hooks children first; update hooks after
// the node was patched, with the previous and next props.
//
// An Engine is not safe for concurrent use. Component updates requested
// while a pass is running are queued and run once it finishes.
package reconcile
