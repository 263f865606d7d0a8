// Package memdom is an in-memory display surface that implements
// host.Adapter.
//
// A Document creates element and text nodes, keeps the tree the reconciler
// builds, and records every primitive it performs in a Journal so tests and
// tools can assert on exactly which host operations a pass issued:
//
//	doc := memdom.New()
//	root := doc.NewContainer("div")
//	engine := reconcile.New(doc)
//	engine.Render(tree, root)
//	fmt.Println(root.HTML())
//	fmt.Println(doc.Journal().Count(memdom.OpInsert))
//
// Event handlers live in a per-node indirection table: binding an event type
// again replaces the handler in the table instead of adding a listener.
// Dispatch looks the handler up at call time.
package memdom
