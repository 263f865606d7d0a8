// Package errors provides structured, coded errors for vreconcile.
//
// Every error carries a code (e.g., "E201") that maps to a short message,
// a longer explanation and a category:
//   - construction: the node factory rejected its input
//   - lifecycle: a component instance was used outside its mounted lifetime
//   - reconcile: the reconciler was asked to patch something it cannot locate
//   - config: vreconcile.json could not be loaded or is invalid
//   - scenario: a scenario file could not be loaded or built
//
// Errors with the same code match under errors.Is, so packages export
// sentinel values built with New and callers compare against those.
//
// # Usage
//
//	err := errors.New("E103").
//	    WithDetail("child 2 has type struct {}").
//	    WithSuggestion("Pass a *vdom.VNode, a string or a slice of children")
//
//	fmt.Println(err.Format())
package errors
