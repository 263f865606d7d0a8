// Package scenario runs scripted render sequences through the reconciler.
//
// A scenario is a YAML document listing the trees a UI goes through:
//
//	name: todo-reorder
//	steps:
//	  - name: initial
//	    tree:
//	      tag: ul
//	      children:
//	        - {tag: li, key: a, children: [{text: A}]}
//	        - {tag: li, key: b, children: [{text: B}]}
//	  - name: swapped
//	    tree:
//	      tag: ul
//	      children:
//	        - {tag: li, key: b, children: [{text: B}]}
//	        - {tag: li, key: a, children: [{text: A}]}
//
// Run mounts the first tree into an in-memory document and patches each
// following one over it. The report lists, per step, the host operations
// the engine issued, the lifecycle hooks that fired and the resulting HTML.
//
// Scenarios are read from a directory (DirSource) or an S3 bucket
// (S3Source).
package scenario
