// Package host defines the display-surface operations the reconciler needs
// and the rule that turns a VNode property into those operations.
//
// An Adapter creates host nodes, sets attributes, binds events and mutates
// the live tree. It never sees VNodes: the reconciler decides what to do and
// the adapter only does it. Package memdom provides an in-memory Adapter.
//
// # Attribute rule
//
// ApplyAttribute maps one property to adapter calls:
//   - "children" and "key" are never forwarded
//   - a name starting with "on" and a function (or nil) value binds an event
//     whose type is the lowercased remainder: onClick → click
//   - "className" is written as "class"
//   - a map "style" is flattened to "key:value;" pairs, camelCase keys
//     hyphenated: {"fontSize": "12px"} → "font-size:12px;"
//   - any other value is stringified and set as an attribute
package host
