// Package watch polls a scenario directory and reports files that were
// created, modified or removed.
//
// The polling interval is also the debounce window: several writes to one
// file between two ticks are reported as one change.
package watch
