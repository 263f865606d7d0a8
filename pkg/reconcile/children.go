package reconcile

import (
	"github.com/vango-dev/vreconcile/pkg/host"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// patchChildren runs the keyed diff of last against next. Both lists live
// in parent, directly before tail. It returns the first host node of the
// block, or tail when the block has no host content.
//
// The diff has four phases:
//
//  1. Index next by key.
//  2. Walk last backward. A node whose key is gone, or whose match has a
//     different shape, is unmounted and removed. The rest are kept.
//  3. If the kept nodes are out of order, walk next backward and move every
//     kept node that is not part of the longest run already in order in
//     front of the node placed after it.
//  4. Walk next backward, mounting new nodes and patching kept ones in
//     front of the running anchor.
func (e *Engine) patchChildren(parent host.Node, last, next []*vdom.VNode, tail host.Node) (host.Node, error) {
	nextIndex := make(map[string]int, len(next))
	for i, c := range next {
		nextIndex[c.Key] = i
	}

	// kept[i] is the index in last of the node matched to next[i], or -1.
	kept := make([]int, len(next))
	for i := range kept {
		kept[i] = -1
	}
	for i := len(last) - 1; i >= 0; i-- {
		lc := last[i]
		j, ok := nextIndex[lc.Key]
		if !ok || kept[j] >= 0 || !sameShape(lc, next[j]) {
			if err := e.remove(parent, lc); err != nil {
				return nil, err
			}
			continue
		}
		kept[j] = i
	}

	if err := e.reorder(parent, last, kept, tail); err != nil {
		return nil, err
	}

	anchor := tail
	for j := len(next) - 1; j >= 0; j-- {
		nc := next[j]
		if i := kept[j]; i >= 0 {
			if err := e.patchNode(parent, last[i], nc, anchor); err != nil {
				return nil, err
			}
		} else if _, err := e.mount(nc, parent, anchor); err != nil {
			return nil, err
		}
		if h := e.FirstHost(nc); h != nil {
			anchor = h
		}
	}
	return anchor, nil
}

// reorder moves kept nodes into next's order. Nodes on the longest
// increasing run of old positions stay where they are; each other node
// moves once, with all of its host nodes.
func (e *Engine) reorder(parent host.Node, last []*vdom.VNode, kept []int, tail host.Node) error {
	var order []int // old positions of kept nodes, in next order
	var slots []int // their positions in next
	for j, i := range kept {
		if i >= 0 {
			order = append(order, i)
			slots = append(slots, j)
		}
	}
	if isIncreasing(order) {
		return nil
	}

	stay := make(map[int]bool, len(order))
	for _, k := range longestIncreasing(order) {
		stay[slots[k]] = true
	}

	anchor := tail
	for j := len(kept) - 1; j >= 0; j-- {
		i := kept[j]
		if i < 0 {
			continue
		}
		lc := last[i]
		if !stay[j] {
			for _, n := range e.hostNodes(lc) {
				if err := e.move(parent, n, anchor); err != nil {
					return err
				}
			}
		}
		if h := e.FirstHost(lc); h != nil {
			anchor = h
		}
	}
	return nil
}

func isIncreasing(s []int) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

// longestIncreasing returns the indices into s of one longest strictly
// increasing subsequence, in ascending order.
func longestIncreasing(s []int) []int {
	if len(s) == 0 {
		return nil
	}
	// tails[k] is the index in s of the smallest tail of an increasing
	// run of length k+1.
	tails := make([]int, 0, len(s))
	prev := make([]int, len(s))
	for i, v := range s {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if s[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	out := make([]int, len(tails))
	for k, i := len(tails)-1, tails[len(tails)-1]; k >= 0; k, i = k-1, prev[i] {
		out[k] = i
	}
	return out
}
