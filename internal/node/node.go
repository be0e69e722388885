// Package node implements the fixed-capacity B-tree node used by pkg/btree.
// A Node holds no logic of its own; splitting, merging, and rebalancing all
// live in the BTree that owns it.
package node

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/Tehiaohiao/wst/internal/element"
)

// Node is a single B-tree node. Keys has capacity 2*minDegree-1 and
// Children has capacity 2*minDegree, both allocated up front; NumKeys (and,
// for internal nodes, NumKeys+1) tracks how many of those slots are live.
type Node[K cmp.Ordered] struct {
	NumKeys   int
	IsLeaf    bool
	MinDegree int
	Keys      []element.Element[K]
	Children  []*Node[K]
}

// New allocates a node with capacity for the given minimum degree. The
// returned node starts out as an empty leaf.
func New[K cmp.Ordered](minDegree int) *Node[K] {
	return &Node[K]{
		IsLeaf:    true,
		MinDegree: minDegree,
		Keys:      make([]element.Element[K], 2*minDegree-1),
		Children:  make([]*Node[K], 2*minDegree),
	}
}

// Reset clears a node's live slots so it can be returned to a free pool or
// torn down without retaining references to keys or children.
func (n *Node[K]) Reset() {
	n.NumKeys = 0
	n.IsLeaf = true
	for i := range n.Keys {
		n.Keys[i] = element.Element[K]{}
	}
	for i := range n.Children {
		n.Children[i] = nil
	}
}

// ToString renders a node as
// "( *num_keys,cap_keys,cap_children,is_leaf* #k,next_k,prev_k# … )".
func ToString[K cmp.Ordered](n *Node[K]) string {
	var b strings.Builder
	b.WriteString("( ")
	b.WriteString(fmt.Sprintf("*%d,%d,%d,%d* ", n.NumKeys, len(n.Keys), len(n.Children), boolToInt(n.IsLeaf)))
	for i := 0; i < n.NumKeys; i++ {
		b.WriteString(element.KeyToString(&n.Keys[i]))
		b.WriteString(" ")
	}
	b.WriteString(")")
	return b.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
