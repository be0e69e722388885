// Package btree implements a generic B-tree of minimum degree t whose leaf
// keys are simultaneously threaded into a per-tree recency list. Every
// structural mutation (split, merge, steal, predecessor/successor
// substitution) that relocates a key re-stitches that key's recency-list
// linkage in the same step, so the list and the tree never drift apart.
//
// The tree is single-threaded: callers that need concurrent access must
// serialize it themselves (see pkg/api.Server for an example).
package btree

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/Tehiaohiao/wst/internal/element"
	"github.com/Tehiaohiao/wst/internal/node"
)

const (
	// DefaultMinDegree is used by NewDefault.
	DefaultMinDegree = 2
	// DefaultMaxHeight is used by NewDefault.
	DefaultMaxHeight = 10
	// MaxFreeNodes caps how many nodes the constructor will pre-allocate
	// into the free pool; beyond this, splits simply allocate fresh nodes.
	MaxFreeNodes = 350000
)

// BTree is an ordered dictionary of unique keys, augmented with an
// intrusive MRU/LRU recency list over those same keys.
type BTree[K cmp.Ordered] struct {
	root      *node.Node[K]
	minDegree int
	height    int
	maxHeight int
	size      int
	list      *element.RecencyList[K]
	freeNodes []*node.Node[K]
}

// New constructs a BTree of the given minimum degree and per-tree height
// cap. minDegree must be >= 2 and maxHeight must be >= 1.
func New[K cmp.Ordered](minDegree, maxHeight int) (*BTree[K], error) {
	if minDegree < 2 {
		return nil, ErrInvalidDegree
	}
	if maxHeight < 1 {
		return nil, ErrInvalidHeight
	}
	t := &BTree[K]{
		minDegree: minDegree,
		maxHeight: maxHeight,
		height:    1,
		list:      element.NewRecencyList[K](),
	}
	t.root = node.New[K](minDegree)
	t.preallocateFreeNodes()
	return t, nil
}

// NewDefault constructs a BTree using DefaultMinDegree and
// DefaultMaxHeight.
func NewDefault[K cmp.Ordered]() *BTree[K] {
	t, _ := New[K](DefaultMinDegree, DefaultMaxHeight)
	return t
}

func (t *BTree[K]) preallocateFreeNodes() {
	numFree := 1 // the root plus one possible extra node on overflow
	curr := 1
	for i := 1; i < t.maxHeight; i++ {
		curr *= t.minDegree * 2
		numFree += curr
		if numFree > MaxFreeNodes {
			numFree = MaxFreeNodes
			break
		}
	}
	t.freeNodes = make([]*node.Node[K], 0, numFree)
	for j := 0; j < numFree; j++ {
		t.freeNodes = append(t.freeNodes, node.New[K](t.minDegree))
	}
}

func (t *BTree[K]) allocNode() *node.Node[K] {
	if len(t.freeNodes) == 0 {
		return node.New[K](t.minDegree)
	}
	n := t.freeNodes[len(t.freeNodes)-1]
	t.freeNodes = t.freeNodes[:len(t.freeNodes)-1]
	return n
}

func (t *BTree[K]) releaseNode(n *node.Node[K]) {
	n.Reset()
	t.freeNodes = append(t.freeNodes, n)
}

// Height returns the tree's current height (1 for a single leaf root).
func (t *BTree[K]) Height() int { return t.height }

// MaxHeight returns the configured height cap.
func (t *BTree[K]) MaxHeight() int { return t.maxHeight }

// Size returns the number of live keys in the tree.
func (t *BTree[K]) Size() int { return t.size }

// Empty reports whether the tree holds no keys.
func (t *BTree[K]) Empty() bool { return t.root.NumKeys == 0 }

// Search descends from the root, returning the node holding k and its
// index within that node's Keys. If k is absent, the returned index is -1
// and the node is the leaf where the search bottomed out.
func (t *BTree[K]) Search(k K) (*node.Node[K], int) {
	return t.searchNode(t.root, k)
}

func (t *BTree[K]) searchNode(n *node.Node[K], k K) (*node.Node[K], int) {
	i := 0
	for i < n.NumKeys && k > n.Keys[i].Key {
		i++
	}
	if i < n.NumKeys && k == n.Keys[i].Key {
		return n, i
	}
	if n.IsLeaf {
		return n, -1
	}
	return t.searchNode(n.Children[i], k)
}

// Contains reports whether k is present in the tree, without affecting
// recency (unlike WorkingSetTree.Search, this is a pure structural lookup).
func (t *BTree[K]) Contains(k K) bool {
	_, idx := t.Search(k)
	return idx != -1
}

// Insert adds k to the tree as the new MRU element. It returns the number
// of levels traversed to place it. Behavior on a duplicate key is
// unspecified; this implementation treats it as inserting a second,
// independent key slot rather than rejecting or updating anything.
func (t *BTree[K]) Insert(k K) int {
	if t.root.NumKeys == 2*t.minDegree-1 {
		newRoot := t.allocNode()
		newRoot.IsLeaf = false
		newRoot.Children[0] = t.root
		t.root = newRoot
		t.height++
		t.splitChild(newRoot, 0)
	}
	levels := t.insertNonFull(t.root, k)
	t.size++
	return levels
}

// InsertLRU behaves like Insert, but the new Element ends up at the back
// (LRU end) of the recency list instead of the front.
func (t *BTree[K]) InsertLRU(k K) {
	t.Insert(k)
	if front, ok := t.list.Front(); ok {
		t.list.MoveToBack(front)
	}
}

func (t *BTree[K]) splitChild(parent *node.Node[K], i int) {
	left := parent.Children[i]
	right := t.allocNode()
	right.IsLeaf = left.IsLeaf
	right.NumKeys = t.minDegree - 1

	for j := right.NumKeys - 1; j >= 0; j-- {
		right.Keys[j] = left.Keys[t.minDegree+j]
		element.Patch(&right.Keys[j])
	}

	if !left.IsLeaf {
		for j := 0; j < t.minDegree; j++ {
			right.Children[j] = left.Children[t.minDegree+j]
		}
	}

	left.NumKeys = t.minDegree - 1

	for j := parent.NumKeys; j >= i+1; j-- {
		parent.Children[j+1] = parent.Children[j]
	}
	parent.Children[i+1] = right

	for j := parent.NumKeys - 1; j >= i; j-- {
		parent.Keys[j+1] = parent.Keys[j]
		element.Patch(&parent.Keys[j+1])
	}

	parent.Keys[i] = left.Keys[t.minDegree-1]
	element.Patch(&parent.Keys[i])

	parent.NumKeys++
}

func (t *BTree[K]) insertNonFull(n *node.Node[K], k K) int {
	i := n.NumKeys - 1
	for i >= 0 && k < n.Keys[i].Key {
		i--
	}
	i++

	if n.IsLeaf {
		for j := n.NumKeys; j > i; j-- {
			n.Keys[j] = n.Keys[j-1]
			element.Patch(&n.Keys[j])
		}
		n.Keys[i] = element.Element[K]{Key: k}
		t.list.PushFront(&n.Keys[i])
		n.NumKeys++
		return 1
	}

	child := n.Children[i]
	if child.NumKeys == 2*t.minDegree-1 {
		t.splitChild(n, i)
		if k > n.Keys[i].Key {
			i++
		}
	}
	return 1 + t.insertNonFull(n.Children[i], k)
}

// Remove deletes k from the tree if present, returning whether it was
// found. Size is decremented exactly once per successful call, regardless
// of how many nested predecessor/successor substitutions the deletion
// performs internally.
func (t *BTree[K]) Remove(k K) bool {
	found := t.removeHelper(t.root, k, true, nil)
	if found {
		t.size--
	}
	return found
}

// removeHelper implements the classic three-case B-tree deletion. When
// modifyList is false, the Element found in a leaf is not unlinked from
// the recency list; instead newPos (a stable slot address higher up the
// tree) is relinked into its exact list position. This is how predecessor/
// successor substitution preserves the replacement key's recency.
func (t *BTree[K]) removeHelper(n *node.Node[K], k K, modifyList bool, newPos *element.Element[K]) bool {
	i := 0
	for i < n.NumKeys && k > n.Keys[i].Key {
		i++
	}

	if n.IsLeaf {
		if i < n.NumKeys && k == n.Keys[i].Key {
			slot := &n.Keys[i]
			if modifyList {
				t.list.Unlink(slot)
			} else {
				element.Relink(slot, newPos)
			}
			for j := i; j < n.NumKeys-1; j++ {
				n.Keys[j] = n.Keys[j+1]
				element.Patch(&n.Keys[j])
			}
			n.NumKeys--
			return true
		}
		return false
	}

	if i < n.NumKeys && k == n.Keys[i].Key {
		switch {
		case n.Children[i].NumKeys >= t.minDegree: // case 2a
			t.list.Unlink(&n.Keys[i])
			pred := t.findMaxKey(n.Children[i])
			predKey := pred.Key
			t.removeHelper(n, predKey, false, &n.Keys[i])
			n.Keys[i].Key = predKey
		case n.Children[i+1].NumKeys >= t.minDegree: // case 2b
			t.list.Unlink(&n.Keys[i])
			succ := t.findMinKey(n.Children[i+1])
			succKey := succ.Key
			t.removeHelper(n, succKey, false, &n.Keys[i])
			n.Keys[i].Key = succKey
		default: // case 2c
			t.mergeChildren(n, i)
			return t.removeHelper(n.Children[i], k, modifyList, newPos)
		}
		return true
	}

	// k is not at this node; ensure children[i] is fat enough to recurse
	// into before descending (case 3).
	if n.Children[i].NumKeys == t.minDegree-1 {
		switch {
		case i > 0 && n.Children[i-1].NumKeys >= t.minDegree: // 3a
			t.stealFromLeftNeighbor(n, i)
		case i < n.NumKeys && n.Children[i+1].NumKeys >= t.minDegree: // 3b
			t.stealFromRightNeighbor(n, i)
		case i < n.NumKeys: // 3c, merge with right sibling
			t.mergeChildren(n, i)
		default: // 3c, merge with left sibling
			t.mergeChildren(n, i-1)
			i--
		}
	}

	return t.removeHelper(n.Children[i], k, modifyList, newPos)
}

func (t *BTree[K]) findMaxKey(n *node.Node[K]) *element.Element[K] {
	if n.IsLeaf {
		return &n.Keys[n.NumKeys-1]
	}
	return t.findMaxKey(n.Children[n.NumKeys])
}

func (t *BTree[K]) findMinKey(n *node.Node[K]) *element.Element[K] {
	if n.IsLeaf {
		return &n.Keys[0]
	}
	return t.findMinKey(n.Children[0])
}

// mergeChildren folds parent.Keys[i] and parent.Children[i+1] into
// parent.Children[i], shrinking parent by one key/child. If parent was the
// root and is now empty, the merged child becomes the new root and the
// tree's height decreases.
func (t *BTree[K]) mergeChildren(parent *node.Node[K], i int) {
	left := parent.Children[i]
	right := parent.Children[i+1]

	left.Keys[t.minDegree-1] = parent.Keys[i]
	element.Patch(&left.Keys[t.minDegree-1])

	for j := 0; j < right.NumKeys; j++ {
		idx := j + t.minDegree
		left.Keys[idx] = right.Keys[j]
		element.Patch(&left.Keys[idx])
	}

	if !right.IsLeaf {
		for j := 0; j <= right.NumKeys; j++ {
			left.Children[t.minDegree+j] = right.Children[j]
		}
	}

	for j := i + 1; j < parent.NumKeys; j++ {
		parent.Keys[j-1] = parent.Keys[j]
		element.Patch(&parent.Keys[j-1])
	}
	for j := i + 1; j < parent.NumKeys; j++ {
		parent.Children[j] = parent.Children[j+1]
	}

	left.NumKeys = 2*t.minDegree - 1
	parent.NumKeys--

	t.releaseNode(right)

	if parent == t.root && parent.NumKeys == 0 {
		t.root = left
		t.height--
	}
}

// stealFromLeftNeighbor rotates parent.Keys[index-1] down into
// parent.Children[index] and the left sibling's last key up into
// parent.Keys[index-1].
func (t *BTree[K]) stealFromLeftNeighbor(parent *node.Node[K], index int) {
	leftSib := parent.Children[index-1]
	child := parent.Children[index]

	for j := child.NumKeys; j > 0; j-- {
		child.Keys[j] = child.Keys[j-1]
		element.Patch(&child.Keys[j])
	}
	child.Keys[0] = parent.Keys[index-1]
	element.Patch(&child.Keys[0])

	parent.Keys[index-1] = leftSib.Keys[leftSib.NumKeys-1]
	element.Patch(&parent.Keys[index-1])

	if !child.IsLeaf {
		for j := child.NumKeys; j >= 0; j-- {
			child.Children[j+1] = child.Children[j]
		}
		child.Children[0] = leftSib.Children[leftSib.NumKeys]
	}

	leftSib.NumKeys--
	child.NumKeys++
}

// stealFromRightNeighbor rotates parent.Keys[index] down into
// parent.Children[index] and the right sibling's first key up into
// parent.Keys[index].
func (t *BTree[K]) stealFromRightNeighbor(parent *node.Node[K], index int) {
	child := parent.Children[index]
	rightSib := parent.Children[index+1]

	child.Keys[child.NumKeys] = parent.Keys[index]
	element.Patch(&child.Keys[child.NumKeys])

	parent.Keys[index] = rightSib.Keys[0]
	element.Patch(&parent.Keys[index])

	for j := 0; j < rightSib.NumKeys-1; j++ {
		rightSib.Keys[j] = rightSib.Keys[j+1]
		element.Patch(&rightSib.Keys[j])
	}

	if !child.IsLeaf {
		child.Children[child.NumKeys+1] = rightSib.Children[0]
		for j := 0; j < rightSib.NumKeys; j++ {
			rightSib.Children[j] = rightSib.Children[j+1]
		}
	}

	child.NumKeys++
	rightSib.NumKeys--
}

// RemoveLRU removes and returns the key at the tail of the recency list
// (the least recently touched key in the tree). ok is false if the tree is
// empty.
func (t *BTree[K]) RemoveLRU() (k K, ok bool) {
	back, has := t.list.Back()
	if !has {
		return k, false
	}
	lru := back.Key
	t.Remove(lru)
	return lru, true
}

// RemoveMRU removes and returns the key at the head of the recency list
// (the most recently touched key in the tree). ok is false if the tree is
// empty.
func (t *BTree[K]) RemoveMRU() (k K, ok bool) {
	front, has := t.list.Front()
	if !has {
		return k, false
	}
	mru := front.Key
	t.Remove(mru)
	return mru, true
}

// Front returns the current MRU key without removing it.
func (t *BTree[K]) Front() (k K, ok bool) {
	e, has := t.list.Front()
	if !has {
		return k, false
	}
	return e.Key, true
}

// Back returns the current LRU key without removing it.
func (t *BTree[K]) Back() (k K, ok bool) {
	e, has := t.list.Back()
	if !has {
		return k, false
	}
	return e.Key, true
}

type nodeLevel[K cmp.Ordered] struct {
	n   *node.Node[K]
	lvl int
}

// String renders the tree breadth-first, one line per level:
// "\nLevel L: <node> <node> …".
func (t *BTree[K]) String() string {
	var b strings.Builder
	if t.root == nil {
		return ""
	}
	queue := []nodeLevel[K]{{t.root, 1}}
	level := 0
	for len(queue) > 0 {
		nl := queue[0]
		queue = queue[1:]
		if level != nl.lvl {
			b.WriteString(fmt.Sprintf("\nLevel %d: ", nl.lvl))
			level = nl.lvl
		}
		b.WriteString(node.ToString(nl.n))
		b.WriteString(" ")
		if !nl.n.IsLeaf {
			for i := 0; i <= nl.n.NumKeys; i++ {
				queue = append(queue, nodeLevel[K]{nl.n.Children[i], nl.lvl + 1})
			}
		}
	}
	return b.String()
}

// PrintOrderedMRU renders the recency list from MRU to LRU:
// "MRU-> k1 k2 … <-LRU".
func (t *BTree[K]) PrintOrderedMRU() string {
	sentinel := t.list.Sentinel()
	var b strings.Builder
	b.WriteString("MRU-> ")
	for e := sentinel.Next; e != sentinel; e = e.Next {
		b.WriteString(fmt.Sprint(e.Key))
		b.WriteString(" ")
	}
	b.WriteString("<-LRU")
	return b.String()
}

// PrintOrderedTail renders the recency list from LRU to MRU:
// "(tail) LRU-> k_n … <-MRU".
func (t *BTree[K]) PrintOrderedTail() string {
	sentinel := t.list.Sentinel()
	var b strings.Builder
	b.WriteString("(tail) LRU-> ")
	for e := sentinel.Prev; e != sentinel; e = e.Prev {
		b.WriteString(fmt.Sprint(e.Key))
		b.WriteString(" ")
	}
	b.WriteString("<-MRU")
	return b.String()
}

// Close tears the tree down: every node's key and child slots are cleared
// before the root reference is dropped, so nothing reachable from the tree
// retains a live recency-list pointer after Close returns. Memory itself is
// reclaimed by the garbage collector, but Close makes the teardown
// deterministic rather than relying on finalizers.
func (t *BTree[K]) Close() {
	var destroy func(n *node.Node[K])
	destroy = func(n *node.Node[K]) {
		if n == nil {
			return
		}
		if !n.IsLeaf {
			for i := 0; i <= n.NumKeys; i++ {
				destroy(n.Children[i])
			}
		}
		n.Reset()
	}
	destroy(t.root)
	t.root = nil
	t.freeNodes = nil
}
