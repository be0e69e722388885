// Package workingset implements the cascade manager: an ordered sequence
// of pkg/btree.BTree instances of geometrically increasing height, used
// together to approximate a working-set cache over an unbounded key space.
// Tree 0 is the shallowest (cheapest to search, smallest capacity); each
// subsequent tree is deeper and holds keys that have gone longer without
// being touched.
package workingset

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/Tehiaohiao/wst/pkg/btree"
)

const (
	// DefaultMinDegree matches pkg/btree.DefaultMinDegree.
	DefaultMinDegree = 2
	// DefaultScaleFactor is the per-tier height multiplier.
	DefaultScaleFactor = 2
	// BaseHeight is tree 0's max height; tree i's max height is
	// BaseHeight * DefaultScaleFactor^i.
	BaseHeight = 2
	// DefaultNumTrees is how many tiers New pre-allocates.
	DefaultNumTrees = 4
)

// WorkingSetTree is the public cascade manager described by the spec: a
// single ordered dictionary backed internally by multiple BTree tiers.
type WorkingSetTree[K cmp.Ordered] struct {
	minDegree   int
	scaleFactor int
	baseHeight  int
	trees       []*btree.BTree[K]
}

// New constructs a cascade of numTrees BTree tiers. minDegree is shared by
// every tier; scaleFactor must be >= 1 and numTrees must be >= 1. Tier i's
// max height is baseHeight * scaleFactor^i.
func New[K cmp.Ordered](minDegree, scaleFactor, baseHeight, numTrees int) (*WorkingSetTree[K], error) {
	if scaleFactor < 1 {
		return nil, ErrInvalidScaleFactor
	}
	if numTrees < 1 {
		return nil, ErrInvalidTreeCount
	}
	w := &WorkingSetTree[K]{
		minDegree:   minDegree,
		scaleFactor: scaleFactor,
		baseHeight:  baseHeight,
	}
	for i := 0; i < numTrees; i++ {
		tr, err := btree.New[K](minDegree, w.maxHeightFor(i))
		if err != nil {
			return nil, err
		}
		w.trees = append(w.trees, tr)
	}
	return w, nil
}

// NewDefault constructs a cascade using DefaultMinDegree,
// DefaultScaleFactor, BaseHeight and DefaultNumTrees.
func NewDefault[K cmp.Ordered]() (*WorkingSetTree[K], error) {
	return New[K](DefaultMinDegree, DefaultScaleFactor, BaseHeight, DefaultNumTrees)
}

func (w *WorkingSetTree[K]) maxHeightFor(tierIndex int) int {
	h := w.baseHeight
	for i := 0; i < tierIndex; i++ {
		h *= w.scaleFactor
	}
	return h
}

// NumTrees returns how many tiers currently exist in the cascade.
func (w *WorkingSetTree[K]) NumTrees() int { return len(w.trees) }

// Size returns the total number of keys held across every tier.
func (w *WorkingSetTree[K]) Size() int {
	total := 0
	for _, tr := range w.trees {
		total += tr.Size()
	}
	return total
}

// Contains reports whether k is present anywhere in the cascade, without
// affecting recency (unlike Search).
func (w *WorkingSetTree[K]) Contains(k K) bool {
	_, found := w.locate(k)
	return found
}

func (w *WorkingSetTree[K]) locate(k K) (int, bool) {
	for i, tr := range w.trees {
		if tr.Contains(k) {
			return i, true
		}
	}
	return -1, false
}

// Insert adds a brand-new key to the cascade, as the MRU element of tier
// 0. If tier 0 overflows its configured height as a result, the cascade
// demotes LRU keys outward via shiftBack. Inserting a key that is already
// present in any tier is a no-op.
func (w *WorkingSetTree[K]) Insert(k K) {
	if w.Contains(k) {
		return
	}
	w.trees[0].Insert(k)
	w.shiftBack(0)
}

// Search looks up k. If found, it is promoted to the tier immediately
// shallower than the one it was found in (tier 0 stays at tier 0), since
// touching a key is evidence it belongs closer to the front of the
// working set. It returns whether k was found.
func (w *WorkingSetTree[K]) Search(k K) bool {
	idx, found := w.locate(k)
	if !found {
		return false
	}

	dest := idx - 1
	if dest < 0 {
		dest = 0
	}

	w.trees[idx].Remove(k)
	w.trees[dest].Insert(k)

	w.shiftBack(dest)
	w.shiftForward(idx)

	return true
}

// Remove permanently deletes k from the cascade, wherever it currently
// lives. If removing it leaves the tree it was found in below its
// configured height, the cascade refills that tree by pulling the MRU
// key forward from the next deeper tier.
func (w *WorkingSetTree[K]) Remove(k K) bool {
	idx, found := w.locate(k)
	if !found {
		return false
	}
	w.trees[idx].Remove(k)
	w.shiftForward(idx)
	return true
}

// RemoveLRU removes and returns the globally least recently used key:
// the LRU element of the deepest non-empty tier.
func (w *WorkingSetTree[K]) RemoveLRU() (k K, ok bool) {
	for i := len(w.trees) - 1; i >= 0; i-- {
		if key, found := w.trees[i].RemoveLRU(); found {
			w.shiftForward(i)
			return key, true
		}
	}
	return k, false
}

// RemoveMRU removes and returns the globally most recently used key: the
// MRU element of the shallowest non-empty tier.
func (w *WorkingSetTree[K]) RemoveMRU() (k K, ok bool) {
	for i := 0; i < len(w.trees); i++ {
		if key, found := w.trees[i].RemoveMRU(); found {
			w.shiftForward(i)
			return key, true
		}
	}
	return k, false
}

// shiftBack demotes overflow outward: while trees[i] has grown past its
// max height, its LRU key is evicted and re-inserted as the MRU of
// trees[i+1] (allocating a new deepest tier on demand), since the key just
// demoted is more recent than anything already in the deeper tier. Once
// trees[i] is back within its cap, the same check continues into
// trees[i+1].
func (w *WorkingSetTree[K]) shiftBack(i int) {
	for i < len(w.trees) && w.trees[i].Height() > w.trees[i].MaxHeight() {
		for w.trees[i].Height() > w.trees[i].MaxHeight() {
			key, ok := w.trees[i].RemoveLRU()
			if !ok {
				return
			}
			if i+1 == len(w.trees) {
				w.growTier()
			}
			w.trees[i+1].Insert(key)
		}
		i++
	}
}

// shiftForward refills trees[i]: while a deeper tier exists and trees[i]
// is below its configured max height, the deeper tier's MRU key is
// pulled up and spliced in as trees[i]'s LRU. insert_lru keeps the
// promoted key at the boundary of the shallower tier's recency list
// rather than jumping it to the front, honoring the relative recency
// ordering between tiers.
func (w *WorkingSetTree[K]) shiftForward(i int) {
	for i >= 0 && i+1 < len(w.trees) && w.trees[i].Height() < w.trees[i].MaxHeight() {
		key, ok := w.trees[i+1].RemoveMRU()
		if !ok {
			break
		}
		w.trees[i].InsertLRU(key)
	}
}

func (w *WorkingSetTree[K]) growTier() {
	idx := len(w.trees)
	tr, err := btree.New[K](w.minDegree, w.maxHeightFor(idx))
	if err != nil {
		// maxHeightFor(idx) only grows with idx, so this cannot fail once
		// the cascade's original parameters validated in New.
		panic(err)
	}
	w.trees = append(w.trees, tr)
}

// String renders every tier as "Tree i:\n<btree dump>\n", in shallow-to-
// deep order.
func (w *WorkingSetTree[K]) String() string {
	var b strings.Builder
	for i, tr := range w.trees {
		b.WriteString("Tree ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(":\n")
		b.WriteString(tr.String())
		b.WriteString("\n")
	}
	return b.String()
}

// PrintOrderedMRU renders every tier's recency list, MRU to LRU, as
// "Tree i:\nMRU-> … <-LRU\n".
func (w *WorkingSetTree[K]) PrintOrderedMRU() string {
	var b strings.Builder
	for i, tr := range w.trees {
		b.WriteString("Tree ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(":\n")
		b.WriteString(tr.PrintOrderedMRU())
		b.WriteString("\n")
	}
	return b.String()
}

// Close tears down every tier.
func (w *WorkingSetTree[K]) Close() {
	for _, tr := range w.trees {
		tr.Close()
	}
	w.trees = nil
}
