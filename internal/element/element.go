// Package element implements the intrusive recency-list node shared by every
// key stored in a BTree. An Element lives inside a Node's key slot (it is
// moved by value during splits, merges, and steals); its Prev/Next pointers
// thread it into its tree's recency list independently of where it
// physically sits in the B-tree.
package element

import (
	"cmp"
	"fmt"
)

// Element is a single key plus its recency-list linkage. Prev points toward
// the more-recently-used neighbor, Next toward the less-recently-used one.
type Element[K cmp.Ordered] struct {
	Key  K
	Prev *Element[K]
	Next *Element[K]
}

// KeyToString renders an element as "#key,next_key,prev_key#", matching the
// wire format used by node/tree string dumps.
func KeyToString[K cmp.Ordered](e *Element[K]) string {
	return fmt.Sprintf("#%v,%v,%v#", e.Key, e.Next.Key, e.Prev.Key)
}

// Patch re-stitches e's neighbors to point back at e. It must be called
// immediately after any operation that copies an Element by value into a
// new slot: the copy carries stale Prev/Next targets from its old address
// until Patch corrects them.
func Patch[K cmp.Ordered](e *Element[K]) {
	e.Prev.Next = e
	e.Next.Prev = e
}

// Relink splices newPos into the list position currently occupied by old,
// without touching old's Key. Used by the B-tree's predecessor/successor
// substitution: the slot being overwritten keeps its exact recency
// position while a different Element (physically elsewhere) inherits it.
func Relink[K cmp.Ordered](old, newPos *Element[K]) {
	newPos.Prev = old.Prev
	newPos.Next = old.Next
	old.Prev.Next = newPos
	old.Next.Prev = newPos
}

// RecencyList is a sentinel-anchored circular doubly-linked list. The
// sentinel's Next is the most-recently-used Element (or the sentinel
// itself when empty); its Prev is the least-recently-used Element.
type RecencyList[K cmp.Ordered] struct {
	sentinel Element[K]
}

// NewRecencyList returns an empty recency list.
func NewRecencyList[K cmp.Ordered]() *RecencyList[K] {
	l := &RecencyList[K]{}
	l.sentinel.Next = &l.sentinel
	l.sentinel.Prev = &l.sentinel
	return l
}

// Sentinel returns the list's anchor element. Walking Next from it visits
// elements MRU-first; walking Prev visits them LRU-first. The sentinel is
// never itself a live key.
func (l *RecencyList[K]) Sentinel() *Element[K] {
	return &l.sentinel
}

// Empty reports whether the list holds no elements.
func (l *RecencyList[K]) Empty() bool {
	return l.sentinel.Next == &l.sentinel
}

// PushFront splices e in as the new MRU element.
func (l *RecencyList[K]) PushFront(e *Element[K]) {
	e.Prev = &l.sentinel
	e.Next = l.sentinel.Next
	l.sentinel.Next.Prev = e
	l.sentinel.Next = e
}

// Unlink removes e from the list. e's own Prev/Next are left stale; the
// caller is expected to discard or overwrite e immediately (this happens
// during leaf key removal, where the slot is about to be shifted over).
func (l *RecencyList[K]) Unlink(e *Element[K]) {
	e.Prev.Next = e.Next
	e.Next.Prev = e.Prev
}

// MoveToBack unlinks e and re-splices it as the new LRU element.
func (l *RecencyList[K]) MoveToBack(e *Element[K]) {
	l.Unlink(e)
	e.Prev = l.sentinel.Prev
	e.Next = &l.sentinel
	l.sentinel.Prev.Next = e
	l.sentinel.Prev = e
}

// Front returns the MRU element, or (nil, false) if the list is empty.
func (l *RecencyList[K]) Front() (*Element[K], bool) {
	if l.Empty() {
		return nil, false
	}
	return l.sentinel.Next, true
}

// Back returns the LRU element, or (nil, false) if the list is empty.
func (l *RecencyList[K]) Back() (*Element[K], bool) {
	if l.Empty() {
		return nil, false
	}
	return l.sentinel.Prev, true
}
