package element

import "testing"

func TestRecencyListPushFrontOrder(t *testing.T) {
	l := NewRecencyList[int]()
	a := &Element[int]{Key: 1}
	b := &Element[int]{Key: 2}
	c := &Element[int]{Key: 3}

	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c)

	got := []int{}
	for e := l.Sentinel().Next; e != l.Sentinel(); e = e.Next {
		got = append(got, e.Key)
	}
	want := []int{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRecencyListUnlink(t *testing.T) {
	l := NewRecencyList[int]()
	a := &Element[int]{Key: 1}
	b := &Element[int]{Key: 2}
	l.PushFront(a)
	l.PushFront(b)

	l.Unlink(a)

	if front, _ := l.Front(); front.Key != 2 {
		t.Fatalf("expected front 2, got %d", front.Key)
	}
	if back, _ := l.Back(); back.Key != 2 {
		t.Fatalf("expected back 2 after unlinking the only other element, got %d", back.Key)
	}
}

func TestRecencyListMoveToBack(t *testing.T) {
	l := NewRecencyList[int]()
	a := &Element[int]{Key: 1}
	b := &Element[int]{Key: 2}
	c := &Element[int]{Key: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c)

	l.MoveToBack(c)

	front, _ := l.Front()
	back, _ := l.Back()
	if front.Key != 2 {
		t.Fatalf("expected front 2, got %d", front.Key)
	}
	if back.Key != 3 {
		t.Fatalf("expected back 3, got %d", back.Key)
	}
}

func TestRecencyListEmpty(t *testing.T) {
	l := NewRecencyList[int]()
	if !l.Empty() {
		t.Fatal("expected new list to be empty")
	}
	e := &Element[int]{Key: 1}
	l.PushFront(e)
	if l.Empty() {
		t.Fatal("expected non-empty list after push")
	}
	l.Unlink(e)
	l.sentinel.Next = &l.sentinel
	l.sentinel.Prev = &l.sentinel
	if !l.Empty() {
		t.Fatal("expected list to be empty again")
	}
}

func TestRelinkPreservesPosition(t *testing.T) {
	l := NewRecencyList[int]()
	a := &Element[int]{Key: 1}
	b := &Element[int]{Key: 2}
	c := &Element[int]{Key: 3}
	l.PushFront(a) // MRU-> a
	l.PushFront(b) // MRU-> b a
	l.PushFront(c) // MRU-> c b a

	// Replace b's slot with a different Element living at a new address,
	// the way the B-tree relinks a predecessor's slot during deletion.
	replacement := &Element[int]{Key: 99}
	Relink(b, replacement)

	got := []int{}
	for e := l.Sentinel().Next; e != l.Sentinel(); e = e.Next {
		got = append(got, e.Key)
	}
	want := []int{3, 99, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
