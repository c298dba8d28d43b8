package state

import "testing"

func newTestList(ids ...string) *List {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewList("test", items)
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if l.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
}

func TestMoveCursorUpDownClamps(t *testing.T) {
	l := newTestList("a", "b")
	if l.MoveCursorUp() {
		t.Fatalf("expected no movement above first row")
	}
	if !l.MoveCursorDown() || l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	if l.MoveCursorDown() {
		t.Fatalf("expected no movement past last row")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.Offset != 3 {
		t.Fatalf("expected offset 3, got %d", l.Offset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", l.Cursor)
	}

	l.Offset = 4
	l.EnsureCursorVisible(0)
	if l.Offset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.Offset)
	}

	l.Offset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.Offset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.Offset)
	}
}

func TestWindowReturnsVisibleSlice(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 3
	rows, pos := l.Window(2)
	if len(rows) != 2 || rows[0].ID != "c" || rows[1].ID != "d" {
		t.Fatalf("unexpected window %#v", rows)
	}
	if pos != 1 {
		t.Fatalf("expected cursor at window row 1, got %d", pos)
	}
	rows, pos = l.Window(0)
	if len(rows) != 5 || pos != 3 {
		t.Fatalf("expected full window, got %d rows cursor %d", len(rows), pos)
	}
}
