package state

// List holds the cursor, filter query and viewport of a scrollable,
// filterable list of items. Screens own one List per list they render so the
// position survives tab switches.
type List struct {
	ID      string
	Items   []Item
	Full    []Item
	Query   string
	// QueryCursor is a rune offset into Query.
	QueryCursor int
	Editing     bool
	Cursor      int
	Offset      int

	savedCursor int
}

// NewList constructs a List over items with the cursor on the first row.
func NewList(id string, items []Item) *List {
	l := &List{ID: id, savedCursor: -1}
	l.SetItems(items)
	return l
}

// IndexOf returns the index of id among the visible items, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// SetItems replaces the underlying items, keeping the cursor on the same id
// when it is still present.
func (l *List) SetItems(items []Item) {
	current, hadCurrent := l.Selected()
	prevOffset := l.Offset
	l.Full = CloneItems(items)
	l.applyFilter()
	if hadCurrent {
		if idx := l.IndexOf(current.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if len(l.Items) == 0 {
		l.Offset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.Offset = 0
		return
	}
	l.Offset = prevOffset
}

// Selected returns the item under the cursor.
func (l *List) Selected() (Item, bool) {
	if l == nil || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// Focus moves the cursor to id, clearing the filter first when the filter
// hides it. It reports whether id exists.
func (l *List) Focus(id string) bool {
	if idx := l.IndexOf(id); idx >= 0 {
		l.Cursor = idx
		return true
	}
	found := false
	for _, item := range l.Full {
		if item.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	l.Editing = false
	l.SetQuery("", 0)
	l.Cursor = l.IndexOf(id)
	return l.Cursor >= 0
}

// MoveCursorUp moves the cursor one row up.
func (l *List) MoveCursorUp() bool {
	return l.moveCursorBy(-1)
}

// MoveCursorDown moves the cursor one row down.
func (l *List) MoveCursorDown() bool {
	return l.moveCursorBy(1)
}
