package state

// Item is one selectable row in a List. Label is what the user sees and
// what the filter matches against; Hint is extra text matched only as a
// fallback (for example a penpal's region or a message sender).
type Item struct {
	ID    string
	Label string
	Hint  string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
