package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetQuery updates the filter query and its rune cursor. Starting a query
// remembers the list cursor; clearing it restores that position.
func (l *List) SetQuery(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Query)
	l.Query = query
	l.QueryCursor = clamp(cursor, 0, len([]rune(query)))

	restore := -1
	switch {
	case trimmed != "" && prevTrimmed == "":
		l.savedCursor = l.Cursor
		l.Cursor = 0
	case trimmed != "":
		l.Cursor = 0
	case prevTrimmed != "":
		restore = l.savedCursor
	}

	l.applyFilter()

	if trimmed != "" && len(l.Items) > 0 {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
		return
	}
	if prevTrimmed != "" && trimmed == "" {
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		}
		l.savedCursor = -1
	}
}

// ClearQuery drops the filter and leaves edit mode.
func (l *List) ClearQuery() bool {
	changed := l.Query != "" || l.Editing
	l.Editing = false
	if l.Query != "" {
		l.SetQuery("", 0)
	}
	return changed
}

func (l *List) applyFilter() {
	l.Items = FilterItems(l.Full, l.Query)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.Offset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if l.Offset > len(l.Items)-1 {
		l.Offset = 0
	}
}

// QueryCursorPos returns the rune offset of the query cursor.
func (l *List) QueryCursorPos() int {
	return clamp(l.QueryCursor, 0, len([]rune(l.Query)))
}

// InsertQueryText inserts text at the query cursor.
func (l *List) InsertQueryText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Query)
	pos := l.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes the rune before the query cursor.
func (l *List) DeleteQueryRuneBackward() bool {
	runes := []rune(l.Query)
	pos := l.QueryCursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	l.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the query cursor.
func (l *List) DeleteQueryWordBackward() bool {
	runes := []rune(l.Query)
	pos := l.QueryCursorPos()
	if pos == 0 {
		return false
	}
	start := wordStart(runes, pos)
	updated := append(runes[:start:start], runes[pos:]...)
	l.SetQuery(string(updated), start)
	return true
}

// MoveQueryCursorStart moves the query cursor to the start.
func (l *List) MoveQueryCursorStart() bool {
	return l.moveQueryCursor(0)
}

// MoveQueryCursorEnd moves the query cursor to the end.
func (l *List) MoveQueryCursorEnd() bool {
	return l.moveQueryCursor(len([]rune(l.Query)))
}

// MoveQueryCursorWordBackward moves the query cursor to the previous word start.
func (l *List) MoveQueryCursorWordBackward() bool {
	return l.moveQueryCursor(wordStart([]rune(l.Query), l.QueryCursorPos()))
}

// MoveQueryCursorWordForward moves the query cursor past the next word.
func (l *List) MoveQueryCursorWordForward() bool {
	runes := []rune(l.Query)
	i := l.QueryCursorPos()
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return l.moveQueryCursor(i)
}

// MoveQueryCursorRuneBackward moves the query cursor one rune left.
func (l *List) MoveQueryCursorRuneBackward() bool {
	return l.moveQueryCursor(l.QueryCursorPos() - 1)
}

// MoveQueryCursorRuneForward moves the query cursor one rune right.
func (l *List) MoveQueryCursorRuneForward() bool {
	return l.moveQueryCursor(l.QueryCursorPos() + 1)
}

func (l *List) moveQueryCursor(pos int) bool {
	pos = clamp(pos, 0, len([]rune(l.Query)))
	if pos == l.QueryCursorPos() {
		return false
	}
	l.QueryCursor = pos
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// FilterItems returns the items whose label or hint fuzzily matches query,
// in their original order. When nothing matches fuzzily, a plain substring
// match over label, id and hint is tried instead.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	matches := make(map[int]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, labels(items)) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, hints(items)) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	if len(matches) > 0 {
		filtered := make([]Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if containsFold(item.Label, lower) || containsFold(item.ID, lower) || containsFold(item.Hint, lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the index of the item that best matches query:
// exact label or id first, then prefixes, then substrings, then the closest
// fuzzy rank. Empty item lists yield -1.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	passes := []func(Item) bool{
		func(it Item) bool { return strings.EqualFold(it.Label, trimmed) || strings.EqualFold(it.ID, trimmed) },
		func(it Item) bool { return strings.HasPrefix(strings.ToLower(it.Label), lower) },
		func(it Item) bool { return strings.HasPrefix(strings.ToLower(it.ID), lower) },
		func(it Item) bool { return containsFold(it.ID, lower) },
		func(it Item) bool { return containsFold(it.Label, lower) },
	}
	for _, match := range passes {
		for i, item := range items {
			if match(item) {
				return i
			}
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels(items))
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func hints(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Hint
	}
	return out
}

func containsFold(s, lower string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lower)
}
