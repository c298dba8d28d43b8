package state

import (
	"reflect"
	"testing"
)

func TestSetQueryTracksCursorAndRestoresPosition(t *testing.T) {
	l := newTestList("one", "two", "three")
	l.Cursor = 2
	l.SetQuery("two", len("two"))

	if l.Query != "two" || l.QueryCursor != len("two") {
		t.Fatalf("unexpected query state %q/%d", l.Query, l.QueryCursor)
	}
	if l.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", l.Cursor)
	}
	if len(l.Items) != 1 || l.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", l.Items)
	}

	l.SetQuery("", 0)
	if l.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", l.Cursor)
	}
}

func TestInsertAndDeleteQueryText(t *testing.T) {
	l := newTestList("alpha")

	if !l.InsertQueryText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if l.Query != "ab" || l.QueryCursor != 2 {
		t.Fatalf("unexpected query state %q/%d", l.Query, l.QueryCursor)
	}

	l.QueryCursor = 1
	if !l.InsertQueryText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if l.Query != "azb" || l.QueryCursor != 2 {
		t.Fatalf("unexpected query state %q/%d", l.Query, l.QueryCursor)
	}

	if !l.DeleteQueryRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if l.Query != "ab" || l.QueryCursor != 1 {
		t.Fatalf("unexpected query state after delete %q/%d", l.Query, l.QueryCursor)
	}

	l.SetQuery("abc def", len("abc def"))
	if !l.DeleteQueryWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if l.Query != "abc " {
		t.Fatalf("expected trailing word removed, got %q", l.Query)
	}

	l.SetQuery("abc", 0)
	if l.DeleteQueryRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if l.InsertQueryText("") {
		t.Fatal("expected empty insert to be rejected")
	}
}

func TestQueryCursorNavigation(t *testing.T) {
	l := newTestList("one", "two")
	l.SetQuery("one two", len("one two"))

	if !l.MoveQueryCursorWordBackward() || l.QueryCursor != 4 {
		t.Fatalf("expected cursor at 4, got %d", l.QueryCursor)
	}
	if !l.MoveQueryCursorWordForward() || l.QueryCursor != len("one two") {
		t.Fatalf("expected cursor restored to end, got %d", l.QueryCursor)
	}
	if !l.MoveQueryCursorRuneBackward() || l.QueryCursor != len("one two")-1 {
		t.Fatalf("expected cursor len-1, got %d", l.QueryCursor)
	}
	if !l.MoveQueryCursorRuneForward() || l.QueryCursor != len("one two") {
		t.Fatalf("expected cursor at end, got %d", l.QueryCursor)
	}
	if l.MoveQueryCursorRuneForward() {
		t.Fatal("expected no movement past end")
	}
	if !l.MoveQueryCursorStart() || l.QueryCursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", l.QueryCursor)
	}
	if !l.MoveQueryCursorEnd() {
		t.Fatal("expected move back to end")
	}
}

func TestClearQuery(t *testing.T) {
	l := newTestList("alpha", "beta")
	l.Editing = true
	l.SetQuery("bet", 3)
	if !l.ClearQuery() {
		t.Fatal("expected clear to report a change")
	}
	if l.Editing || l.Query != "" || len(l.Items) != 2 {
		t.Fatalf("unexpected state after clear: editing=%v query=%q items=%d", l.Editing, l.Query, len(l.Items))
	}
	if l.ClearQuery() {
		t.Fatal("expected second clear to be a no-op")
	}
}

func TestFilterItemsFallsBackToHint(t *testing.T) {
	items := []Item{
		{ID: "pp-1", Label: "Kenji Watanabe", Hint: "Osaka"},
		{ID: "pp-2", Label: "Lucía Ortega", Hint: "Valencia"},
	}
	filtered := FilterItems(items, "kenji")
	if len(filtered) != 1 || filtered[0].ID != "pp-1" {
		t.Fatalf("unexpected label matches %#v", filtered)
	}
	filtered = FilterItems(items, "valencia")
	if len(filtered) != 1 || filtered[0].ID != "pp-2" {
		t.Fatalf("expected hint match, got %#v", filtered)
	}
	if len(FilterItems(items, "zzzz")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
	clone := CloneItems(items)
	if &clone[0] == &items[0] {
		t.Fatal("expected clone to allocate new backing array")
	}
}

func TestFilterItemsMatchesHintAlongsideLabels(t *testing.T) {
	items := []Item{
		{ID: "pp-1", Label: "Martina Rossi", Hint: "Italy · chess"},
		{ID: "pp-2", Label: "Kenji Tanaka", Hint: "Japan · art"},
		{ID: "pp-3", Label: "Ola Berg", Hint: "Norway · skiing"},
	}
	filtered := FilterItems(items, "art")
	ids := make([]string, len(filtered))
	for i, item := range filtered {
		ids[i] = item.ID
	}
	if !reflect.DeepEqual(ids, []string{"pp-1", "pp-2"}) {
		t.Fatalf("expected label and hint matches in order, got %v", ids)
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}

	if idx := BestMatchIndex(items, "Second"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "two"); idx != 1 {
		t.Fatalf("expected ID match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetQuerySelectsFuzzyMatch(t *testing.T) {
	items := []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	l := NewList("id", items)
	l.SetQuery("alp", 3)
	if l.Cursor != 0 {
		t.Fatalf("expected fuzzy match to select first item, got %d", l.Cursor)
	}
	if !reflect.DeepEqual(l.Items, []Item{{ID: "1", Label: "Alpha"}}) {
		t.Fatalf("expected filtered items to contain Alpha, got %#v", l.Items)
	}
}
