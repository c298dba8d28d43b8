package state

import "github.com/atomicstack/penpal-tui/internal/provider"

type MessageStore interface {
	Entries() []provider.Message
	SetEntries([]provider.Message)
	Find(id string) (provider.Message, bool)
	// MarkOpened flags id as opened locally. It reports whether id was
	// present and previously unread.
	MarkOpened(id string) bool
	Unread() int
	Loaded() bool
}

type messageStore struct {
	entries []provider.Message
	loaded  bool
}

func NewMessageStore() MessageStore {
	return &messageStore{}
}

func (m *messageStore) Entries() []provider.Message {
	return cloneMessages(m.entries)
}

func (m *messageStore) SetEntries(entries []provider.Message) {
	m.entries = cloneMessages(entries)
	m.loaded = true
}

func (m *messageStore) Find(id string) (provider.Message, bool) {
	for _, entry := range m.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return provider.Message{}, false
}

func (m *messageStore) MarkOpened(id string) bool {
	for i := range m.entries {
		if m.entries[i].ID != id {
			continue
		}
		if m.entries[i].Opened {
			return false
		}
		m.entries[i].Opened = true
		return true
	}
	return false
}

func (m *messageStore) Unread() int {
	n := 0
	for _, entry := range m.entries {
		if !entry.Opened {
			n++
		}
	}
	return n
}

func (m *messageStore) Loaded() bool {
	return m.loaded
}

func cloneMessages(entries []provider.Message) []provider.Message {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]provider.Message, len(entries))
	copy(dup, entries)
	return dup
}
