package state

import "github.com/atomicstack/penpal-tui/internal/provider"

type SessionStore interface {
	Entries() []provider.Session
	SetEntries([]provider.Session)
	// Next returns the first upcoming session in provider order.
	Next() (provider.Session, bool)
	Loaded() bool
}

type sessionStore struct {
	entries []provider.Session
	loaded  bool
}

func NewSessionStore() SessionStore {
	return &sessionStore{}
}

func (s *sessionStore) Entries() []provider.Session {
	return cloneSessions(s.entries)
}

func (s *sessionStore) SetEntries(entries []provider.Session) {
	s.entries = cloneSessions(entries)
	s.loaded = true
}

func (s *sessionStore) Next() (provider.Session, bool) {
	if len(s.entries) == 0 {
		return provider.Session{}, false
	}
	return s.entries[0], true
}

func (s *sessionStore) Loaded() bool {
	return s.loaded
}

func cloneSessions(entries []provider.Session) []provider.Session {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]provider.Session, len(entries))
	copy(dup, entries)
	return dup
}
