package state

import "github.com/atomicstack/penpal-tui/internal/provider"

type PenpalStore interface {
	Entries() []provider.PenpalSummary
	SetEntries([]provider.PenpalSummary)
	Find(id string) (provider.PenpalSummary, bool)
	Loaded() bool
}

type penpalStore struct {
	entries []provider.PenpalSummary
	loaded  bool
}

func NewPenpalStore() PenpalStore {
	return &penpalStore{}
}

func (p *penpalStore) Entries() []provider.PenpalSummary {
	return clonePenpals(p.entries)
}

func (p *penpalStore) SetEntries(entries []provider.PenpalSummary) {
	p.entries = clonePenpals(entries)
	p.loaded = true
}

func (p *penpalStore) Find(id string) (provider.PenpalSummary, bool) {
	for _, entry := range p.entries {
		if entry.ID == id {
			return clonePenpal(entry), true
		}
	}
	return provider.PenpalSummary{}, false
}

func (p *penpalStore) Loaded() bool {
	return p.loaded
}

func clonePenpal(entry provider.PenpalSummary) provider.PenpalSummary {
	if entry.Hobbies != nil {
		entry.Hobbies = append([]string(nil), entry.Hobbies...)
	}
	return entry
}

func clonePenpals(entries []provider.PenpalSummary) []provider.PenpalSummary {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]provider.PenpalSummary, len(entries))
	for i, entry := range entries {
		dup[i] = clonePenpal(entry)
	}
	return dup
}
