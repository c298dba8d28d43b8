package state

import "github.com/atomicstack/penpal-tui/internal/provider"

type StatsStore interface {
	Stats() provider.Stats
	SetStats(provider.Stats)
	Loaded() bool
}

type statsStore struct {
	stats  provider.Stats
	loaded bool
}

func NewStatsStore() StatsStore {
	return &statsStore{}
}

func (s *statsStore) Stats() provider.Stats {
	return s.stats
}

func (s *statsStore) SetStats(stats provider.Stats) {
	s.stats = stats
	s.loaded = true
}

func (s *statsStore) Loaded() bool {
	return s.loaded
}
