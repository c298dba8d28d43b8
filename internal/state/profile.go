package state

import "github.com/atomicstack/penpal-tui/internal/provider"

type ProfileStore interface {
	Profile() *provider.Profile
	SetProfile(*provider.Profile)
	Loaded() bool
}

type profileStore struct {
	profile *provider.Profile
	loaded  bool
}

func NewProfileStore() ProfileStore {
	return &profileStore{}
}

func (p *profileStore) Profile() *provider.Profile {
	if p.profile == nil {
		return nil
	}
	dup := *p.profile
	return &dup
}

func (p *profileStore) SetProfile(profile *provider.Profile) {
	p.loaded = true
	if profile == nil {
		p.profile = nil
		return
	}
	dup := *profile
	p.profile = &dup
}

func (p *profileStore) Loaded() bool {
	return p.loaded
}
