package provider

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

//go:embed fixtures/default.toml
var defaultFixture string

var ErrNotFound = errors.New("not found")

// duration decodes TOML strings such as "90s" or "2h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration %q must not be negative", text)
	}
	*d = duration(parsed)
	return nil
}

type fixtureDoc struct {
	Profile  *fixtureProfile `toml:"profile"`
	Penpals  []fixturePenpal `toml:"penpals"`
	Messages []fixtureMsg    `toml:"messages"`
	Sessions []fixtureSess   `toml:"sessions"`
	Stats    fixtureStats    `toml:"stats"`
}

type fixtureProfile struct {
	FirstName        string `toml:"first_name"`
	LastName         string `toml:"last_name"`
	NativeLanguage   string `toml:"native_language"`
	LearningLanguage string `toml:"learning_language"`
	Region           string `toml:"region"`
}

type fixturePenpal struct {
	ID        string   `toml:"id"`
	FirstName string   `toml:"first_name"`
	LastName  string   `toml:"last_name"`
	Region    string   `toml:"region"`
	Status    string   `toml:"status"`
	Hobbies   []string `toml:"hobbies"`
}

type fixtureMsg struct {
	ID           string   `toml:"id"`
	PenpalID     string   `toml:"penpal_id"`
	From         string   `toml:"from"`
	Body         string   `toml:"body"`
	SentAgo      duration `toml:"sent_ago"`
	DeliverAfter duration `toml:"deliver_after"`
	Opened       bool     `toml:"opened"`
}

type fixtureSess struct {
	ID       string   `toml:"id"`
	PenpalID string   `toml:"penpal_id"`
	Title    string   `toml:"title"`
	StartsIn duration `toml:"starts_in"`
}

type fixtureStats struct {
	MessagesSent      int `toml:"messages_sent"`
	WordsPractised    int `toml:"words_practised"`
	SessionsCompleted int `toml:"sessions_completed"`
	StreakDays        int `toml:"streak_days"`
}

type scheduledMessage struct {
	msg       Message
	visibleAt time.Time
}

// Fixture serves every provider contract from a TOML document held in
// memory. Messages with deliver_after appear only once that much time has
// passed since the fixture was opened. Nothing is written back to disk.
type Fixture struct {
	mu       sync.Mutex
	path     string
	now      func() time.Time
	opened   time.Time
	profile  *Profile
	penpals  []PenpalSummary
	messages []scheduledMessage
	sessions []Session
	stats    Stats
	refresh  int
}

// FixtureOption customises a Fixture.
type FixtureOption func(*Fixture)

// WithClock overrides the time source.
func WithClock(now func() time.Time) FixtureOption {
	return func(f *Fixture) {
		if now != nil {
			f.now = now
		}
	}
}

// LoadFixture reads the fixture at path, or the embedded default when path
// is empty.
func LoadFixture(path string, opts ...FixtureOption) (*Fixture, error) {
	if strings.TrimSpace(path) == "" {
		return ParseFixture(defaultFixture, opts...)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	f, err := ParseFixture(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// ParseFixture decodes a fixture document.
func ParseFixture(data string, opts ...FixtureOption) (*Fixture, error) {
	f := &Fixture{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	var doc fixtureDoc
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	f.opened = f.now()
	f.apply(doc)
	return f, nil
}

func (f *Fixture) apply(doc fixtureDoc) {
	if doc.Profile != nil {
		f.profile = &Profile{
			FirstName:        doc.Profile.FirstName,
			LastName:         doc.Profile.LastName,
			NativeLanguage:   doc.Profile.NativeLanguage,
			LearningLanguage: doc.Profile.LearningLanguage,
			Region:           doc.Profile.Region,
		}
	}
	f.penpals = decodePenpals(doc.Penpals)
	f.messages = make([]scheduledMessage, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		visibleAt := f.opened.Add(time.Duration(m.DeliverAfter))
		sentAt := visibleAt
		if m.DeliverAfter == 0 {
			sentAt = f.opened.Add(-time.Duration(m.SentAgo))
		}
		f.messages = append(f.messages, scheduledMessage{
			msg: Message{
				ID:       idOrNew(m.ID),
				PenpalID: m.PenpalID,
				From:     m.From,
				Body:     m.Body,
				SentAt:   sentAt,
				Opened:   m.Opened,
			},
			visibleAt: visibleAt,
		})
	}
	f.sessions = make([]Session, 0, len(doc.Sessions))
	for _, s := range doc.Sessions {
		f.sessions = append(f.sessions, Session{
			ID:       idOrNew(s.ID),
			PenpalID: s.PenpalID,
			Title:    s.Title,
			StartsAt: f.opened.Add(time.Duration(s.StartsIn)),
		})
	}
	f.stats = Stats(doc.Stats)
}

// penpalNamespace seeds the ids of penpals declared without one, so the same
// entry keeps its id every time the document is read.
var penpalNamespace = uuid.MustParse("5b0c3d8e-7f4a-4c11-9a52-2f0e6d1c8b47")

func decodePenpals(in []fixturePenpal) []PenpalSummary {
	out := make([]PenpalSummary, 0, len(in))
	seen := make(map[string]int)
	for _, p := range in {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			name := strings.ToLower(strings.TrimSpace(p.FirstName + " " + p.LastName))
			id = uuid.NewSHA1(penpalNamespace, []byte(fmt.Sprintf("%s#%d", name, seen[name]))).String()
			seen[name]++
		}
		out = append(out, PenpalSummary{
			ID:        id,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Region:    p.Region,
			Status:    p.Status,
			Hobbies:   append([]string(nil), p.Hobbies...),
		})
	}
	return out
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

// CurrentProfile implements ProfileProvider.
func (f *Fixture) CurrentProfile(ctx context.Context) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return nil, nil
	}
	p := *f.profile
	return &p, nil
}

// FetchAll implements PenpalProvider.
func (f *Fixture) FetchAll(ctx context.Context) ([]PenpalSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PenpalSummary, len(f.penpals))
	for i, p := range f.penpals {
		p.Hobbies = append([]string(nil), p.Hobbies...)
		out[i] = p
	}
	return out, nil
}

// Refresh implements PenpalProvider. File-backed fixtures re-read their
// penpal list so edits show up without restarting.
func (f *Fixture) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	path := f.path
	f.refresh++
	f.mu.Unlock()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("refresh penpals: %w", err)
	}
	var doc fixtureDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return fmt.Errorf("refresh penpals: %w", err)
	}
	penpals := decodePenpals(doc.Penpals)
	f.mu.Lock()
	f.penpals = penpals
	f.mu.Unlock()
	return nil
}

// RefreshCount reports how many times Refresh has been called.
func (f *Fixture) RefreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh
}

// RecentMessages implements MessagingProvider, newest first.
func (f *Fixture) RecentMessages(ctx context.Context) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := f.now()
	f.mu.Lock()
	out := make([]Message, 0, len(f.messages))
	for _, sm := range f.messages {
		if sm.visibleAt.After(now) {
			continue
		}
		out = append(out, sm.msg)
	}
	f.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentAt.After(out[j].SentAt)
	})
	return out, nil
}

// MarkOpened implements MessagingProvider.
func (f *Fixture) MarkOpened(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := f.now()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		sm := &f.messages[i]
		if sm.msg.ID != id || sm.visibleAt.After(now) {
			continue
		}
		sm.msg.Opened = true
		return nil
	}
	return fmt.Errorf("message %q: %w", id, ErrNotFound)
}

// Upcoming implements CalendarProvider, soonest first, skipping sessions
// that already started.
func (f *Fixture) Upcoming(ctx context.Context) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := f.now()
	f.mu.Lock()
	out := make([]Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		if s.StartsAt.Before(now) {
			continue
		}
		out = append(out, s)
	}
	f.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out, nil
}

// WeeklyStats implements StudyProvider.
func (f *Fixture) WeeklyStats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, nil
}
