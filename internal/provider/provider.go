// Package provider defines the data collaborators the UI reads from. The UI
// never writes domain data; the only outbound signals are a penpal refresh
// and marking a message as opened.
package provider

import (
	"context"
	"strings"
	"time"
)

// Profile describes the signed-in learner.
type Profile struct {
	FirstName        string
	LastName         string
	NativeLanguage   string
	LearningLanguage string
	Region           string
}

// DisplayName joins the first and last name, skipping blanks.
func (p Profile) DisplayName() string {
	return strings.TrimSpace(strings.Join([]string{p.FirstName, p.LastName}, " "))
}

// PenpalSummary is one matched penpal as shown on a card.
type PenpalSummary struct {
	ID        string
	FirstName string
	LastName  string
	Region    string
	Status    string
	Hobbies   []string
}

// DisplayName joins the first and last name, skipping blanks.
func (p PenpalSummary) DisplayName() string {
	return strings.TrimSpace(strings.Join([]string{p.FirstName, p.LastName}, " "))
}

// Message is a received message.
type Message struct {
	ID       string
	PenpalID string
	From     string
	Body     string
	SentAt   time.Time
	Opened   bool
}

// Session is a scheduled exchange session.
type Session struct {
	ID       string
	PenpalID string
	Title    string
	StartsAt time.Time
}

// Stats summarises the current study week.
type Stats struct {
	MessagesSent      int
	WordsPractised    int
	SessionsCompleted int
	StreakDays        int
}

type ProfileProvider interface {
	// CurrentProfile returns nil when no profile exists.
	CurrentProfile(ctx context.Context) (*Profile, error)
}

type PenpalProvider interface {
	FetchAll(ctx context.Context) ([]PenpalSummary, error)
	Refresh(ctx context.Context) error
}

type MessagingProvider interface {
	RecentMessages(ctx context.Context) ([]Message, error)
	MarkOpened(ctx context.Context, id string) error
}

type CalendarProvider interface {
	Upcoming(ctx context.Context) ([]Session, error)
}

type StudyProvider interface {
	WeeklyStats(ctx context.Context) (Stats, error)
}

// Providers bundles every collaborator the application consumes.
type Providers struct {
	Profile  ProfileProvider
	Penpals  PenpalProvider
	Messages MessagingProvider
	Calendar CalendarProvider
	Study    StudyProvider
}

// FromFixture wires every provider slot to the same fixture.
func FromFixture(f *Fixture) Providers {
	return Providers{
		Profile:  f,
		Penpals:  f,
		Messages: f,
		Calendar: f,
		Study:    f,
	}
}
