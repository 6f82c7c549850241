package domain

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the wire and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Defaults applied to a conference on creation when the field is missing.
const (
	DefaultConferenceCity = "Default City"
)

// DefaultConferenceTopics is applied on creation when no topic is given.
var DefaultConferenceTopics = []string{"Default", "Topic"}

// Conference is an event organized by a user. Its key is a child of the organizer's profile key.
type Conference struct {
	Key             *Key
	Name            string
	Description     string
	OrganizerUserID string
	Topics          []string
	City            string
	StartDate       *time.Time
	EndDate         *time.Time
	// Month is derived from StartDate (0 when StartDate is unset).
	Month          int
	MaxAttendees   int
	SeatsAvailable int
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewConferenceKey returns a fresh conference key under the organizer's profile.
func NewConferenceKey(organizerUserID, id string) *Key {
	return NewKey(KindConference, id, ProfileKey(organizerUserID))
}

// SetStartDate sets StartDate and keeps Month in sync.
func (c *Conference) SetStartDate(d *time.Time) {
	c.StartDate = d
	if d == nil {
		c.Month = 0
		return
	}
	c.Month = int(d.Month())
}

// SetMaxAttendees changes the capacity while keeping already taken seats taken.
// SeatsAvailable never goes below zero.
func (c *Conference) SetMaxAttendees(capacity int) {
	taken := c.MaxAttendees - c.SeatsAvailable
	if taken < 0 {
		taken = 0
	}
	c.MaxAttendees = capacity
	c.SeatsAvailable = capacity - taken
	if c.SeatsAvailable < 0 {
		c.SeatsAvailable = 0
	}
}

// TakeSeat claims one seat. It fails with ErrConflict when the conference is full.
func (c *Conference) TakeSeat() error {
	if c.SeatsAvailable <= 0 {
		return fmt.Errorf("%w: there are no seats available", ErrConflict)
	}
	c.SeatsAvailable--
	return nil
}

// ReleaseSeat gives one seat back, never exceeding MaxAttendees.
func (c *Conference) ReleaseSeat() {
	c.SeatsAvailable++
	if c.SeatsAvailable > c.MaxAttendees {
		c.SeatsAvailable = c.MaxAttendees
	}
}

// IsOrganizedBy reports whether userID owns the conference.
func (c *Conference) IsOrganizedBy(userID string) bool {
	return userID != "" && c.OrganizerUserID == userID
}

// ConferenceInput carries the user-editable fields of a conference. Nil means "not provided".
type ConferenceInput struct {
	Name         *string
	Description  *string
	Topics       []string
	City         *string
	StartDate    *string
	EndDate      *string
	MaxAttendees *int
}

// ConferenceView bundles a conference with its organizer's display name.
type ConferenceView struct {
	Conference           *Conference
	OrganizerDisplayName string
}

// ConferenceRepository defines storage for conferences.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	GetByKey(ctx context.Context, key *Key) (*Conference, error)
	// GetMulti returns conferences in key order; missing conferences are skipped.
	GetMulti(ctx context.Context, keys []*Key) ([]*Conference, error)
	// Update writes c if its stored version still equals c.Version, then bumps c.Version.
	// Returns ErrConcurrentUpdate otherwise.
	Update(ctx context.Context, c *Conference) error
	// ListByOrganizer is the ancestor query under the organizer's profile, oldest first.
	ListByOrganizer(ctx context.Context, organizerUserID string) ([]*Conference, error)
	Query(ctx context.Context, q *ConferenceQuery) ([]*Conference, error)
}

// RegistrationStore updates a profile and a conference as one atomic unit.
type RegistrationStore interface {
	// UpdateAttendance loads the user's profile and the conference, calls fn, and persists both
	// records only if fn returns nil. An error from fn aborts the unit and is returned unchanged.
	// A lost race yields ErrConcurrentUpdate and nothing is written.
	UpdateAttendance(ctx context.Context, userID string, conferenceKey *Key, fn func(p *Profile, c *Conference) error) error
}

// ConferenceService defines conference CRUD, query and registration operations.
type ConferenceService interface {
	CreateConference(ctx context.Context, id Identity, in ConferenceInput) (*ConferenceView, error)
	UpdateConference(ctx context.Context, id Identity, conferenceKey string, in ConferenceInput) (*ConferenceView, error)
	GetConference(ctx context.Context, conferenceKey string) (*ConferenceView, error)
	ListConferencesCreated(ctx context.Context, id Identity) ([]*ConferenceView, error)
	QueryConferences(ctx context.Context, filters []ConferenceFilter) ([]*ConferenceView, error)
	ListConferencesToAttend(ctx context.Context, id Identity) ([]*ConferenceView, error)
	// RegisterForConference returns true once the seat is taken.
	RegisterForConference(ctx context.Context, id Identity, conferenceKey string) (bool, error)
	// UnregisterFromConference returns false (and no error) when the user was not registered.
	UnregisterFromConference(ctx context.Context, id Identity, conferenceKey string) (bool, error)
}

// ParseDate parses a YYYY-MM-DD date; longer inputs are truncated to the date part.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in format YYYY-MM-DD", ErrInvalidInput)
	}
	return d, nil
}

// FormatDate renders d with DateLayout, or "" when d is nil.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}
