package domain

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DefaultSessionType is used when a session is created without a type.
const DefaultSessionType = "talk"

// InteractiveSessionTypes are the session types that count as hands-on.
var InteractiveSessionTypes = []string{"workshop", "hackathon", "lab"}

// TimeOfDay is a wall-clock time in minutes after midnight.
type TimeOfDay int

// ParseTimeOfDay parses a 24-hour HH:MM time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: time must be in format HH:MM (24 hour clock)", ErrInvalidInput)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String renders t as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Session is a talk, workshop or similar slot. Its key is a child of its conference key.
type Session struct {
	Key             *Key
	Name            string
	Highlights      string
	SpeakerKey      *Key
	DurationMinutes int
	TypeOfSession   string
	Date            time.Time
	StartTime       TimeOfDay
	CreatedAt       time.Time
}

// ConferenceKey returns the owning conference's key.
func (s *Session) ConferenceKey() *Key { return s.Key.Parent }

// SessionInput carries the fields accepted when creating a session.
type SessionInput struct {
	Name            string
	Highlights      string
	SpeakerKey      string
	DurationMinutes int
	TypeOfSession   string
	Date            string
	StartTime       string
}

// SessionView bundles a session with its speaker.
type SessionView struct {
	Session *Session
	Speaker *Speaker
}

// SessionFilter narrows a session listing. Zero values mean "no constraint".
type SessionFilter struct {
	// ConferenceKey restricts the listing to one conference (ancestor query).
	ConferenceKey *Key
	SpeakerKey    *Key
	Types         []string
	ExcludeTypes  []string
	Date          *time.Time
	// StartsAtOrBefore keeps sessions starting no later than the given time.
	StartsAtOrBefore *TimeOfDay
	// OrderByStartTime sorts by start time instead of creation order.
	OrderByStartTime bool
}

// Matches reports whether s satisfies every constraint of f.
func (f SessionFilter) Matches(s *Session) bool {
	if f.ConferenceKey != nil && !s.ConferenceKey().Equal(f.ConferenceKey) {
		return false
	}
	if f.SpeakerKey != nil && !s.SpeakerKey.Equal(f.SpeakerKey) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, s.TypeOfSession) {
		return false
	}
	if slices.Contains(f.ExcludeTypes, s.TypeOfSession) {
		return false
	}
	if f.Date != nil && !sameDay(*f.Date, s.Date) {
		return false
	}
	if f.StartsAtOrBefore != nil && s.StartTime > *f.StartsAtOrBefore {
		return false
	}
	return true
}

// Sort applies the filter's ordering; creation order breaks ties.
func (f SessionFilter) Sort(ss []*Session) {
	slices.SortStableFunc(ss, func(a, b *Session) int {
		if f.OrderByStartTime {
			if c := cmp.Compare(a.StartTime, b.StartTime); c != 0 {
				return c
			}
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SessionRepository defines storage for sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByKey(ctx context.Context, key *Key) (*Session, error)
	// GetMulti returns sessions in key order; missing sessions are skipped.
	GetMulti(ctx context.Context, keys []*Key) ([]*Session, error)
	List(ctx context.Context, f SessionFilter) ([]*Session, error)
}

// SessionService defines session and speaker operations.
type SessionService interface {
	CreateSpeaker(ctx context.Context, id Identity, name string) (*Speaker, error)
	CreateSession(ctx context.Context, id Identity, conferenceKey string, in SessionInput) (*SessionView, error)
	ListConferenceSessions(ctx context.Context, conferenceKey string) ([]*SessionView, error)
	ListConferenceSessionsByType(ctx context.Context, conferenceKey, typeOfSession string) ([]*SessionView, error)
	ListConferenceSessionsByDate(ctx context.Context, conferenceKey, date string) ([]*SessionView, error)
	ListInteractiveConferenceSessions(ctx context.Context, conferenceKey string) ([]*SessionView, error)
	ListSessionsBySpeaker(ctx context.Context, speakerKey string) ([]*SessionView, error)
	// ListNonWorkshopSessionsBefore7pm lists sessions of any conference that are not workshops
	// and start at or before 19:00.
	ListNonWorkshopSessionsBefore7pm(ctx context.Context) ([]*SessionView, error)
}

// WishlistService defines per-profile session wishlist operations. Each returns the full wishlist.
type WishlistService interface {
	AddSessionToWishlist(ctx context.Context, id Identity, sessionKey string) ([]*SessionView, error)
	// RemoveSessionFromWishlist is a no-op success when the session is not wishlisted.
	RemoveSessionFromWishlist(ctx context.Context, id Identity, sessionKey string) ([]*SessionView, error)
	ListWishlist(ctx context.Context, id Identity) ([]*SessionView, error)
}
