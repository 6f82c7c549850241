package dynamo

import (
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type profileItem struct {
	PK                     string    `dynamodbav:"PK"`
	SK                     string    `dynamodbav:"SK"`
	Kind                   string    `dynamodbav:"kind"`
	UserID                 string    `dynamodbav:"userId"`
	DisplayName            string    `dynamodbav:"displayName"`
	MainEmail              string    `dynamodbav:"mainEmail"`
	TeeShirtSize           string    `dynamodbav:"teeShirtSize"`
	ConferenceKeysToAttend []string  `dynamodbav:"conferenceKeysToAttend"`
	SessionKeysWishlist    []string  `dynamodbav:"sessionKeysWishlist"`
	Version                int64     `dynamodbav:"version"`
	CreatedAt              time.Time `dynamodbav:"createdAt"`
	UpdatedAt              time.Time `dynamodbav:"updatedAt"`
}

func newProfileItem(p *domain.Profile) profileItem {
	k := domain.ProfileKey(p.UserID)
	return profileItem{
		PK:                     partitionKey(k),
		SK:                     k.Path(),
		Kind:                   domain.KindProfile,
		UserID:                 p.UserID,
		DisplayName:            p.DisplayName,
		MainEmail:              p.MainEmail,
		TeeShirtSize:           string(p.TeeShirtSize),
		ConferenceKeysToAttend: nonNil(p.ConferenceKeysToAttend),
		SessionKeysWishlist:    nonNil(p.SessionKeysWishlist),
		Version:                p.Version,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (it profileItem) toDomain() *domain.Profile {
	return &domain.Profile{
		UserID:                 it.UserID,
		DisplayName:            it.DisplayName,
		MainEmail:              it.MainEmail,
		TeeShirtSize:           domain.TeeShirtSize(it.TeeShirtSize),
		ConferenceKeysToAttend: nonNil(it.ConferenceKeysToAttend),
		SessionKeysWishlist:    nonNil(it.SessionKeysWishlist),
		Version:                it.Version,
		CreatedAt:              it.CreatedAt,
		UpdatedAt:              it.UpdatedAt,
	}
}

type conferenceItem struct {
	PK              string    `dynamodbav:"PK"`
	SK              string    `dynamodbav:"SK"`
	Kind            string    `dynamodbav:"kind"`
	OrganizerUserID string    `dynamodbav:"organizerUserId"`
	Name            string    `dynamodbav:"name"`
	Description     string    `dynamodbav:"description"`
	Topics          []string  `dynamodbav:"topics"`
	City            string    `dynamodbav:"city"`
	StartDate       string    `dynamodbav:"startDate,omitempty"`
	EndDate         string    `dynamodbav:"endDate,omitempty"`
	Month           int       `dynamodbav:"month"`
	MaxAttendees    int       `dynamodbav:"maxAttendees"`
	SeatsAvailable  int       `dynamodbav:"seatsAvailable"`
	Version         int64     `dynamodbav:"version"`
	CreatedAt       time.Time `dynamodbav:"createdAt"`
	UpdatedAt       time.Time `dynamodbav:"updatedAt"`
}

func newConferenceItem(c *domain.Conference) conferenceItem {
	return conferenceItem{
		PK:              partitionKey(c.Key),
		SK:              c.Key.Path(),
		Kind:            domain.KindConference,
		OrganizerUserID: c.OrganizerUserID,
		Name:            c.Name,
		Description:     c.Description,
		Topics:          nonNil(c.Topics),
		City:            c.City,
		StartDate:       domain.FormatDate(c.StartDate),
		EndDate:         domain.FormatDate(c.EndDate),
		Month:           c.Month,
		MaxAttendees:    c.MaxAttendees,
		SeatsAvailable:  c.SeatsAvailable,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (it conferenceItem) toDomain() (*domain.Conference, error) {
	key, err := domain.ParseKeyPath(it.SK)
	if err != nil {
		return nil, fmt.Errorf("stored conference key %q: %w", it.SK, err)
	}
	c := &domain.Conference{
		Key:             key,
		OrganizerUserID: it.OrganizerUserID,
		Name:            it.Name,
		Description:     it.Description,
		Topics:          nonNil(it.Topics),
		City:            it.City,
		Month:           it.Month,
		MaxAttendees:    it.MaxAttendees,
		SeatsAvailable:  it.SeatsAvailable,
		Version:         it.Version,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
	if c.StartDate, err = optionalDate(it.StartDate); err != nil {
		return nil, err
	}
	if c.EndDate, err = optionalDate(it.EndDate); err != nil {
		return nil, err
	}
	return c, nil
}

type speakerItem struct {
	PK        string    `dynamodbav:"PK"`
	SK        string    `dynamodbav:"SK"`
	Kind      string    `dynamodbav:"kind"`
	Name      string    `dynamodbav:"name"`
	CreatedAt time.Time `dynamodbav:"createdAt"`
}

func newSpeakerItem(s *domain.Speaker) speakerItem {
	return speakerItem{
		PK:        partitionKey(s.Key),
		SK:        s.Key.Path(),
		Kind:      domain.KindSpeaker,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
	}
}

func (it speakerItem) toDomain() (*domain.Speaker, error) {
	key, err := domain.ParseKeyPath(it.SK)
	if err != nil {
		return nil, fmt.Errorf("stored speaker key %q: %w", it.SK, err)
	}
	return &domain.Speaker{Key: key, Name: it.Name, CreatedAt: it.CreatedAt}, nil
}

type sessionItem struct {
	PK              string    `dynamodbav:"PK"`
	SK              string    `dynamodbav:"SK"`
	Kind            string    `dynamodbav:"kind"`
	SpeakerKey      string    `dynamodbav:"speakerKey"`
	Name            string    `dynamodbav:"name"`
	Highlights      string    `dynamodbav:"highlights"`
	DurationMinutes int       `dynamodbav:"durationMinutes"`
	TypeOfSession   string    `dynamodbav:"typeOfSession"`
	Date            string    `dynamodbav:"date"`
	StartMinutes    int       `dynamodbav:"startMinutes"`
	CreatedAt       time.Time `dynamodbav:"createdAt"`
}

func newSessionItem(s *domain.Session) sessionItem {
	return sessionItem{
		PK:              partitionKey(s.Key),
		SK:              s.Key.Path(),
		Kind:            domain.KindSession,
		SpeakerKey:      s.SpeakerKey.Path(),
		Name:            s.Name,
		Highlights:      s.Highlights,
		DurationMinutes: s.DurationMinutes,
		TypeOfSession:   s.TypeOfSession,
		Date:            s.Date.Format(domain.DateLayout),
		StartMinutes:    int(s.StartTime),
		CreatedAt:       s.CreatedAt,
	}
}

func (it sessionItem) toDomain() (*domain.Session, error) {
	key, err := domain.ParseKeyPath(it.SK)
	if err != nil {
		return nil, fmt.Errorf("stored session key %q: %w", it.SK, err)
	}
	speaker, err := domain.ParseKeyPath(it.SpeakerKey)
	if err != nil {
		return nil, fmt.Errorf("stored speaker key %q: %w", it.SpeakerKey, err)
	}
	date, err := domain.ParseDate(it.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Key:             key,
		Name:            it.Name,
		Highlights:      it.Highlights,
		SpeakerKey:      speaker,
		DurationMinutes: it.DurationMinutes,
		TypeOfSession:   it.TypeOfSession,
		Date:            date,
		StartTime:       domain.TimeOfDay(it.StartMinutes),
		CreatedAt:       it.CreatedAt,
	}, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
