package controllers

import (
	"strings"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// ConferenceForm is the wire representation of a conference.
type ConferenceForm struct {
	WebsafeKey           string   `json:"websafeKey"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	OrganizerUserID      string   `json:"organizerUserId"`
	OrganizerDisplayName string   `json:"organizerDisplayName"`
	Topics               []string `json:"topics"`
	City                 string   `json:"city"`
	StartDate            string   `json:"startDate,omitempty"`
	EndDate              string   `json:"endDate,omitempty"`
	Month                int      `json:"month"`
	MaxAttendees         int      `json:"maxAttendees"`
	SeatsAvailable       int      `json:"seatsAvailable"`
}

func toConferenceForm(v *domain.ConferenceView) ConferenceForm {
	c := v.Conference
	return ConferenceForm{
		WebsafeKey:           c.Key.Encode(),
		Name:                 c.Name,
		Description:          c.Description,
		OrganizerUserID:      c.OrganizerUserID,
		OrganizerDisplayName: v.OrganizerDisplayName,
		Topics:               c.Topics,
		City:                 c.City,
		StartDate:            domain.FormatDate(c.StartDate),
		EndDate:              domain.FormatDate(c.EndDate),
		Month:                c.Month,
		MaxAttendees:         c.MaxAttendees,
		SeatsAvailable:       c.SeatsAvailable,
	}
}

func toConferenceForms(views []*domain.ConferenceView) []ConferenceForm {
	out := make([]ConferenceForm, 0, len(views))
	for _, v := range views {
		out = append(out, toConferenceForm(v))
	}
	return out
}

// ConferenceRequest is the body of POST /conferences and PUT /conferences/{conferenceKey}.
// Omitted fields are left untouched on update and defaulted on create.
type ConferenceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Topics       []string `json:"topics"`
	City         *string  `json:"city"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	MaxAttendees *int     `json:"maxAttendees"`
}

// Validate implements helpers.Validator.
func (c ConferenceRequest) Validate() []string {
	var errs []string
	if c.MaxAttendees != nil && *c.MaxAttendees < 0 {
		errs = append(errs, "maxAttendees must not be negative")
	}
	return errs
}

func (c ConferenceRequest) toInput() domain.ConferenceInput {
	return domain.ConferenceInput{
		Name:         c.Name,
		Description:  c.Description,
		Topics:       c.Topics,
		City:         c.City,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		MaxAttendees: c.MaxAttendees,
	}
}

// ConferenceQueryFilter is one (field, operator, value) triple, e.g. {"field":"CITY","operator":"EQ","value":"London"}.
type ConferenceQueryFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ConferenceQueryRequest is the body of POST /conferences/query.
type ConferenceQueryRequest struct {
	Filters []ConferenceQueryFilter `json:"filters"`
}

func (q ConferenceQueryRequest) toFilters() []domain.ConferenceFilter {
	out := make([]domain.ConferenceFilter, 0, len(q.Filters))
	for _, f := range q.Filters {
		out = append(out, domain.ConferenceFilter{Field: f.Field, Operator: f.Operator, Value: f.Value})
	}
	return out
}

// ProfileForm is the wire representation of the caller's profile.
type ProfileForm struct {
	DisplayName            string   `json:"displayName"`
	MainEmail              string   `json:"mainEmail"`
	TeeShirtSize           string   `json:"teeShirtSize"`
	ConferenceKeysToAttend []string `json:"conferenceKeysToAttend"`
}

func toProfileForm(p *domain.Profile) ProfileForm {
	keys := p.ConferenceKeysToAttend
	if keys == nil {
		keys = []string{}
	}
	return ProfileForm{
		DisplayName:            p.DisplayName,
		MainEmail:              p.MainEmail,
		TeeShirtSize:           string(p.TeeShirtSize),
		ConferenceKeysToAttend: keys,
	}
}

// ProfileMiniForm is the body of PATCH /profile. Empty fields are left unchanged.
type ProfileMiniForm struct {
	DisplayName  string `json:"displayName"`
	TeeShirtSize string `json:"teeShirtSize"`
}

// SpeakerRequest is the body of POST /speakers.
type SpeakerRequest struct {
	Name string `json:"name"`
}

// Validate implements helpers.Validator.
func (s SpeakerRequest) Validate() []string {
	if strings.TrimSpace(s.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// SpeakerForm is the wire representation of a speaker.
type SpeakerForm struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toSpeakerForm(s *domain.Speaker) SpeakerForm {
	if s == nil {
		return SpeakerForm{}
	}
	return SpeakerForm{ID: s.Key.Encode(), Name: s.Name}
}

// SessionRequest is the body of POST /conferences/{conferenceKey}/sessions.
type SessionRequest struct {
	Name          string `json:"name"`
	Highlights    string `json:"highlights"`
	SpeakerKey    string `json:"speaker_key"`
	Duration      int    `json:"duration"`
	TypeOfSession string `json:"type_of_session"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
}

// Validate implements helpers.Validator.
func (s SessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if s.SpeakerKey == "" {
		errs = append(errs, "speaker_key is required")
	}
	if s.Date == "" {
		errs = append(errs, "date is required")
	}
	if s.StartTime == "" {
		errs = append(errs, "start_time is required")
	}
	if s.Duration < 0 {
		errs = append(errs, "duration must not be negative")
	}
	return errs
}

func (s SessionRequest) toInput() domain.SessionInput {
	return domain.SessionInput{
		Name:            s.Name,
		Highlights:      s.Highlights,
		SpeakerKey:      s.SpeakerKey,
		DurationMinutes: s.Duration,
		TypeOfSession:   s.TypeOfSession,
		Date:            s.Date,
		StartTime:       s.StartTime,
	}
}

// SessionForm is the wire representation of a session with its speaker.
type SessionForm struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Highlights    string      `json:"highlights"`
	Speaker       SpeakerForm `json:"speaker"`
	Duration      int         `json:"duration"`
	TypeOfSession string      `json:"type_of_session"`
	Date          string      `json:"date"`
	StartTime     string      `json:"start_time"`
}

func toSessionForm(v *domain.SessionView) SessionForm {
	s := v.Session
	return SessionForm{
		ID:            s.Key.Encode(),
		Name:          s.Name,
		Highlights:    s.Highlights,
		Speaker:       toSpeakerForm(v.Speaker),
		Duration:      s.DurationMinutes,
		TypeOfSession: s.TypeOfSession,
		Date:          s.Date.Format(domain.DateLayout),
		StartTime:     s.StartTime.String(),
	}
}

func toSessionForms(views []*domain.SessionView) []SessionForm {
	out := make([]SessionForm, 0, len(views))
	for _, v := range views {
		out = append(out, toSessionForm(v))
	}
	return out
}

// Swagger envelopes.

type ConferenceSuccessResponse struct {
	Data  ConferenceForm    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ConferenceListSuccessResponse struct {
	Data  []ConferenceForm  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ProfileSuccessResponse struct {
	Data  ProfileForm       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SpeakerSuccessResponse struct {
	Data  SpeakerForm       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SessionSuccessResponse struct {
	Data  SessionForm       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SessionListSuccessResponse struct {
	Data  []SessionForm     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type BooleanSuccessResponse struct {
	Data  bool              `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type StringSuccessResponse struct {
	Data  string            `json:"data"`
	Error *helpers.APIError `json:"error"`
}
