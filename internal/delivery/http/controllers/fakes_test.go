package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var caller = domain.Identity{UserID: "u1", Email: "u1@example.com", Nickname: "Gopher"}

// newRequest builds a request with optional JSON body and path values; authed attaches caller.
func newRequest(method, target, body string, authed bool, pathValues map[string]string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if authed {
		req = req.WithContext(middleware.SetIdentity(req.Context(), caller))
	}
	return req
}

// decode unmarshals the envelope and its data into data (may be nil).
func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

func testConferenceView(name string) *domain.ConferenceView {
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	return &domain.ConferenceView{
		Conference: &domain.Conference{
			Key:             domain.NewConferenceKey("u1", "c1"),
			Name:            name,
			OrganizerUserID: "u1",
			Topics:          []string{"Go"},
			City:            "London",
			StartDate:       &start,
			Month:           6,
			MaxAttendees:    10,
			SeatsAvailable:  9,
		},
		OrganizerDisplayName: "Gopher",
	}
}

func testSessionView(name string) *domain.SessionView {
	return &domain.SessionView{
		Session: &domain.Session{
			Key:             domain.NewKey(domain.KindSession, "s1", domain.NewConferenceKey("u1", "c1")),
			Name:            name,
			DurationMinutes: 45,
			TypeOfSession:   "workshop",
			Date:            time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime:       9*60 + 30,
		},
		Speaker: domain.NewSpeaker("sp1", "Rob", time.Time{}),
	}
}

// fakeConferenceService implements domain.ConferenceService for handler tests.
type fakeConferenceService struct {
	view        *domain.ConferenceView
	views       []*domain.ConferenceView
	registered  bool
	err         error
	lastID      domain.Identity
	lastKey     string
	lastInput   domain.ConferenceInput
	lastFilters []domain.ConferenceFilter
}

func (f *fakeConferenceService) CreateConference(_ context.Context, id domain.Identity, in domain.ConferenceInput) (*domain.ConferenceView, error) {
	f.lastID, f.lastInput = id, in
	return f.view, f.err
}

func (f *fakeConferenceService) UpdateConference(_ context.Context, id domain.Identity, key string, in domain.ConferenceInput) (*domain.ConferenceView, error) {
	f.lastID, f.lastKey, f.lastInput = id, key, in
	return f.view, f.err
}

func (f *fakeConferenceService) GetConference(_ context.Context, key string) (*domain.ConferenceView, error) {
	f.lastKey = key
	return f.view, f.err
}

func (f *fakeConferenceService) ListConferencesCreated(_ context.Context, id domain.Identity) ([]*domain.ConferenceView, error) {
	f.lastID = id
	return f.views, f.err
}

func (f *fakeConferenceService) QueryConferences(_ context.Context, filters []domain.ConferenceFilter) ([]*domain.ConferenceView, error) {
	f.lastFilters = filters
	return f.views, f.err
}

func (f *fakeConferenceService) ListConferencesToAttend(_ context.Context, id domain.Identity) ([]*domain.ConferenceView, error) {
	f.lastID = id
	return f.views, f.err
}

func (f *fakeConferenceService) RegisterForConference(_ context.Context, id domain.Identity, key string) (bool, error) {
	f.lastID, f.lastKey = id, key
	return f.registered, f.err
}

func (f *fakeConferenceService) UnregisterFromConference(_ context.Context, id domain.Identity, key string) (bool, error) {
	f.lastID, f.lastKey = id, key
	return f.registered, f.err
}

// fakeSessionService implements domain.SessionService.
type fakeSessionService struct {
	speaker   *domain.Speaker
	view      *domain.SessionView
	views     []*domain.SessionView
	err       error
	lastCall  string
	lastArgs  []string
	lastInput domain.SessionInput
}

func (f *fakeSessionService) record(call string, args ...string) {
	f.lastCall, f.lastArgs = call, args
}

func (f *fakeSessionService) CreateSpeaker(_ context.Context, _ domain.Identity, name string) (*domain.Speaker, error) {
	f.record("CreateSpeaker", name)
	return f.speaker, f.err
}

func (f *fakeSessionService) CreateSession(_ context.Context, _ domain.Identity, key string, in domain.SessionInput) (*domain.SessionView, error) {
	f.record("CreateSession", key)
	f.lastInput = in
	return f.view, f.err
}

func (f *fakeSessionService) ListConferenceSessions(_ context.Context, key string) ([]*domain.SessionView, error) {
	f.record("ListConferenceSessions", key)
	return f.views, f.err
}

func (f *fakeSessionService) ListConferenceSessionsByType(_ context.Context, key, typ string) ([]*domain.SessionView, error) {
	f.record("ListConferenceSessionsByType", key, typ)
	return f.views, f.err
}

func (f *fakeSessionService) ListConferenceSessionsByDate(_ context.Context, key, date string) ([]*domain.SessionView, error) {
	f.record("ListConferenceSessionsByDate", key, date)
	return f.views, f.err
}

func (f *fakeSessionService) ListInteractiveConferenceSessions(_ context.Context, key string) ([]*domain.SessionView, error) {
	f.record("ListInteractiveConferenceSessions", key)
	return f.views, f.err
}

func (f *fakeSessionService) ListSessionsBySpeaker(_ context.Context, key string) ([]*domain.SessionView, error) {
	f.record("ListSessionsBySpeaker", key)
	return f.views, f.err
}

func (f *fakeSessionService) ListNonWorkshopSessionsBefore7pm(context.Context) ([]*domain.SessionView, error) {
	f.record("ListNonWorkshopSessionsBefore7pm")
	return f.views, f.err
}

// fakeProfileService implements domain.ProfileService.
type fakeProfileService struct {
	profile         *domain.Profile
	err             error
	lastDisplayName string
	lastShirt       string
}

func (f *fakeProfileService) GetProfile(context.Context, domain.Identity) (*domain.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) SaveProfile(_ context.Context, _ domain.Identity, displayName, shirt string) (*domain.Profile, error) {
	f.lastDisplayName, f.lastShirt = displayName, shirt
	return f.profile, f.err
}

// fakeWishlistService implements domain.WishlistService.
type fakeWishlistService struct {
	views    []*domain.SessionView
	err      error
	lastCall string
	lastKey  string
}

func (f *fakeWishlistService) AddSessionToWishlist(_ context.Context, _ domain.Identity, key string) ([]*domain.SessionView, error) {
	f.lastCall, f.lastKey = "add", key
	return f.views, f.err
}

func (f *fakeWishlistService) RemoveSessionFromWishlist(_ context.Context, _ domain.Identity, key string) ([]*domain.SessionView, error) {
	f.lastCall, f.lastKey = "remove", key
	return f.views, f.err
}

func (f *fakeWishlistService) ListWishlist(context.Context, domain.Identity) ([]*domain.SessionView, error) {
	f.lastCall = "list"
	return f.views, f.err
}

// fakeMessageService implements domain.AnnouncementService and domain.FeaturedSpeakerService.
type fakeMessageService struct {
	msg       string
	err       error
	refreshed int
}

func (f *fakeMessageService) Refresh(context.Context) (string, error) {
	f.refreshed++
	return f.msg, f.err
}

func (f *fakeMessageService) Get(context.Context) (string, error) { return f.msg, f.err }

type fakeFeaturedService struct{ fakeMessageService }

func (f *fakeFeaturedService) Refresh(context.Context, *domain.Key, *domain.Key) error { return nil }

func (f *fakeFeaturedService) HandleTask(context.Context, domain.Task) error { return nil }
