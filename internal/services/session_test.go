package services

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc      domain.SessionService
	confs    *fakeConferenceRepo
	sessions *fakeSessionRepo
	speakers *fakeSpeakerRepo
	queue    *fakeQueue
	conf     *domain.Conference
	speaker  *domain.Speaker
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		confs:    newFakeConferenceRepo(),
		sessions: &fakeSessionRepo{},
		speakers: newFakeSpeakerRepo(),
		queue:    &fakeQueue{},
	}
	f.svc = NewSessionService(f.sessions, f.speakers, f.confs, f.queue, testLogger(), testTimeout)
	f.conf = seedConference(f.confs, "org", "c1", "GopherCon", 100)
	f.speaker = seedSpeaker(f.speakers, "sp1", "Rob")
	return f
}

func (f *sessionFixture) create(t *testing.T, name, typ, date, start string) *domain.SessionView {
	t.Helper()
	v, err := f.svc.CreateSession(context.Background(), identity("org"), f.conf.Key.Encode(), domain.SessionInput{
		Name:          name,
		SpeakerKey:    f.speaker.Key.Encode(),
		TypeOfSession: typ,
		Date:          date,
		StartTime:     start,
	})
	require.NoError(t, err)
	return v
}

func names(views []*domain.SessionView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Session.Name)
	}
	return out
}

func TestSessionService_CreateSession(t *testing.T) {
	f := newSessionFixture()
	v := f.create(t, "Keynote", "", "2026-06-10", "09:30")

	assert.Equal(t, domain.DefaultSessionType, v.Session.TypeOfSession)
	assert.Equal(t, "Rob", v.Speaker.Name)
	assert.True(t, v.Session.ConferenceKey().Equal(f.conf.Key))
	assert.Equal(t, "09:30", v.Session.StartTime.String())

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, domain.TaskStoreFeaturedSpeaker, f.queue.tasks[0].Name)
	assert.Equal(t, f.speaker.Key.Encode(), f.queue.tasks[0].Params[domain.TaskParamSpeakerKey])
	assert.Equal(t, f.conf.Key.Encode(), f.queue.tasks[0].Params[domain.TaskParamConferenceKey])
}

func TestSessionService_CreateSession_Errors(t *testing.T) {
	f := newSessionFixture()
	valid := domain.SessionInput{Name: "Talk", SpeakerKey: f.speaker.Key.Encode(), Date: "2026-06-10", StartTime: "10:00"}

	tests := []struct {
		name    string
		id      domain.Identity
		confKey string
		mutate  func(in *domain.SessionInput)
		wantErr error
	}{
		{name: "bad date before auth", id: domain.Identity{}, confKey: f.conf.Key.Encode(), mutate: func(in *domain.SessionInput) { in.Date = "10/06/2026" }, wantErr: domain.ErrInvalidInput},
		{name: "bad time before auth", id: domain.Identity{}, confKey: f.conf.Key.Encode(), mutate: func(in *domain.SessionInput) { in.StartTime = "25:99" }, wantErr: domain.ErrInvalidInput},
		{name: "anonymous", id: domain.Identity{}, confKey: f.conf.Key.Encode(), wantErr: domain.ErrUnauthorized},
		{name: "not organizer", id: identity("someone"), confKey: f.conf.Key.Encode(), wantErr: domain.ErrForbidden},
		{name: "unknown conference", id: identity("org"), confKey: domain.NewConferenceKey("org", "nope").Encode(), wantErr: domain.ErrNotFound},
		{name: "unknown speaker", id: identity("org"), confKey: f.conf.Key.Encode(), mutate: func(in *domain.SessionInput) {
			in.SpeakerKey = domain.NewKey(domain.KindSpeaker, "ghost", nil).Encode()
		}, wantErr: domain.ErrNotFound},
		{name: "missing name", id: identity("org"), confKey: f.conf.Key.Encode(), mutate: func(in *domain.SessionInput) { in.Name = "" }, wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			_, err := f.svc.CreateSession(context.Background(), tt.id, tt.confKey, in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
	assert.Empty(t, f.sessions.sessions)
	assert.Empty(t, f.queue.tasks)
}

func TestSessionService_Listings(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	f.create(t, "Late talk", "talk", "2026-06-10", "20:00")
	f.create(t, "Morning workshop", "workshop", "2026-06-10", "09:00")
	f.create(t, "Early talk", "talk", "2026-06-10", "08:00")
	f.create(t, "Hack night", "hackathon", "2026-06-11", "18:00")

	other := seedConference(f.confs, "org", "c2", "Other", 10)
	_, err := f.svc.CreateSession(ctx, identity("org"), other.Key.Encode(), domain.SessionInput{
		Name: "Elsewhere", SpeakerKey: f.speaker.Key.Encode(), Date: "2026-07-01", StartTime: "19:00",
	})
	require.NoError(t, err)

	all, err := f.svc.ListConferenceSessions(ctx, f.conf.Key.Encode())
	require.NoError(t, err)
	assert.Equal(t, []string{"Late talk", "Morning workshop", "Early talk", "Hack night"}, names(all))

	talks, err := f.svc.ListConferenceSessionsByType(ctx, f.conf.Key.Encode(), "talk")
	require.NoError(t, err)
	assert.Equal(t, []string{"Late talk", "Early talk"}, names(talks))

	byDate, err := f.svc.ListConferenceSessionsByDate(ctx, f.conf.Key.Encode(), "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"Early talk", "Morning workshop", "Late talk"}, names(byDate))

	interactive, err := f.svc.ListInteractiveConferenceSessions(ctx, f.conf.Key.Encode())
	require.NoError(t, err)
	assert.Equal(t, []string{"Morning workshop", "Hack night"}, names(interactive))

	bySpeaker, err := f.svc.ListSessionsBySpeaker(ctx, f.speaker.Key.Encode())
	require.NoError(t, err)
	assert.Len(t, bySpeaker, 5)

	early, err := f.svc.ListNonWorkshopSessionsBefore7pm(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Early talk", "Hack night", "Elsewhere"}, names(early))
}

func TestSessionService_ListingErrors(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	_, err := f.svc.ListConferenceSessions(ctx, "not-a-key")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.svc.ListConferenceSessionsByDate(ctx, f.conf.Key.Encode(), "tomorrow")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.svc.ListSessionsBySpeaker(ctx, domain.NewKey(domain.KindSpeaker, "ghost", nil).Encode())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSessionService_CreateSpeaker(t *testing.T) {
	f := newSessionFixture()
	sp, err := f.svc.CreateSpeaker(context.Background(), identity("u1"), " Ken ")
	require.NoError(t, err)
	assert.Equal(t, "Ken", sp.Name)
	assert.Equal(t, domain.KindSpeaker, sp.Key.Kind)

	_, err = f.svc.CreateSpeaker(context.Background(), identity("u1"), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.svc.CreateSpeaker(context.Background(), domain.Identity{}, "Ken")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
