package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/cenkalti/backoff/v5"
)

func TestMain(m *testing.M) {
	writeBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	os.Exit(m.Run())
}

const testTimeout = 5 * time.Second

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	c.ConferenceKeysToAttend = slices.Clone(p.ConferenceKeysToAttend)
	c.SessionKeysWishlist = slices.Clone(p.SessionKeysWishlist)
	return &c
}

func cloneConference(conf *domain.Conference) *domain.Conference {
	c := *conf
	c.Topics = slices.Clone(conf.Topics)
	return &c
}

// fakeProfileRepo is an in-memory ProfileRepository for tests.
type fakeProfileRepo struct {
	mu       sync.Mutex
	byUserID map[string]*domain.Profile
	// updateConflicts makes the next n Update calls fail with ErrConcurrentUpdate.
	updateConflicts int
	err             error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byUserID[p.UserID]; ok {
		return domain.ErrConflict
	}
	f.byUserID[p.UserID] = cloneProfile(p)
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byUserID[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (f *fakeProfileRepo) GetMulti(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*domain.Profile)
	for _, id := range userIDs {
		if p, ok := f.byUserID[id]; ok {
			out[id] = cloneProfile(p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateLocked(p)
}

func (f *fakeProfileRepo) updateLocked(p *domain.Profile) error {
	if f.updateConflicts > 0 {
		f.updateConflicts--
		return domain.ErrConcurrentUpdate
	}
	stored, ok := f.byUserID[p.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != p.Version {
		return domain.ErrConcurrentUpdate
	}
	p.Version++
	f.byUserID[p.UserID] = cloneProfile(p)
	return nil
}

// fakeConferenceRepo is an in-memory ConferenceRepository for tests.
type fakeConferenceRepo struct {
	mu     sync.Mutex
	byPath map[string]*domain.Conference
	order  []string
}

func newFakeConferenceRepo() *fakeConferenceRepo {
	return &fakeConferenceRepo{byPath: make(map[string]*domain.Conference)}
}

func (f *fakeConferenceRepo) put(c *domain.Conference) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byPath[c.Key.Path()]; !ok {
		f.order = append(f.order, c.Key.Path())
	}
	f.byPath[c.Key.Path()] = cloneConference(c)
}

func (f *fakeConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	f.put(c)
	return nil
}

func (f *fakeConferenceRepo) GetByKey(ctx context.Context, key *domain.Key) (*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byPath[key.Path()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneConference(c), nil
}

func (f *fakeConferenceRepo) GetMulti(ctx context.Context, keys []*domain.Key) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Conference
	for _, k := range keys {
		if c, ok := f.byPath[k.Path()]; ok {
			out = append(out, cloneConference(c))
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) Update(ctx context.Context, c *domain.Conference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateLocked(c)
}

func (f *fakeConferenceRepo) updateLocked(c *domain.Conference) error {
	stored, ok := f.byPath[c.Key.Path()]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != c.Version {
		return domain.ErrConcurrentUpdate
	}
	c.Version++
	f.byPath[c.Key.Path()] = cloneConference(c)
	return nil
}

func (f *fakeConferenceRepo) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Conference
	for _, p := range f.order {
		if c := f.byPath[p]; c.OrganizerUserID == organizerUserID {
			out = append(out, cloneConference(c))
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) Query(ctx context.Context, q *domain.ConferenceQuery) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Conference
	for _, p := range f.order {
		if c := f.byPath[p]; q.Matches(c) {
			out = append(out, cloneConference(c))
		}
	}
	q.Sort(out)
	return out, nil
}

// fakeRegistrationStore runs attendance updates under one lock over both fakes.
type fakeRegistrationStore struct {
	mu       sync.Mutex
	profiles *fakeProfileRepo
	confs    *fakeConferenceRepo
	// conflicts makes the next n calls fail with ErrConcurrentUpdate before fn runs.
	conflicts int
	calls     int
}

func (f *fakeRegistrationStore) UpdateAttendance(ctx context.Context, userID string, conferenceKey *domain.Key, fn func(*domain.Profile, *domain.Conference) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.conflicts > 0 {
		f.conflicts--
		return domain.ErrConcurrentUpdate
	}
	p, err := f.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	c, err := f.confs.GetByKey(ctx, conferenceKey)
	if err != nil {
		return err
	}
	if err := fn(p, c); err != nil {
		return err
	}
	if err := f.profiles.Update(ctx, p); err != nil {
		return err
	}
	return f.confs.Update(ctx, c)
}

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*domain.Session
	err      error
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeSessionRepo) GetByKey(ctx context.Context, key *domain.Key) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Key.Equal(key) {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) GetMulti(ctx context.Context, keys []*domain.Key) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, k := range keys {
		if s, err := f.GetByKey(ctx, k); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filter domain.SessionFilter) ([]*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Session
	for _, s := range f.sessions {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	filter.Sort(out)
	return out, nil
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests.
type fakeSpeakerRepo struct {
	byPath map[string]*domain.Speaker
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{byPath: make(map[string]*domain.Speaker)}
}

func (f *fakeSpeakerRepo) Create(ctx context.Context, s *domain.Speaker) error {
	f.byPath[s.Key.Path()] = s
	return nil
}

func (f *fakeSpeakerRepo) GetByKey(ctx context.Context, key *domain.Key) (*domain.Speaker, error) {
	s, ok := f.byPath[key.Path()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSpeakerRepo) GetMulti(ctx context.Context, keys []*domain.Key) (map[string]*domain.Speaker, error) {
	out := make(map[string]*domain.Speaker)
	for _, k := range keys {
		if s, ok := f.byPath[k.Path()]; ok {
			out[k.Path()] = s
		}
	}
	return out, nil
}

// fakeCache is an in-memory CacheStore without expiry.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.values, key)
	return nil
}

// fakeQueue records enqueued tasks.
type fakeQueue struct {
	mu    sync.Mutex
	tasks []domain.Task
	err   error
}

func (f *fakeQueue) Enqueue(ctx context.Context, t domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, t)
	return nil
}

// fakeMetrics counts registration outcomes.
type fakeMetrics struct {
	mu            sync.Mutex
	registrations map[string]int
	refreshed     map[string]bool
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{registrations: make(map[string]int), refreshed: make(map[string]bool)}
}

func (f *fakeMetrics) RegistrationAttempt(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations[outcome]++
}

func (f *fakeMetrics) TaskCompleted(task string, err error) {}

func (f *fakeMetrics) CacheRefreshed(cache string, populated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed[cache] = populated
}

func (f *fakeMetrics) ObserveRequest(method, route string, status int, d time.Duration) {}

// seedConference stores a conference organized by organizerID and returns it.
func seedConference(repo *fakeConferenceRepo, organizerID, id, name string, maxAttendees int) *domain.Conference {
	c := &domain.Conference{
		Key:             domain.NewConferenceKey(organizerID, id),
		Name:            name,
		OrganizerUserID: organizerID,
		City:            domain.DefaultConferenceCity,
		Topics:          []string{"Go"},
		MaxAttendees:    maxAttendees,
		SeatsAvailable:  maxAttendees,
		CreatedAt:       time.Now(),
	}
	repo.put(c)
	return c
}

func seedSpeaker(repo *fakeSpeakerRepo, id, name string) *domain.Speaker {
	sp := domain.NewSpeaker(id, name, time.Now())
	_ = repo.Create(context.Background(), sp)
	return sp
}

func identity(userID string) domain.Identity {
	return domain.Identity{UserID: userID, Email: userID + "@example.com", Nickname: userID}
}

func seq(prefix string, n int) string { return fmt.Sprintf("%s-%d", prefix, n) }
