package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"

	"github.com/google/uuid"
)

// nonWorkshopCutoff is the latest start time listed by ListNonWorkshopSessionsBefore7pm.
const nonWorkshopCutoff = domain.TimeOfDay(19 * 60)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	speakerRepo    domain.SpeakerRepository
	conferenceRepo domain.ConferenceRepository
	tasks          domain.TaskQueue
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSessionService wires session and speaker use cases. A featured-speaker refresh is queued
// on tasks after each session is created.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	speakerRepo domain.SpeakerRepository,
	conferenceRepo domain.ConferenceRepository,
	tasks domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		speakerRepo:    speakerRepo,
		conferenceRepo: conferenceRepo,
		tasks:          tasks,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *sessionService) CreateSpeaker(ctx context.Context, id domain.Identity, name string) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id.UserID == "" {
		return nil, fmt.Errorf("%w: authorization required", domain.ErrUnauthorized)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: speaker 'name' field required", domain.ErrInvalidInput)
	}
	sp := domain.NewSpeaker(uuid.NewString(), name, time.Now())
	if err := s.speakerRepo.Create(ctx, sp); err != nil {
		return nil, fmt.Errorf("create speaker: %w", err)
	}
	return sp, nil
}

func (s *sessionService) CreateSession(ctx context.Context, id domain.Identity, conferenceKey string, in domain.SessionInput) (*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Date and time are validated before the caller is.
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}
	if id.UserID == "" {
		return nil, fmt.Errorf("%w: authorization required", domain.ErrUnauthorized)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: session 'name' field required", domain.ErrInvalidInput)
	}
	if in.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	}

	confKey, err := domain.DecodeKeyOfKind(conferenceKey, domain.KindConference)
	if err != nil {
		return nil, fmt.Errorf("no conference found with key %s: %w", conferenceKey, err)
	}
	conf, err := s.conferenceRepo.GetByKey(ctx, confKey)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if !conf.IsOrganizedBy(id.UserID) {
		return nil, fmt.Errorf("%w: only the organizer can add sessions", domain.ErrForbidden)
	}
	speakerKey, err := domain.DecodeKeyOfKind(in.SpeakerKey, domain.KindSpeaker)
	if err != nil {
		return nil, fmt.Errorf("no speaker found with key %s: %w", in.SpeakerKey, err)
	}
	speaker, err := s.speakerRepo.GetByKey(ctx, speakerKey)
	if err != nil {
		return nil, fmt.Errorf("get speaker: %w", err)
	}

	typ := strings.ToLower(strings.TrimSpace(in.TypeOfSession))
	if typ == "" {
		typ = domain.DefaultSessionType
	}
	sess := &domain.Session{
		Key:             domain.NewKey(domain.KindSession, uuid.NewString(), conf.Key),
		Name:            name,
		Highlights:      in.Highlights,
		SpeakerKey:      speaker.Key,
		DurationMinutes: in.DurationMinutes,
		TypeOfSession:   typ,
		Date:            date,
		StartTime:       start,
		CreatedAt:       time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	task := domain.Task{
		Name: domain.TaskStoreFeaturedSpeaker,
		Params: map[string]string{
			domain.TaskParamSpeakerKey:    speaker.Key.Encode(),
			domain.TaskParamConferenceKey: conf.Key.Encode(),
		},
	}
	if err := s.tasks.Enqueue(ctx, task); err != nil {
		s.logger.WarnContext(ctx, "enqueue featured speaker refresh failed", "session", sess.Key.Path(), "err", err)
	}

	return &domain.SessionView{Session: sess, Speaker: speaker}, nil
}

func (s *sessionService) ListConferenceSessions(ctx context.Context, conferenceKey string) ([]*domain.SessionView, error) {
	return s.listInConference(ctx, conferenceKey, domain.SessionFilter{})
}

func (s *sessionService) ListConferenceSessionsByType(ctx context.Context, conferenceKey, typeOfSession string) ([]*domain.SessionView, error) {
	typ := strings.ToLower(strings.TrimSpace(typeOfSession))
	if typ == "" {
		return nil, fmt.Errorf("%w: typeOfSession required", domain.ErrInvalidInput)
	}
	return s.listInConference(ctx, conferenceKey, domain.SessionFilter{Types: []string{typ}})
}

func (s *sessionService) ListConferenceSessionsByDate(ctx context.Context, conferenceKey, date string) ([]*domain.SessionView, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.listInConference(ctx, conferenceKey, domain.SessionFilter{Date: &d, OrderByStartTime: true})
}

func (s *sessionService) ListInteractiveConferenceSessions(ctx context.Context, conferenceKey string) ([]*domain.SessionView, error) {
	return s.listInConference(ctx, conferenceKey, domain.SessionFilter{Types: domain.InteractiveSessionTypes})
}

func (s *sessionService) ListSessionsBySpeaker(ctx context.Context, speakerKey string) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := domain.DecodeKeyOfKind(speakerKey, domain.KindSpeaker)
	if err != nil {
		return nil, fmt.Errorf("no speaker found with key %s: %w", speakerKey, err)
	}
	if _, err := s.speakerRepo.GetByKey(ctx, key); err != nil {
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return s.list(ctx, domain.SessionFilter{SpeakerKey: key})
}

func (s *sessionService) ListNonWorkshopSessionsBefore7pm(ctx context.Context) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cutoff := nonWorkshopCutoff
	return s.list(ctx, domain.SessionFilter{
		ExcludeTypes:     []string{"workshop"},
		StartsAtOrBefore: &cutoff,
		OrderByStartTime: true,
	})
}

func (s *sessionService) listInConference(ctx context.Context, conferenceKey string, f domain.SessionFilter) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := domain.DecodeKeyOfKind(conferenceKey, domain.KindConference)
	if err != nil {
		return nil, fmt.Errorf("no conference found with key %s: %w", conferenceKey, err)
	}
	if _, err := s.conferenceRepo.GetByKey(ctx, key); err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	f.ConferenceKey = key
	return s.list(ctx, f)
}

func (s *sessionService) list(ctx context.Context, f domain.SessionFilter) ([]*domain.SessionView, error) {
	sessions, err := s.sessionRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessionViews(ctx, s.speakerRepo, sessions)
}

// sessionViews attaches speakers to sessions, loading all speakers in one call.
func sessionViews(ctx context.Context, speakerRepo domain.SpeakerRepository, sessions []*domain.Session) ([]*domain.SessionView, error) {
	keys := make([]*domain.Key, 0, len(sessions))
	seen := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		if sess.SpeakerKey == nil || seen[sess.SpeakerKey.Path()] {
			continue
		}
		seen[sess.SpeakerKey.Path()] = true
		keys = append(keys, sess.SpeakerKey)
	}
	speakers, err := speakerRepo.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get speakers: %w", err)
	}
	out := make([]*domain.SessionView, 0, len(sessions))
	for _, sess := range sessions {
		v := &domain.SessionView{Session: sess}
		if sess.SpeakerKey != nil {
			v.Speaker = speakers[sess.SpeakerKey.Path()]
		}
		out = append(out, v)
	}
	return out, nil
}
