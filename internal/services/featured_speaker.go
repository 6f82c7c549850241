package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type featuredSpeakerService struct {
	sessionRepo    domain.SessionRepository
	speakerRepo    domain.SpeakerRepository
	cache          domain.CacheStore
	metrics        domain.Metrics
	contextTimeout time.Duration
}

// NewFeaturedSpeakerService returns the service owning the featured speaker cache entry.
func NewFeaturedSpeakerService(sessionRepo domain.SessionRepository, speakerRepo domain.SpeakerRepository, cache domain.CacheStore, metrics domain.Metrics, timeout time.Duration) domain.FeaturedSpeakerService {
	return &featuredSpeakerService{
		sessionRepo:    sessionRepo,
		speakerRepo:    speakerRepo,
		cache:          cache,
		metrics:        metrics,
		contextTimeout: timeout,
	}
}

func (s *featuredSpeakerService) Refresh(ctx context.Context, speakerKey, conferenceKey *domain.Key) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.List(ctx, domain.SessionFilter{ConferenceKey: conferenceKey, SpeakerKey: speakerKey})
	if err != nil {
		return fmt.Errorf("list speaker sessions: %w", err)
	}
	if len(sessions) <= 1 {
		s.metrics.CacheRefreshed(domain.CacheKeyFeaturedSpeaker, false)
		return nil
	}
	speaker, err := s.speakerRepo.GetByKey(ctx, speakerKey)
	if err != nil {
		return fmt.Errorf("get speaker: %w", err)
	}

	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}
	msg := speaker.Name + ": " + strings.Join(names, ", ")
	if err := s.cache.Set(ctx, domain.CacheKeyFeaturedSpeaker, msg); err != nil {
		return fmt.Errorf("set featured speaker: %w", err)
	}
	s.metrics.CacheRefreshed(domain.CacheKeyFeaturedSpeaker, true)
	return nil
}

func (s *featuredSpeakerService) Get(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	v, ok, err := s.cache.Get(ctx, domain.CacheKeyFeaturedSpeaker)
	if err != nil {
		return "", fmt.Errorf("get featured speaker: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func (s *featuredSpeakerService) HandleTask(ctx context.Context, t domain.Task) error {
	speakerKey, err := domain.DecodeKeyOfKind(t.Params[domain.TaskParamSpeakerKey], domain.KindSpeaker)
	if err != nil {
		return fmt.Errorf("featured speaker task: %w", err)
	}
	conferenceKey, err := domain.DecodeKeyOfKind(t.Params[domain.TaskParamConferenceKey], domain.KindConference)
	if err != nil {
		return fmt.Errorf("featured speaker task: %w", err)
	}
	return s.Refresh(ctx, speakerKey, conferenceKey)
}
