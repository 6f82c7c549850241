package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

const (
	announcementTemplate = "Last chance to attend! The following conferences are nearly sold out: %s"
	// nearlySoldOutSeats is the highest seat count that still counts as nearly sold out.
	nearlySoldOutSeats = 5
)

type announcementService struct {
	conferenceRepo domain.ConferenceRepository
	cache          domain.CacheStore
	metrics        domain.Metrics
	contextTimeout time.Duration
}

// NewAnnouncementService returns the service owning the announcement cache entry.
func NewAnnouncementService(conferenceRepo domain.ConferenceRepository, cache domain.CacheStore, metrics domain.Metrics, timeout time.Duration) domain.AnnouncementService {
	return &announcementService{
		conferenceRepo: conferenceRepo,
		cache:          cache,
		metrics:        metrics,
		contextTimeout: timeout,
	}
}

func (s *announcementService) Refresh(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q, err := domain.NewConferenceQuery(
		domain.ConferencePredicate{Field: domain.FieldSeatsAvailable, Op: domain.OpLessOrEqual, Value: nearlySoldOutSeats},
		domain.ConferencePredicate{Field: domain.FieldSeatsAvailable, Op: domain.OpGreater, Value: 0},
	)
	if err != nil {
		return "", err
	}
	confs, err := s.conferenceRepo.Query(ctx, q)
	if err != nil {
		return "", fmt.Errorf("query nearly sold out conferences: %w", err)
	}

	if len(confs) == 0 {
		if err := s.cache.Delete(ctx, domain.CacheKeyAnnouncement); err != nil {
			return "", fmt.Errorf("delete announcement: %w", err)
		}
		s.metrics.CacheRefreshed(domain.CacheKeyAnnouncement, false)
		return "", nil
	}

	names := make([]string, 0, len(confs))
	for _, c := range confs {
		names = append(names, c.Name)
	}
	announcement := fmt.Sprintf(announcementTemplate, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, domain.CacheKeyAnnouncement, announcement); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	s.metrics.CacheRefreshed(domain.CacheKeyAnnouncement, true)
	return announcement, nil
}

func (s *announcementService) Get(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	v, ok, err := s.cache.Get(ctx, domain.CacheKeyAnnouncement)
	if err != nil {
		return "", fmt.Errorf("get announcement: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}
