package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

// NewProfileService returns a ProfileService backed by the given repository.
func NewProfileService(profileRepo domain.ProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{profileRepo: profileRepo, contextTimeout: timeout}
}

func (s *profileService) GetProfile(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return getOrCreateProfile(ctx, s.profileRepo, id)
}

func (s *profileService) SaveProfile(ctx context.Context, id domain.Identity, displayName, teeShirtSize string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var size domain.TeeShirtSize
	if strings.TrimSpace(teeShirtSize) != "" {
		var err error
		if size, err = domain.ParseTeeShirtSize(teeShirtSize); err != nil {
			return nil, err
		}
	}
	displayName = strings.TrimSpace(displayName)

	var saved *domain.Profile
	err := retryConcurrentUpdate(ctx, func() error {
		p, err := getOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		if displayName != "" {
			p.DisplayName = displayName
		}
		if size != "" {
			p.TeeShirtSize = size
		}
		p.UpdatedAt = time.Now()
		if err := s.profileRepo.Update(ctx, p); err != nil {
			return err
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return saved, nil
}

// getOrCreateProfile loads the caller's profile, creating it on first access.
func getOrCreateProfile(ctx context.Context, repo domain.ProfileRepository, id domain.Identity) (*domain.Profile, error) {
	if id.UserID == "" {
		return nil, fmt.Errorf("%w: authorization required", domain.ErrUnauthorized)
	}
	p, err := repo.GetByUserID(ctx, id.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p = domain.NewProfile(id, time.Now())
	if err := repo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Created concurrently by another request.
			return repo.GetByUserID(ctx, id.UserID)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// organizerNames resolves organizer display names in bulk; missing profiles map to "".
func organizerNames(ctx context.Context, repo domain.ProfileRepository, confs []*domain.Conference) (map[string]string, error) {
	ids := make([]string, 0, len(confs))
	seen := make(map[string]bool, len(confs))
	for _, c := range confs {
		if !seen[c.OrganizerUserID] {
			seen[c.OrganizerUserID] = true
			ids = append(ids, c.OrganizerUserID)
		}
	}
	profiles, err := repo.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get organizer profiles: %w", err)
	}
	names := make(map[string]string, len(profiles))
	for id, p := range profiles {
		names[id] = p.DisplayName
	}
	return names, nil
}
