package services

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type wishlistService struct {
	profileRepo    domain.ProfileRepository
	sessionRepo    domain.SessionRepository
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

// NewWishlistService returns a WishlistService storing wishlists on profiles.
func NewWishlistService(profileRepo domain.ProfileRepository, sessionRepo domain.SessionRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.WishlistService {
	return &wishlistService{
		profileRepo:    profileRepo,
		sessionRepo:    sessionRepo,
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

func (s *wishlistService) AddSessionToWishlist(ctx context.Context, id domain.Identity, sessionKey string) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := s.existingSession(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	p, err := s.update(ctx, id, func(p *domain.Profile) (bool, error) {
		if err := p.Wish(key.Encode()); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("add session to wishlist: %w", err)
	}
	return s.wishlist(ctx, p)
}

func (s *wishlistService) RemoveSessionFromWishlist(ctx context.Context, id domain.Identity, sessionKey string) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := s.existingSession(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	p, err := s.update(ctx, id, func(p *domain.Profile) (bool, error) {
		return p.Unwish(key.Encode()), nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove session from wishlist: %w", err)
	}
	return s.wishlist(ctx, p)
}

func (s *wishlistService) ListWishlist(ctx context.Context, id domain.Identity) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := getOrCreateProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}
	return s.wishlist(ctx, p)
}

func (s *wishlistService) existingSession(ctx context.Context, sessionKey string) (*domain.Key, error) {
	key, err := domain.DecodeKeyOfKind(sessionKey, domain.KindSession)
	if err != nil {
		return nil, fmt.Errorf("no session found with key %s: %w", sessionKey, err)
	}
	if _, err := s.sessionRepo.GetByKey(ctx, key); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return key, nil
}

// update applies fn to the caller's profile and persists it when fn reports a change.
func (s *wishlistService) update(ctx context.Context, id domain.Identity, fn func(*domain.Profile) (bool, error)) (*domain.Profile, error) {
	var out *domain.Profile
	err := retryConcurrentUpdate(ctx, func() error {
		p, err := getOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		changed, err := fn(p)
		if err != nil {
			return err
		}
		if changed {
			p.UpdatedAt = time.Now()
			if err := s.profileRepo.Update(ctx, p); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	return out, err
}

func (s *wishlistService) wishlist(ctx context.Context, p *domain.Profile) ([]*domain.SessionView, error) {
	keys := make([]*domain.Key, 0, len(p.SessionKeysWishlist))
	for _, encoded := range p.SessionKeysWishlist {
		key, err := domain.DecodeKeyOfKind(encoded, domain.KindSession)
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sessions, err := s.sessionRepo.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get wishlist sessions: %w", err)
	}
	return sessionViews(ctx, s.speakerRepo, sessions)
}
