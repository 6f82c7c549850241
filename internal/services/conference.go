package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"conferencecentral/internal/domain"

	"github.com/google/uuid"
)

// errNoChange aborts an attendance update that has nothing to write.
var errNoChange = errors.New("no change")

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	registrations  domain.RegistrationStore
	tasks          domain.TaskQueue
	metrics        domain.Metrics
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewConferenceService wires the conference use cases. Confirmation emails are queued on tasks.
func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	registrations domain.RegistrationStore,
	tasks domain.TaskQueue,
	metrics domain.Metrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		registrations:  registrations,
		tasks:          tasks,
		metrics:        metrics,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, id domain.Identity, in domain.ConferenceInput) (*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}
	profile, err := getOrCreateProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &domain.Conference{
		Key:             domain.NewConferenceKey(id.UserID, uuid.NewString()),
		OrganizerUserID: id.UserID,
		City:            domain.DefaultConferenceCity,
		Topics:          append([]string(nil), domain.DefaultConferenceTopics...),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := applyConferenceInput(c, in); err != nil {
		return nil, err
	}
	if err := s.conferenceRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	task := domain.Task{
		Name: domain.TaskSendConfirmationEmail,
		Params: map[string]string{
			domain.TaskParamEmail:       profile.MainEmail,
			domain.TaskParamDisplayName: profile.DisplayName,
			domain.TaskParamConference:  describeConference(c),
		},
	}
	if err := s.tasks.Enqueue(ctx, task); err != nil {
		s.logger.WarnContext(ctx, "enqueue confirmation email failed", "conference", c.Key.Path(), "err", err)
	}

	return &domain.ConferenceView{Conference: c, OrganizerDisplayName: profile.DisplayName}, nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, id domain.Identity, conferenceKey string, in domain.ConferenceInput) (*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id.UserID == "" {
		return nil, fmt.Errorf("%w: authorization required", domain.ErrUnauthorized)
	}
	key, err := domain.DecodeKeyOfKind(conferenceKey, domain.KindConference)
	if err != nil {
		return nil, fmt.Errorf("no conference found with key %s: %w", conferenceKey, err)
	}

	var updated *domain.Conference
	err = retryConcurrentUpdate(ctx, func() error {
		c, err := s.conferenceRepo.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		if !c.IsOrganizedBy(id.UserID) {
			return fmt.Errorf("%w: only the owner can update the conference", domain.ErrForbidden)
		}
		if err := applyConferenceInput(c, in); err != nil {
			return err
		}
		c.UpdatedAt = time.Now()
		if err := s.conferenceRepo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return s.view(ctx, updated)
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceKey string) (*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := domain.DecodeKeyOfKind(conferenceKey, domain.KindConference)
	if err != nil {
		return nil, fmt.Errorf("no conference found with key %s: %w", conferenceKey, err)
	}
	c, err := s.conferenceRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return s.view(ctx, c)
}

func (s *conferenceService) ListConferencesCreated(ctx context.Context, id domain.Identity) ([]*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := getOrCreateProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.ListByOrganizer(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list conferences created: %w", err)
	}
	out := make([]*domain.ConferenceView, 0, len(confs))
	for _, c := range confs {
		out = append(out, &domain.ConferenceView{Conference: c, OrganizerDisplayName: profile.DisplayName})
	}
	return out, nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []domain.ConferenceFilter) ([]*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q, err := domain.ParseConferenceFilters(filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return s.views(ctx, confs)
}

func (s *conferenceService) ListConferencesToAttend(ctx context.Context, id domain.Identity) ([]*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := getOrCreateProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}
	keys := make([]*domain.Key, 0, len(profile.ConferenceKeysToAttend))
	for _, encoded := range profile.ConferenceKeysToAttend {
		key, err := domain.DecodeKeyOfKind(encoded, domain.KindConference)
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	confs, err := s.conferenceRepo.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get conferences to attend: %w", err)
	}
	return s.views(ctx, confs)
}

func (s *conferenceService) RegisterForConference(ctx context.Context, id domain.Identity, conferenceKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := domain.DecodeKeyOfKind(conferenceKey, domain.KindConference)
	if err != nil {
		return false, fmt.Errorf("no conference found with key %s: %w", conferenceKey, err)
	}
	if _, err := getOrCreateProfile(ctx, s.profileRepo, id); err != nil {
		return false, err
	}

	encoded := key.Encode()
	err = s.updateAttendance(ctx, id.UserID, key, func(p *domain.Profile, c *domain.Conference) error {
		if err := p.Attend(encoded); err != nil {
			return err
		}
		return c.TakeSeat()
	})
	if err != nil {
		s.metrics.RegistrationAttempt("rejected")
		return false, fmt.Errorf("register for conference: %w", err)
	}
	s.metrics.RegistrationAttempt("registered")
	return true, nil
}

func (s *conferenceService) UnregisterFromConference(ctx context.Context, id domain.Identity, conferenceKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := domain.DecodeKeyOfKind(conferenceKey, domain.KindConference)
	if err != nil {
		return false, fmt.Errorf("no conference found with key %s: %w", conferenceKey, err)
	}
	if _, err := getOrCreateProfile(ctx, s.profileRepo, id); err != nil {
		return false, err
	}

	encoded := key.Encode()
	err = s.updateAttendance(ctx, id.UserID, key, func(p *domain.Profile, c *domain.Conference) error {
		if !p.Unattend(encoded) {
			return errNoChange
		}
		c.ReleaseSeat()
		return nil
	})
	switch {
	case errors.Is(err, errNoChange):
		s.metrics.RegistrationAttempt("not_registered")
		return false, nil
	case err != nil:
		s.metrics.RegistrationAttempt("rejected")
		return false, fmt.Errorf("unregister from conference: %w", err)
	}
	s.metrics.RegistrationAttempt("unregistered")
	return true, nil
}

func (s *conferenceService) updateAttendance(ctx context.Context, userID string, key *domain.Key, fn func(*domain.Profile, *domain.Conference) error) error {
	attempt := 0
	return retryConcurrentUpdate(ctx, func() error {
		if attempt > 0 {
			s.metrics.RegistrationAttempt("retry")
		}
		attempt++
		return s.registrations.UpdateAttendance(ctx, userID, key, fn)
	})
}

func (s *conferenceService) view(ctx context.Context, c *domain.Conference) (*domain.ConferenceView, error) {
	name := ""
	p, err := s.profileRepo.GetByUserID(ctx, c.OrganizerUserID)
	switch {
	case err == nil:
		name = p.DisplayName
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get organizer profile: %w", err)
	}
	return &domain.ConferenceView{Conference: c, OrganizerDisplayName: name}, nil
}

func (s *conferenceService) views(ctx context.Context, confs []*domain.Conference) ([]*domain.ConferenceView, error) {
	names, err := organizerNames(ctx, s.profileRepo, confs)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ConferenceView, 0, len(confs))
	for _, c := range confs {
		out = append(out, &domain.ConferenceView{Conference: c, OrganizerDisplayName: names[c.OrganizerUserID]})
	}
	return out, nil
}

// applyConferenceInput copies the provided fields of in onto c.
func applyConferenceInput(c *domain.Conference, in domain.ConferenceInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if len(in.Topics) > 0 {
		c.Topics = append([]string(nil), in.Topics...)
	}
	if in.City != nil && *in.City != "" {
		c.City = *in.City
	}
	if in.StartDate != nil {
		d, err := domain.ParseDate(*in.StartDate)
		if err != nil {
			return err
		}
		c.SetStartDate(&d)
	}
	if in.EndDate != nil {
		d, err := domain.ParseDate(*in.EndDate)
		if err != nil {
			return err
		}
		c.EndDate = &d
	}
	if in.MaxAttendees != nil {
		if *in.MaxAttendees < 0 {
			return fmt.Errorf("%w: maxAttendees must not be negative", domain.ErrInvalidInput)
		}
		c.SetMaxAttendees(*in.MaxAttendees)
	}
	return nil
}

// describeConference renders c for the confirmation email body.
func describeConference(c *domain.Conference) string {
	var b strings.Builder
	line := func(k, v string) {
		if v != "" {
			b.WriteString(k + ": " + v + "\r\n")
		}
	}
	line("name", c.Name)
	line("description", c.Description)
	line("topics", strings.Join(c.Topics, ", "))
	line("city", c.City)
	line("startDate", domain.FormatDate(c.StartDate))
	line("endDate", domain.FormatDate(c.EndDate))
	line("maxAttendees", strconv.Itoa(c.MaxAttendees))
	return b.String()
}
