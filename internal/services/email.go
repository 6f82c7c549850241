package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencecentral/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendConferenceCreated sends the "conference_created" email to the organizer.
func (s *emailService) SendConferenceCreated(ctx context.Context, data *domain.ConferenceCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("conference created email data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("%w: organizer has no email address", domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render("conference_created", data)
	if err != nil {
		return fmt.Errorf("failed to render conference_created template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send conference created email: %w", err)
	}
	s.logger.InfoContext(ctx, "conference created email sent", "to", data.Email)
	return nil
}

// ConfirmationEmailHandler adapts SendConferenceCreated to the send_confirmation_email task.
func ConfirmationEmailHandler(es domain.EmailService) domain.TaskHandler {
	return func(ctx context.Context, t domain.Task) error {
		return es.SendConferenceCreated(ctx, &domain.ConferenceCreatedEmailData{
			Email:       t.Params[domain.TaskParamEmail],
			DisplayName: t.Params[domain.TaskParamDisplayName],
			Conference:  t.Params[domain.TaskParamConference],
		})
	}
}
