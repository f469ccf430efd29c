package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"gymadmin/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName, facilityName string) error
	SendNotificationEmail(ctx context.Context, toEmail, recipientName, subject, message string) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

func (s *service) send(toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Gym Admin <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName, facilityName string) error {
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account at <strong>%s</strong> is ready. Log in at https://%s/login.</p>",
		fullName, facilityName, s.cfg.Domain,
	)
	return s.send(toEmail, fmt.Sprintf("Welcome to %s", facilityName), html)
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName, subject, message string) error {
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>%s</p><p><a href=\"https://%s/notifications\">See details</a></p>",
		recipientName, message, s.cfg.Domain,
	)
	return s.send(toEmail, subject, html)
}
