package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/core/ports"
)

const verificationSubject = "Your Email Verification Code"

// EmailService delivers verification codes through SendGrid.
type EmailService struct {
	config   *config.EmailConfig
	logger   *logrus.Logger
	client   *sendgrid.Client
	template *template.Template
}

func NewEmailService(cfg *config.EmailConfig, logger *logrus.Logger) (ports.EmailService, error) {
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	tmpl, err := template.ParseFiles("templates/email/verification.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse verification template: %w", err)
	}

	return &EmailService{
		config:   cfg,
		logger:   logger,
		client:   client,
		template: tmpl,
	}, nil
}

// SendVerificationCode sends the one-time code to the given address.
func (e *EmailService) SendVerificationCode(_ context.Context, email, code string) error {
	var body bytes.Buffer
	data := struct {
		Code     string
		FromName string
	}{Code: code, FromName: e.config.FromName}

	if err := e.template.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", email)
	message := mail.NewSingleEmail(from, verificationSubject, recipient, "", body.String())

	response, err := e.client.Send(message)
	if err != nil {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{"to": email}).WithError(err).Error("Failed to send verification email")
		}
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{"to": email, "status_code": response.StatusCode}).Info("Verification email sent")
	}

	return nil
}
