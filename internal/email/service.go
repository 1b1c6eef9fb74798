package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/scheduling-api/internal/config"
)

// Service delivers outbound email.
type Service interface {
	SendNotification(ctx context.Context, to, subject, content string) error
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPService struct {
	dialer Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) *SMTPService {
	return NewService(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

func NewService(dialer Dialer, from string) *SMTPService {
	return &SMTPService{dialer: dialer, from: from}
}

func (s *SMTPService) SendNotification(ctx context.Context, to, subject, content string) error {
	if to == "" {
		return errors.New("recipient address is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
