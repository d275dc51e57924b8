package mailer

import (
	"context"
	"fmt"
	"io"

	"github.com/fleet/backend/internal/infrastructure/config"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends period reports over SMTP using gomail
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPeriodReport mails the report to the configured recipients with the
// workbook attached. The context is checked before dialing; gomail itself
// does not support cancellation mid-send.
func (m *SMTPMailer) SendPeriodReport(ctx context.Context, subject, body, filename string, attachment []byte) error {
	if len(m.cfg.To) == 0 {
		return fmt.Errorf("no mail recipients configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send period report: %w", err)
	}
	return nil
}
