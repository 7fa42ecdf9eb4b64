package email

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Jidetireni/gym-manager/internal/config"
	"gopkg.in/gomail.v2"
)

type Email struct {
	config *config.Config
	cache  *EmailTemplateCache
	// Out receives messages in development instead of SMTP.
	Out io.Writer
}

func New(cfg *config.Config) (*Email, error) {
	cache, err := NewEmailTemplateCache(templatesFS, 10)
	if err != nil {
		return nil, err
	}

	return &Email{
		config: cfg,
		cache:  cache,
		Out:    os.Stdout,
	}, nil
}

func (e *Email) Render(name EmailTemplateType, data any) (string, error) {
	return e.cache.Render(name, data)
}

func (e *Email) Send(ctx context.Context, input *SendEmailInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.config.IsDev {
		fmt.Fprintf(e.Out, "--- Email to be sent to %s ---\n", input.To)
		fmt.Fprintf(e.Out, "Subject: %s\n", input.Subject)
		fmt.Fprintln(e.Out, "Body:")
		fmt.Fprintln(e.Out, input.Body)
		fmt.Fprintln(e.Out, "---------------------------------")
		return nil
	}

	if e.config.Email.From == "" {
		return fmt.Errorf("EMAIL_FROM is not set")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.config.Email.From)
	m.SetHeader("To", input.To)
	m.SetHeader("Subject", input.Subject)
	m.SetBody("text/html", input.Body)

	username := e.config.Email.Username
	if username == "" {
		username = e.config.Email.From
	}
	d := gomail.NewDialer(e.config.Email.Host, e.config.Email.Port, username, e.config.Email.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
