package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	subjectVerification   = "Mystery Message | VERIFICATION CODE"
	subjectPasswordUpdate = "Mystery Message | PASSWORD UPDATE"
)

type mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// Sender renders one-time code emails and hands them to a mail transport.
type Sender struct {
	mailer   mailer
	validFor time.Duration
}

func NewSender(m mailer, codeTTL time.Duration) *Sender {
	return &Sender{mailer: m, validFor: codeTTL}
}

// SendVerificationCode delivers a registration code.
func (s *Sender) SendVerificationCode(ctx context.Context, email, username, code string) error {
	return s.send(ctx, "verification.html", subjectVerification, email, username, code)
}

// SendPasswordResetCode delivers a password-reset code.
func (s *Sender) SendPasswordResetCode(ctx context.Context, email, username, code string) error {
	return s.send(ctx, "password_update.html", subjectPasswordUpdate, email, username, code)
}

func (s *Sender) send(ctx context.Context, tmpl, subject, email, username, code string) error {
	var buf bytes.Buffer
	data := struct {
		Username string
		Code     string
		ValidFor string
	}{username, code, humanize(s.validFor)}
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}
	return s.mailer.SendEmail(ctx, email, subject, buf.String())
}

func humanize(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", d/time.Hour)
	case d >= time.Minute:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	default:
		return d.String()
	}
}
