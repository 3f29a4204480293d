package auth

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
)

type Mailer interface {
	SendLink(ctx context.Context, to, link string) error
}

// SMTPMailer delivers the sign-in link through a plain SMTP relay.
type SMTPMailer struct {
	Addr string
	From string
}

func (m SMTPMailer) SendLink(_ context.Context, to, link string) error {
	msg := fmt.Appendf(nil,
		"From: %s\r\nTo: %s\r\nSubject: Your sign-in link\r\n\r\nFollow this link to sign in:\r\n\r\n%s\r\n\r\nThe link is valid once, for 15 minutes.\r\n",
		m.From, to, link)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, msg)
}

// LogMailer is the dev fallback when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) SendLink(_ context.Context, to, link string) error {
	log.Printf("[Mailer] sign-in link for %s: %s", to, link)
	return nil
}
