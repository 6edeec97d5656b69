// Package notify sends transactional email (OTP codes, driver-assignment
// reminders). Mailer is an interface so alternative channels can be
// plugged in later.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// ConsoleMailer logs instead of sending; used in dev and tests.
type ConsoleMailer struct{}

func (ConsoleMailer) Send(to, subject, body string) error {
	log.Printf("[mail] to=%s subject=%q :: %s", to, subject, strings.ReplaceAll(body, "\n", " "))
	return nil
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	From string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	if strings.TrimSpace(m.Host) == "" {
		return fmt.Errorf("smtp host not configured")
	}
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(m.Host+":"+m.Port, nil, m.From, []string{to}, []byte(msg))
}
