package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers one transactional message. Implementations must be safe
// for concurrent use.
type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender delivers mail over plain SMTP. Works against a local relay or
// a Mailpit-style dev server; provider retries live behind the relay, not
// here.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", strings.TrimSpace(host), strings.TrimSpace(port)),
		from: strings.TrimSpace(from),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message, plain text only.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
