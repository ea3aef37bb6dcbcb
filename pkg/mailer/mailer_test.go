package mailer

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("meetup@meetwhen.app", "alice@example.com", "Invitation", "Hello Alice")

	for _, want := range []string{
		"From: meetup@meetwhen.app\r\n",
		"To: alice@example.com\r\n",
		"Subject: Invitation\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"\r\n\r\nHello Alice\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestCreatorMessage(t *testing.T) {
	subject, body := CreatorMessage("Team offsite", "https://meetwhen.app/meetup/abc")

	if !strings.Contains(subject, "Team offsite") {
		t.Errorf("subject should carry the title, got %q", subject)
	}
	if !strings.Contains(body, "https://meetwhen.app/meetup/abc") {
		t.Errorf("body should carry the share URL:\n%s", body)
	}
}

func TestInviteMessage(t *testing.T) {
	subject, body := InviteMessage("Team offsite", "https://meetwhen.app/meetup/abc")

	if subject == "" {
		t.Error("subject should not be empty")
	}
	if !strings.Contains(body, "Team offsite") || !strings.Contains(body, "https://meetwhen.app/meetup/abc") {
		t.Errorf("body should carry title and URL:\n%s", body)
	}
}
