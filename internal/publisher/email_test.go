package publisher

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  []byte
}

func testPublisher(sent *[]sentMail) *EmailPublisher {
	p := NewEmailPublisher("smtp.example.com", "587", "user", "secret", "hub@example.com")
	p.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, sentMail{addr, a, from, to, msg})
		return nil
	}
	return p
}

func TestSendBuildsHTMLMessage(t *testing.T) {
	var sent []sentMail
	p := testPublisher(&sent)

	err := p.Send(context.Background(), []string{"a@example.com", "b@example.com"}, "Launch", "<html><body>Hi</body></html>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected one send, got %d", len(sent))
	}

	m := sent[0]
	if m.addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", m.addr)
	}
	if m.from != "hub@example.com" || len(m.to) != 2 {
		t.Errorf("envelope wrong: from=%q to=%v", m.from, m.to)
	}
	if m.auth == nil {
		t.Error("plain auth expected when a username is configured")
	}

	body := string(m.msg)
	for _, want := range []string{
		"From: Content Hub <hub@example.com>",
		"To: a@example.com, b@example.com",
		"Subject: Launch",
		`Content-Type: text/html; charset="UTF-8"`,
		"<html><body>Hi</body></html>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSendDefaultsSubject(t *testing.T) {
	var sent []sentMail
	p := testPublisher(&sent)

	if err := p.Send(context.Background(), []string{"a@example.com"}, "", "<p>x</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(sent[0].msg), "Subject: New Content from the Content Hub") {
		t.Error("default subject not applied")
	}
}

func TestSendSkipsAuthWithoutUsername(t *testing.T) {
	var sent []sentMail
	p := testPublisher(&sent)
	p.Username = ""

	if err := p.Send(context.Background(), []string{"a@example.com"}, "s", "<p>x</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent[0].auth != nil {
		t.Error("auth should be nil for an open relay")
	}
}

func TestSendValidates(t *testing.T) {
	var sent []sentMail
	p := testPublisher(&sent)

	if err := p.Send(context.Background(), nil, "s", "<p>x</p>"); !appErrors.IsInvalidRequest(err) {
		t.Errorf("no recipients: expected invalid request, got %v", err)
	}
	if err := p.Send(context.Background(), []string{"a@example.com"}, "s", ""); !appErrors.IsInvalidRequest(err) {
		t.Errorf("empty body: expected invalid request, got %v", err)
	}

	unconfigured := NewEmailPublisher("", "", "", "", "")
	if err := unconfigured.Send(context.Background(), []string{"a@example.com"}, "s", "<p>x</p>"); !appErrors.IsNotConfigured(err) {
		t.Errorf("expected not configured, got %v", err)
	}

	if len(sent) != 0 {
		t.Errorf("nothing should be sent on validation failure, got %d", len(sent))
	}
}

func TestSplitRecipients(t *testing.T) {
	got := SplitRecipients(" a@example.com, ,b@example.com ,")
	if len(got) != 2 || got[0] != "a@example.com" || got[1] != "b@example.com" {
		t.Errorf("got %v", got)
	}
	if got := SplitRecipients(""); len(got) != 0 {
		t.Errorf("empty input should yield no recipients, got %v", got)
	}
}
