package publisher

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
)

// EmailPublisher delivers generated HTML email over SMTP.
type EmailPublisher struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailPublisher(host, port, username, password, from string) *EmailPublisher {
	return &EmailPublisher{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		sendMail: smtp.SendMail,
	}
}

func (p *EmailPublisher) Configured() bool {
	return p.Host != "" && p.From != ""
}

// Send delivers the HTML body to every recipient in one message.
func (p *EmailPublisher) Send(ctx context.Context, recipients []string, subject, htmlBody string) error {
	if !p.Configured() {
		return appErrors.NewNotConfigured("email")
	}
	if len(recipients) == 0 {
		return appErrors.NewInvalidRequest("recipients are required")
	}
	if htmlBody == "" {
		return appErrors.NewInvalidRequest("content is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if subject == "" {
		subject = "New Content from the Content Hub"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: Content Hub <%s>\r\n", p.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if p.Username != "" {
		auth = smtp.PlainAuth("", p.Username, p.Password, p.Host)
	}

	send := p.sendMail
	if send == nil {
		send = smtp.SendMail
	}
	return send(p.Host+":"+p.Port, auth, p.From, recipients, []byte(msg.String()))
}

// SplitRecipients turns a comma-separated address list into clean entries.
func SplitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
