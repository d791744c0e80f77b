package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/weddlist/backend/internal/config"
)

// Mailer sends the invite and magic-link emails over SMTP.
type Mailer struct {
	addr    string
	auth    smtp.Auth
	from    string
	baseURL string
}

func New(cfg *config.Config) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &Mailer{
		addr:    cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth:    auth,
		from:    cfg.MailFrom,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// SendInvite mails a collaborator the join link for a wedding.
func (m *Mailer) SendInvite(to, inviteCode, brideName, groomName string) error {
	link := fmt.Sprintf("%s/invite/%s", m.baseURL, inviteCode)
	subject := fmt.Sprintf("You have been invited to the wedding of %s and %s", brideName, groomName)
	body := fmt.Sprintf(
		"<p>You have been granted access to the guest list for the wedding of %s and %s.</p>"+
			"<p><a href=%q>Open the guest list</a></p>",
		brideName, groomName, link)
	return m.send(to, subject, body)
}

// SendMagicLink mails a single-use sign-in link that re-enters the invite flow.
func (m *Mailer) SendMagicLink(to, inviteCode, token string) error {
	link := fmt.Sprintf("%s/invite/%s?token=%s", m.baseURL, inviteCode, token)
	body := fmt.Sprintf(
		"<p>Click the link below to sign in and open the guest list.</p>"+
			"<p><a href=%q>Sign in</a></p><p>The link expires in one hour.</p>", link)
	return m.send(to, "Your sign-in link", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
