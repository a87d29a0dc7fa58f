package notify

import (
	"log/slog"
	"net/smtp"
)

// Notifier delivers best-effort messages. Implementations must never block
// the caller or surface delivery failures beyond logging.
type Notifier interface {
	Send(subject, body string)
}

// Mailer sends notifications over SMTP. A mailer without credentials is a
// configured no-op, matching deployments that run without mail.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	recipient string
}

func NewMailer(host, port, username, password, recipient string) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		recipient: recipient,
	}
}

// Send delivers asynchronously; errors are logged and dropped.
func (m *Mailer) Send(subject, body string) {
	if m == nil || m.username == "" || m.password == "" {
		return
	}

	go func() {
		msg := []byte("From: " + m.username + "\r\n" +
			"To: " + m.recipient + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" + body + "\r\n")

		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := smtp.SendMail(m.host+":"+m.port, auth, m.username, []string{m.recipient}, msg); err != nil {
			slog.Warn("email notification failed", "error", err)
		}
	}()
}
