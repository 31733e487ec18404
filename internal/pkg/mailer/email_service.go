package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	host       string
	port       int
	email      string
	password   string
	senderName string
}

func NewEmailService(host string, port int, email, password, senderName string) *EmailService {
	return &EmailService{
		host:       host,
		port:       port,
		email:      email,
		password:   password,
		senderName: senderName,
	}
}

// Configured reports whether SMTP credentials are present. Mail is a best
// effort side channel; callers skip sending when this is false.
func (s *EmailService) Configured() bool {
	return s.host != "" && s.email != ""
}

func (s *EmailService) SendWelcome(to, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.email, s.senderName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to NotesAI")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your NotesAI account is ready. Start capturing notes and let the assistant do the heavy lifting.</p>",
		fullName,
	))

	d := gomail.NewDialer(s.host, s.port, s.email, s.password)
	return d.DialAndSend(m)
}
