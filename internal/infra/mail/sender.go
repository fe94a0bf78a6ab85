package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const reminderTimeLayout = "Mon 2 Jan 2006, 15:04 MST"

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendReminder(to, name, activity, company string, at time.Time) error {
	data := ReminderEmailData{
		Name:     greetingName(name),
		Activity: activity,
		Company:  company,
		At:       at.Format(reminderTimeLayout),
	}
	subject := fmt.Sprintf("Reminder: %s", activity)
	if company != "" {
		subject = fmt.Sprintf("Reminder: %s for %s", activity, company)
	}
	return s.send(to, subject, "reminder.html", data)
}

func (s *EmailSender) SendLeadAssigned(to, name, company, leadID string) error {
	data := LeadAssignedEmailData{
		Name:    greetingName(name),
		Company: company,
	}
	if s.AppURL != "" && leadID != "" {
		data.Link = strings.TrimRight(s.AppURL, "/") + "/leads/" + leadID
	}
	return s.send(to, fmt.Sprintf("New lead assigned: %s", company), "lead_assigned.html", data)
}

func (s *EmailSender) send(to, subject, tmpl string, data any) error {
	m, err := s.compose(to, subject, tmpl, data)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send SMTP e-mail: %w", err)
	}
	return nil
}

func (s *EmailSender) compose(to, subject, tmpl string, data any) (*gomail.Message, error) {
	body, err := renderBody(tmpl, data)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m, nil
}

func renderBody(tmpl string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl, err)
	}
	return body.String(), nil
}

func greetingName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "there"
}
