package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/turnosapp/backend/models"
)

// Mailer sends transactional mail over SMTP. A nil Mailer is disabled and
// every Send is a no-op, so the server runs without SMTP configured.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from SMTP_HOST, SMTP_PORT, EMAIL_USER and
// EMAIL_PASS. Returns nil when SMTP_HOST is unset.
func NewMailer() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	user := os.Getenv("EMAIL_USER")
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, os.Getenv("EMAIL_PASS")),
		from:   user,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

// SendConfirmation mails the booking confirmation. The appointment must carry
// its User, Employee and Service associations.
func (m *Mailer) SendConfirmation(a *models.Appointment) error {
	if m == nil || a.User.Email == nil {
		return nil
	}
	subject := fmt.Sprintf("Turno confirmado para el %s", a.Date)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Tu turno fue confirmado.</p>
		<ul>
			<li><strong>Servicio:</strong> %s</li>
			<li><strong>Profesional:</strong> %s</li>
			<li><strong>Fecha:</strong> %s</li>
			<li><strong>Hora:</strong> %s</li>
		</ul>
		<p>Si necesitás cancelar o reprogramar, avisanos con anticipación.</p>
	`, a.User.Name, a.Service.Name, a.Employee.Name, a.Date, a.Time)
	return m.Send(*a.User.Email, subject, body)
}

// SendReminder mails the day-before reminder for a confirmed appointment.
func (m *Mailer) SendReminder(a *models.Appointment) error {
	if m == nil || a.User.Email == nil {
		return nil
	}
	subject := fmt.Sprintf("Recordatorio: turno el %s a las %s", a.Date, a.Time)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Te recordamos tu turno de mañana.</p>
		<ul>
			<li><strong>Servicio:</strong> %s</li>
			<li><strong>Profesional:</strong> %s</li>
			<li><strong>Fecha:</strong> %s</li>
			<li><strong>Hora:</strong> %s</li>
		</ul>
		<p>Te esperamos. Si no podés asistir, cancelá el turno con anticipación.</p>
	`, a.User.Name, a.Service.Name, a.Employee.Name, a.Date, a.Time)
	return m.Send(*a.User.Email, subject, body)
}
