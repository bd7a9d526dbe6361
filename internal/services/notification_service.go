// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/config"
	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

// NotificationService sends transactional emails. Every send is fire and
// forget: a mail failure is logged, never returned to the request that
// triggered it.
type NotificationService struct {
	cfg config.EmailConfig
}

func NewNotificationService(cfg config.EmailConfig) *NotificationService {
	return &NotificationService{cfg: cfg}
}

func (s *NotificationService) enabled() bool {
	return s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != ""
}

func (s *NotificationService) send(to, subject, htmlBody string) {
	if !s.enabled() {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

		msg := fmt.Sprintf(
			"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
			s.cfg.FromName, s.cfg.FromEmail, to, subject, htmlBody,
		)

		if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(msg)); err != nil {
			logrus.WithError(err).WithField("to", to).Error("Failed to send email")
		}
	}()
}

var contactAckTemplate = template.Must(template.New("contact_ack").Parse(`
<h2>Hi {{.Name}},</h2>
<p>Thank you for reaching out. We have received your inquiry
"<strong>{{.Subject}}</strong>" and our team will get back to you within 24 hours.</p>
<p>Warm regards,<br>Team Saarthi</p>
`))

func (s *NotificationService) SendContactAcknowledgement(contact *models.Contact) {
	var body bytes.Buffer
	if err := contactAckTemplate.Execute(&body, contact); err != nil {
		logrus.WithError(err).Error("Failed to render acknowledgement email")
		return
	}
	s.send(contact.Email, "We received your inquiry", body.String())
}

var ownerAlertTemplate = template.Must(template.New("owner_alert").Parse(`
<h2>Hi {{.OwnerName}},</h2>
<p>You have a new inquiry for <strong>{{.PropertyTitle}}</strong> ({{.PropertyPrice}}).</p>
<p><strong>From:</strong> {{.ContactName}} ({{.ContactPhone}})<br>
<strong>Interested in:</strong> {{.InterestedIn}}</p>
<blockquote>{{.Message}}</blockquote>
<p>Warm regards,<br>Team Saarthi</p>
`))

func (s *NotificationService) SendOwnerInquiryAlert(owner *models.User, property *models.Property, contact *models.Contact) {
	if owner == nil || owner.Email == "" {
		return
	}

	var body bytes.Buffer
	err := ownerAlertTemplate.Execute(&body, map[string]interface{}{
		"OwnerName":     owner.Name,
		"PropertyTitle": property.Title,
		"PropertyPrice": utils.FormatPrice(property.Price),
		"ContactName":   contact.Name,
		"ContactPhone":  contact.Phone,
		"InterestedIn":  contact.InterestedIn,
		"Message":       contact.Message,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to render owner alert email")
		return
	}
	s.send(owner.Email, "New inquiry for your property", body.String())
}

var bookingStatusTemplate = template.Must(template.New("booking_status").Parse(`
<h2>Hi {{.Name}},</h2>
<p>Your site visit for <strong>{{.PropertyTitle}}</strong> on
{{.VisitDate}} at {{.VisitTime}} is now <strong>{{.Status}}</strong>.</p>
<p>Warm regards,<br>Team Saarthi</p>
`))

func (s *NotificationService) SendBookingStatusUpdate(booking *models.Booking) {
	to := booking.Contact.Email
	if to == "" {
		to = booking.User.Email
	}
	if to == "" {
		return
	}

	var body bytes.Buffer
	err := bookingStatusTemplate.Execute(&body, map[string]interface{}{
		"Name":          booking.Contact.Name,
		"PropertyTitle": booking.Property.Title,
		"VisitDate":     booking.VisitDate.Format("02 Jan 2006"),
		"VisitTime":     booking.VisitTime,
		"Status":        booking.Status,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to render booking status email")
		return
	}
	s.send(to, "Your site visit update", body.String())
}
