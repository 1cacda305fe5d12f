package notification

import (
	"context"
	"fmt"

	"bookline/models"

	"gopkg.in/gomail.v2"
)

const confirmationSubject = "Appointment Confirmed ✅"

// SMTPNotificationService sends confirmation e-mails over plain SMTP.
type SMTPNotificationService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotificationService(host string, port int, user, pass, from string) *SMTPNotificationService {
	if from == "" {
		from = user
	}
	return &SMTPNotificationService{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// SendBookingConfirmation delivers the confirmation synchronously but
// honors the caller's deadline, since gomail itself has no context support.
func (s *SMTPNotificationService) SendBookingConfirmation(ctx context.Context, b models.Booking) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, "Appointment Booking")
	m.SetHeader("To", b.Email)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/plain", confirmationBody(b))

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send confirmation to %s: %w", b.Email, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send confirmation to %s: %w", b.Email, ctx.Err())
	}
}

func confirmationBody(b models.Booking) string {
	return fmt.Sprintf(`Hello %s,

Your appointment has been successfully booked.

City: %s
Date: %s
Time: %s

Thank you for choosing us.
`, b.Name, b.City, b.Date, b.Time)
}
