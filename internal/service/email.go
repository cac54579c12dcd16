package service

import (
	"context"
	"fmt"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error {
	subject := fmt.Sprintf("Booking confirmed - %s", b.Reference)
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s is confirmed.\n\nPickup: %s at %s\nReturn: %s at %s\nTotal: $%s\n\nThank you for choosing us.",
		name, b.Reference,
		b.PickupDate.Format("Jan 2, 2006 3:04 PM"), b.PickupLocation,
		b.ReturnDate.Format("Jan 2, 2006 3:04 PM"), b.DropoffLocation,
		b.Total.StringFixed(2))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error {
	subject := fmt.Sprintf("Return reminder - %s", b.Reference)
	body := fmt.Sprintf("Hello %s,\n\nA reminder that your rental %s is due back on %s at %s.\n\nLate returns past the grace period are charged a late fee.",
		name, b.Reference, b.ReturnDate.Format("Jan 2, 2006 3:04 PM"), b.DropoffLocation)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendDepositReleased(ctx context.Context, email, name string, b *domain.Booking, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Deposit released - %s", b.Reference)
	body := fmt.Sprintf("Hello %s,\n\nYour deposit hold of $%s for booking %s has been released. Depending on your bank it may take a few business days to appear.",
		name, amount.StringFixed(2), b.Reference)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOverdueAlert(ctx context.Context, email, name string, b *domain.Booking) error {
	subject := fmt.Sprintf("Vehicle overdue - %s", b.Reference)
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s was due back on %s and is now overdue. Please return the vehicle or contact us as soon as possible.",
		name, b.Reference, b.ReturnDate.Format("Jan 2, 2006 3:04 PM"))
	return s.send(email, name, subject, body)
}
