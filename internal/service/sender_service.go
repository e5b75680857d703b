package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"slotbooker/internal/entities"
)

type SenderService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSenderService(apiKey, fromEmail, fromName string) *SenderService {
	if fromName == "" {
		fromName = "Interview Booking"
	}
	return &SenderService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

// SendBookingConfirmation emails the booker asynchronously. A send failure
// is logged and never affects the booking result.
func (s *SenderService) SendBookingConfirmation(toEmail, toName string, start time.Time, description string) {
	if s.apiKey == "" || s.fromEmail == "" {
		log.Warn().Msg("SendGrid not configured, skipping booking confirmation email")
		return
	}

	data := entities.BookingEmailData{
		BookerName:         toName,
		SlotID:             entities.SlotID(start),
		StartTimeFormatted: start.UTC().Format("02 Jan 2006 15:04 MST"),
		Description:        description,
		CurrentYear:        time.Now().UTC().Year(),
	}

	subject := fmt.Sprintf("Your interview slot is confirmed - %s", data.StartTimeFormatted)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour interview slot has been booked.\n\n"+
			"Details:\n"+
			"Start (UTC): %s\n"+
			"Notes: %s\n\n"+
			"A calendar invitation has been sent to this address.\n",
		data.BookerName, data.StartTimeFormatted, data.Description,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your interview slot has been booked.</p>"+
			"<p><b>Start (UTC):</b> %s<br><b>Notes:</b> %s</p>"+
			"<p>A calendar invitation has been sent to this address.</p>",
		data.BookerName, data.StartTimeFormatted, data.Description,
	)

	go func() {
		from := mail.NewEmail(s.fromName, s.fromEmail)
		to := mail.NewEmail(toName, toEmail)
		message := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)

		client := sendgrid.NewSendClient(s.apiKey)
		response, err := client.Send(message)
		if err != nil {
			log.Error().Err(err).Str("to", toEmail).Msg("failed to send booking confirmation email")
			return
		}
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			log.Error().Int("status", response.StatusCode).Str("to", toEmail).
				Str("body", response.Body).Msg("SendGrid returned a non-success status")
			return
		}
		log.Info().Str("to", toEmail).Msg("booking confirmation email sent")
	}()
}
