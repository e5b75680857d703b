package gcal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	apperrors "slotbooker/internal/errors"
)

// BusyWindow is an external-calendar-reported interval of unavailability.
// Both instants are UTC.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant falls inside the window. The start
// is inclusive, the end exclusive.
func (w BusyWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// EventRequest describes the calendar event created for a booking.
type EventRequest struct {
	Start         time.Time
	End           time.Time
	Summary       string
	Description   string
	AttendeeEmail string
}

// Client wraps the Google Calendar v3 service for a single calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

func NewClient(ctx context.Context, httpClient *http.Client, calendarID string) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

// BusyWindows queries free/busy for the span and returns the busy intervals
// in UTC.
func (c *Client) BusyWindows(ctx context.Context, start, end time.Time) ([]BusyWindow, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: c.calendarID}},
	}
	resp, err := c.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}
	cal, ok := resp.Calendars[c.calendarID]
	if !ok {
		return nil, fmt.Errorf("freebusy response missing calendar %s", c.calendarID)
	}
	var windows []BusyWindow
	for _, period := range cal.Busy {
		busyStart, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid busy period start %q: %w", period.Start, err)
		}
		busyEnd, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("invalid busy period end %q: %w", period.End, err)
		}
		windows = append(windows, BusyWindow{
			Start: busyStart.UTC(),
			End:   busyEnd.UTC(),
		})
	}
	return windows, nil
}

// InsertEvent creates the event on the calendar and returns its id. A
// rejection from the calendar API surfaces with the upstream status code.
func (c *Client) InsertEvent(ctx context.Context, req EventRequest) (string, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: req.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: []*calendar.EventAttendee{
			{Email: req.AttendeeEmail},
			{Email: c.calendarID},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: conferenceRequestID(req.Start),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		if gerr, ok := err.(*googleapi.Error); ok {
			return "", apperrors.ErrUpstream(gerr.Code, fmt.Sprintf("Google Calendar API error: %s", gerr.Message))
		}
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return created.Id, nil
}

func conferenceRequestID(start time.Time) string {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		// Entropy failure: fall back to a clock-derived suffix, the id only
		// needs to be unique per create request.
		return fmt.Sprintf("booking-%s-%x", start.UTC().Format("20060102150405"), time.Now().UnixNano())
	}
	return fmt.Sprintf("booking-%s-%s", start.UTC().Format("20060102150405"), hex.EncodeToString(buf))
}
