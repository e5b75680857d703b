package service

import (
	"context"
	"net/http"
	"time"

	"slotbooker/internal/db"
	"slotbooker/internal/gcal"
)

// SlotStore is the slot ledger as the services see it.
type SlotStore interface {
	GetBookedStartsBetween(start, end time.Time) ([]time.Time, error)
	GetSlotByID(id string) (*db.Slot, error)
	CreateSlot(slot *db.Slot) error
	EnsureSlot(id string, start time.Time) (bool, error)
	MarkSlotBooked(id, name, email, description, eventID string) (*db.Slot, error)
	ListSlots(date string, booked *bool) ([]db.Slot, error)
}

// CredentialSource resolves an authorized HTTP client for the external
// calendar, refreshing and persisting the stored credential when needed.
type CredentialSource interface {
	Client(ctx context.Context) (*http.Client, error)
}

// CalendarClient is the external calendar surface the reconciler and the
// booking coordinator depend on.
type CalendarClient interface {
	BusyWindows(ctx context.Context, start, end time.Time) ([]gcal.BusyWindow, error)
	InsertEvent(ctx context.Context, req gcal.EventRequest) (string, error)
}

// CalendarFactory builds a CalendarClient from an authorized HTTP client.
type CalendarFactory func(ctx context.Context, httpClient *http.Client) (CalendarClient, error)
