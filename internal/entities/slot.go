package entities

import (
	"time"

	"slotbooker/internal/db"
)

// SlotView is the slot representation returned by the API. Booker fields
// are only present once the slot is booked.
type SlotView struct {
	ID            string    `json:"id"`
	DatetimeUTC   time.Time `json:"datetime_utc"`
	IsBooked      bool      `json:"is_booked"`
	BookedByName  *string   `json:"booked_by_name,omitempty"`
	BookedByEmail *string   `json:"booked_by_email,omitempty"`
	Description   *string   `json:"description,omitempty"`
}

type BookingRequest struct {
	BookedByName  string `json:"booked_by_name"`
	BookedByEmail string `json:"booked_by_email"`
	Description   string `json:"description,omitempty"`
}

func SlotViewFromModel(s *db.Slot) SlotView {
	view := SlotView{
		ID:          s.ID,
		DatetimeUTC: s.DatetimeUTC.UTC(),
		IsBooked:    s.IsBooked,
	}
	if s.BookedByName.Valid {
		view.BookedByName = &s.BookedByName.String
	}
	if s.BookedByEmail.Valid {
		view.BookedByEmail = &s.BookedByEmail.String
	}
	if s.Description.Valid {
		view.Description = &s.Description.String
	}
	return view
}

// AvailableSlotView builds the view for a candidate that exists only as a
// grid instant, not yet as a ledger row.
func AvailableSlotView(start time.Time) SlotView {
	return SlotView{
		ID:          SlotID(start),
		DatetimeUTC: start.UTC(),
		IsBooked:    false,
	}
}
