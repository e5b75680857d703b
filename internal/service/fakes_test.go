package service

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"slotbooker/internal/db"
	"slotbooker/internal/gcal"
)

// fakeStore is an in-memory SlotStore. preMark, when set, runs before the
// booked-commit check, standing in for a concurrent writer.
type fakeStore struct {
	slots   map[string]*db.Slot
	preMark func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{slots: map[string]*db.Slot{}}
}

func (f *fakeStore) add(slot *db.Slot) {
	f.slots[slot.ID] = slot
}

func (f *fakeStore) GetBookedStartsBetween(start, end time.Time) ([]time.Time, error) {
	var starts []time.Time
	for _, s := range f.slots {
		if s.IsBooked && !s.DatetimeUTC.Before(start) && s.DatetimeUTC.Before(end) {
			starts = append(starts, s.DatetimeUTC.UTC())
		}
	}
	return starts, nil
}

func (f *fakeStore) GetSlotByID(id string) (*db.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeStore) CreateSlot(slot *db.Slot) error {
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	copied := *slot
	f.slots[slot.ID] = &copied
	return nil
}

func (f *fakeStore) EnsureSlot(id string, start time.Time) (bool, error) {
	if _, ok := f.slots[id]; ok {
		return false, nil
	}
	f.slots[id] = &db.Slot{ID: id, DatetimeUTC: start.UTC()}
	return true, nil
}

func (f *fakeStore) MarkSlotBooked(id, name, email, description, eventID string) (*db.Slot, error) {
	if f.preMark != nil {
		f.preMark()
	}
	slot, ok := f.slots[id]
	if !ok || slot.IsBooked {
		return nil, nil
	}
	slot.IsBooked = true
	slot.BookedByName = sql.NullString{String: name, Valid: true}
	slot.BookedByEmail = sql.NullString{String: email, Valid: true}
	slot.Description = sql.NullString{String: description, Valid: description != ""}
	slot.GoogleEventID = sql.NullString{String: eventID, Valid: true}
	slot.UpdatedAt = time.Now().UTC()
	copied := *slot
	return &copied, nil
}

func (f *fakeStore) ListSlots(date string, booked *bool) ([]db.Slot, error) {
	var out []db.Slot
	for _, s := range f.slots {
		if booked != nil && s.IsBooked != *booked {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

// fakeCalendar is an in-memory CalendarClient.
type fakeCalendar struct {
	busy        []gcal.BusyWindow
	busyErr     error
	insertErr   error
	insertedIDs []string
	inserted    []gcal.EventRequest
}

func (f *fakeCalendar) BusyWindows(ctx context.Context, start, end time.Time) ([]gcal.BusyWindow, error) {
	if f.busyErr != nil {
		return nil, f.busyErr
	}
	var inRange []gcal.BusyWindow
	for _, w := range f.busy {
		if w.Start.Before(end) && w.End.After(start) {
			inRange = append(inRange, w)
		}
	}
	return inRange, nil
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, req gcal.EventRequest) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	id := "evt-" + req.Start.UTC().Format("20060102150405")
	f.insertedIDs = append(f.insertedIDs, id)
	f.inserted = append(f.inserted, req)
	return id, nil
}

// fakeCreds satisfies CredentialSource without touching any oauth flow.
type fakeCreds struct {
	err error
}

func (f *fakeCreds) Client(ctx context.Context) (*http.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return http.DefaultClient, nil
}

func calendarFactory(cal CalendarClient) CalendarFactory {
	return func(ctx context.Context, httpClient *http.Client) (CalendarClient, error) {
		return cal, nil
	}
}

func testSchedule() ScheduleConfig {
	return ScheduleConfig{
		SlotDuration:   time.Hour,
		StartHourLocal: 9,
		EndHourLocal:   17,
		UTCOffsetHours: 2,
		LookaheadDays:  7,
	}
}
