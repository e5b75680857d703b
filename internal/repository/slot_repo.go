package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"slotbooker/internal/db"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

const slotColumns = `id, datetime_utc, is_booked, booked_by_name, booked_by_email, description, google_event_id, created_at, updated_at`

func scanSlot(row interface {
	Scan(dest ...interface{}) error
}) (*db.Slot, error) {
	var s db.Slot
	err := row.Scan(
		&s.ID, &s.DatetimeUTC, &s.IsBooked,
		&s.BookedByName, &s.BookedByEmail, &s.Description, &s.GoogleEventID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.DatetimeUTC = s.DatetimeUTC.UTC()
	return &s, nil
}

// GetBookedStartsBetween returns the start instants of booked slots inside
// [start, end), in UTC.
func (r *SlotRepository) GetBookedStartsBetween(start, end time.Time) ([]time.Time, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("end time must be after start time")
	}
	rows, err := r.DB.Query(
		`SELECT datetime_utc FROM slots WHERE is_booked = TRUE AND datetime_utc >= $1 AND datetime_utc < $2`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying booked slots: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("error scanning booked slot start: %w", err)
		}
		starts = append(starts, t.UTC())
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booked slot rows: %w", err)
	}
	return starts, nil
}

// GetSlotByID returns the slot row, or (nil, nil) when no row exists.
func (r *SlotRepository) GetSlotByID(id string) (*db.Slot, error) {
	row := r.DB.QueryRow(`SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying slot %s: %w", id, err)
	}
	return slot, nil
}

// CreateSlot inserts a new unbooked slot row.
func (r *SlotRepository) CreateSlot(slot *db.Slot) error {
	query := `
		INSERT INTO slots (id, datetime_utc, is_booked, created_at, updated_at)
		VALUES ($1, $2, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, slot.ID, slot.DatetimeUTC).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating slot %s: %w", slot.ID, err)
	}
	return nil
}

// EnsureSlot inserts an unbooked row for the slot if none exists yet.
// Reports whether a row was created.
func (r *SlotRepository) EnsureSlot(id string, start time.Time) (bool, error) {
	result, err := r.DB.Exec(
		`INSERT INTO slots (id, datetime_utc, is_booked, created_at, updated_at)
		 VALUES ($1, $2, FALSE, NOW(), NOW())
		 ON CONFLICT (id) DO NOTHING`,
		id, start,
	)
	if err != nil {
		return false, fmt.Errorf("error ensuring slot %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkSlotBooked commits the booking. The UPDATE is conditional on the row
// still being unbooked, so a concurrent commit loses here instead of
// double-booking the ledger. Returns (nil, nil) when the condition failed.
func (r *SlotRepository) MarkSlotBooked(id, name, email, description, eventID string) (*db.Slot, error) {
	query := `
		UPDATE slots
		SET is_booked = TRUE,
			booked_by_name = $2,
			booked_by_email = $3,
			description = NULLIF($4, ''),
			google_event_id = $5,
			updated_at = NOW()
		WHERE id = $1 AND is_booked = FALSE
		RETURNING ` + slotColumns
	row := r.DB.QueryRow(query, id, name, email, description, eventID)
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error marking slot %s booked: %w", id, err)
	}
	return slot, nil
}

// ListSlots returns ledger rows for the admin surface, newest first.
// Filters are optional: date is a YYYY-MM-DD day, booked narrows by state.
func (r *SlotRepository) ListSlots(date string, booked *bool) ([]db.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND DATE(datetime_utc) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if booked != nil {
		query += " AND is_booked = $" + strconv.Itoa(idx)
		args = append(args, *booked)
		idx++
	}
	query += " ORDER BY datetime_utc DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		slots = append(slots, *slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot rows: %w", err)
	}
	return slots, nil
}
