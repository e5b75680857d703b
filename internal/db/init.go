package db

import "database/sql"

// InitDB creates the schema if it does not exist yet.
func InitDB(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		id TEXT PRIMARY KEY,
		datetime_utc TIMESTAMPTZ NOT NULL,
		is_booked BOOLEAN NOT NULL DEFAULT FALSE,
		booked_by_name TEXT,
		booked_by_email TEXT,
		description TEXT,
		google_event_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_slots_datetime_utc ON slots (datetime_utc)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`)
	return err
}
