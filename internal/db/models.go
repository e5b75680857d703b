package db

import (
	"database/sql"
	"time"
)

type Slot struct {
	ID            string
	DatetimeUTC   time.Time
	IsBooked      bool
	BookedByName  sql.NullString
	BookedByEmail sql.NullString
	Description   sql.NullString
	GoogleEventID sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
