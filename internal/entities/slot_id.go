package entities

import (
	"fmt"
	"strings"
	"time"
)

const slotIDTimeLayout = "20060102150405"

// SlotID derives the public slot identifier from its UTC start instant.
// The format is "dynamic-YYYYMMDDHHMMSS-UTC" and must parse back to the
// exact same instant.
func SlotID(start time.Time) string {
	return fmt.Sprintf("dynamic-%s-UTC", start.UTC().Format(slotIDTimeLayout))
}

// ParseSlotID recovers the UTC start instant encoded in a slot identifier.
func ParseSlotID(id string) (time.Time, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "dynamic" || parts[2] != "UTC" {
		return time.Time{}, fmt.Errorf("invalid slot id format: %q", id)
	}
	t, err := time.ParseInLocation(slotIDTimeLayout, parts[1], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot id timestamp: %w", err)
	}
	return t, nil
}
