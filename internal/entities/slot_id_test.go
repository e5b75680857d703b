package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIDRoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	id := SlotID(start)
	assert.Equal(t, "dynamic-20260302070000-UTC", id)

	parsed, err := ParseSlotID(id)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(start))
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestSlotIDNormalizesToUTC(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2026, 3, 2, 9, 0, 0, 0, cest)

	id := SlotID(local)
	assert.Equal(t, "dynamic-20260302070000-UTC", id)
}

func TestParseSlotIDRejectsMalformedIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"plain counter", "slot-17"},
		{"missing prefix", "20260302070000-UTC"},
		{"missing suffix", "dynamic-20260302070000"},
		{"wrong suffix", "dynamic-20260302070000-CET"},
		{"short timestamp", "dynamic-2026030207-UTC"},
		{"non-numeric timestamp", "dynamic-notatimestamp-UTC"},
		{"extra segment", "dynamic-20260302070000-UTC-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlotID(tt.id)
			assert.Error(t, err)
		})
	}
}
