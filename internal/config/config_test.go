package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_CALENDAR_ID", "interviews@example.com")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "token.json", cfg.TokenFile)
	assert.Equal(t, 60, cfg.SlotDurationMinutes)
	assert.Equal(t, 9, cfg.BusinessStartHour)
	assert.Equal(t, 17, cfg.BusinessEndHour)
	assert.Equal(t, 2, cfg.BusinessUTCOffsetHour)
	assert.Equal(t, 7, cfg.LookaheadDays)
}

func TestLoadConfigRequiresGoogleSettings(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBusinessHoursLeavingTheUTCDay(t *testing.T) {
	tests := []struct {
		name   string
		offset string
	}{
		// 09:00-17:00 at UTC-8 ends at hour 25 UTC.
		{"west-of-UTC offset pushes the end past midnight", "-8"},
		// 09:00-17:00 at UTC+10 starts at hour -1 UTC.
		{"east-of-UTC offset pushes the start before midnight", "10"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("BUSINESS_UTC_OFFSET_HOURS", tc.offset)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigRejectsInvertedBusinessHours(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BUSINESS_START_HOUR", "17")
	t.Setenv("BUSINESS_END_HOUR", "9")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveSlotDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLOT_DURATION_MINUTES", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}
