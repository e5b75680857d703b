package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"slotbooker/internal/entities"
	apperrors "slotbooker/internal/errors"
	"slotbooker/internal/gcal"
)

// ScheduleConfig describes the bookable grid. Business hours are local
// clock hours; the fixed UTC offset converts them, deliberately without any
// DST awareness.
type ScheduleConfig struct {
	SlotDuration   time.Duration
	StartHourLocal int
	EndHourLocal   int
	UTCOffsetHours int
	LookaheadDays  int
}

func (c ScheduleConfig) StartHourUTC() int {
	return c.StartHourLocal - c.UTCOffsetHours
}

func (c ScheduleConfig) EndHourUTC() int {
	return c.EndHourLocal - c.UTCOffsetHours
}

// SpanUTC returns the instant range covering the entire grid for the
// lookahead window starting at targetDate.
func (c ScheduleConfig) SpanUTC(targetDate time.Time) (time.Time, time.Time) {
	day := targetDate.UTC().Truncate(24 * time.Hour)
	start := day.Add(time.Duration(c.StartHourUTC()) * time.Hour)
	end := day.AddDate(0, 0, c.LookaheadDays).Add(time.Duration(c.EndHourUTC()) * time.Hour)
	return start, end
}

// Candidates generates every candidate start instant in the lookahead
// window: weekdays only, within business hours, in UTC, ascending.
func (c ScheduleConfig) Candidates(targetDate time.Time) []time.Time {
	day := targetDate.UTC().Truncate(24 * time.Hour)

	var candidates []time.Time
	for i := 0; i < c.LookaheadDays; i++ {
		current := day.AddDate(0, 0, i)
		if wd := current.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dayEnd := current.Add(time.Duration(c.EndHourUTC()) * time.Hour)
		for slot := current.Add(time.Duration(c.StartHourUTC()) * time.Hour); slot.Before(dayEnd); slot = slot.Add(c.SlotDuration) {
			candidates = append(candidates, slot)
		}
	}
	return candidates
}

// AvailabilityService computes the bookable slots by intersecting the
// candidate grid with the external calendar's free time and the local
// ledger's booking state.
type AvailabilityService struct {
	repo        SlotStore
	creds       CredentialSource
	newCalendar CalendarFactory
	sched       ScheduleConfig
}

func NewAvailabilityService(repo SlotStore, creds CredentialSource, newCalendar CalendarFactory, sched ScheduleConfig) *AvailabilityService {
	return &AvailabilityService{
		repo:        repo,
		creds:       creds,
		newCalendar: newCalendar,
		sched:       sched,
	}
}

// AvailableSlots returns the ordered available slots for the lookahead
// window starting at targetDate. A calendar query failure fails the whole
// operation; no partial results are returned.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, targetDate time.Time) ([]entities.SlotView, error) {
	httpClient, err := s.creds.Client(ctx)
	if err != nil {
		return nil, err
	}
	cal, err := s.newCalendar(ctx, httpClient)
	if err != nil {
		return nil, apperrors.ErrUnexpected(fmt.Sprintf("failed to build calendar client: %v", err))
	}

	spanStart, spanEnd := s.sched.SpanUTC(targetDate)
	busy, err := cal.BusyWindows(ctx, spanStart, spanEnd)
	if err != nil {
		log.Error().Err(err).Msg("freebusy query failed")
		return nil, apperrors.ErrUnexpected(fmt.Sprintf("failed to query calendar availability: %v", err))
	}

	bookedStarts, err := s.repo.GetBookedStartsBetween(spanStart, spanEnd)
	if err != nil {
		log.Error().Err(err).Msg("booked slot query failed")
		return nil, apperrors.ErrUnexpected("failed to query booked slots")
	}
	bookedSet := make(map[time.Time]struct{}, len(bookedStarts))
	for _, t := range bookedStarts {
		bookedSet[t.UTC()] = struct{}{}
	}

	available := []entities.SlotView{}
	for _, candidate := range s.sched.Candidates(targetDate) {
		if externallyBusy(busy, candidate) {
			continue
		}
		if _, booked := bookedSet[candidate]; booked {
			continue
		}
		available = append(available, entities.AvailableSlotView(candidate))
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].DatetimeUTC.Before(available[j].DatetimeUTC)
	})
	return available, nil
}

func externallyBusy(windows []gcal.BusyWindow, t time.Time) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
