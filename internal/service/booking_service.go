package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"slotbooker/internal/db"
	"slotbooker/internal/entities"
	apperrors "slotbooker/internal/errors"
	"slotbooker/internal/gcal"
)

// BookingService commits a single booking. The steps are ordered so the
// remote calendar event is created before the local row is marked booked:
// a failed remote write leaves the ledger untouched, and the only possible
// divergence is "locally unbooked but remote succeeded", which is
// detectable and recoverable.
type BookingService struct {
	repo        SlotStore
	creds       CredentialSource
	newCalendar CalendarFactory
	sender      *SenderService
	sched       ScheduleConfig
}

func NewBookingService(repo SlotStore, creds CredentialSource, newCalendar CalendarFactory, sender *SenderService, sched ScheduleConfig) *BookingService {
	return &BookingService{
		repo:        repo,
		creds:       creds,
		newCalendar: newCalendar,
		sender:      sender,
		sched:       sched,
	}
}

func (s *BookingService) BookSlot(ctx context.Context, slotID string, req entities.BookingRequest) (*entities.SlotView, error) {
	// 1. Calendar authorization, with a single refresh attempt.
	httpClient, err := s.creds.Client(ctx)
	if err != nil {
		return nil, err
	}
	cal, err := s.newCalendar(ctx, httpClient)
	if err != nil {
		return nil, apperrors.ErrUnexpected(fmt.Sprintf("failed to build calendar client: %v", err))
	}

	// 2. The slot id must re-derive its UTC start instant.
	start, err := entities.ParseSlotID(slotID)
	if err != nil {
		return nil, apperrors.ErrValidation("Invalid slot ID format.")
	}
	end := start.Add(s.sched.SlotDuration)

	// 3. Ledger state: booked is a conflict, absent is materialized
	// unbooked.
	slot, err := s.repo.GetSlotByID(slotID)
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("slot lookup failed")
		return nil, apperrors.ErrUnexpected("failed to look up slot")
	}
	if slot != nil && slot.IsBooked {
		return nil, apperrors.ErrConflict("Slot is already booked.")
	}
	if slot == nil {
		slot = &db.Slot{ID: slotID, DatetimeUTC: start}
		if err := s.repo.CreateSlot(slot); err != nil {
			log.Error().Err(err).Str("slot_id", slotID).Msg("slot materialization failed")
			return nil, apperrors.ErrUnexpected("failed to create slot record")
		}
	}

	// 4. Re-check just this slot against the calendar. The availability
	// read and this write are not covered by any lock, so the calendar is
	// re-queried as the final arbiter.
	busy, err := cal.BusyWindows(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("freebusy re-check failed")
		return nil, apperrors.ErrUnexpected(fmt.Sprintf("failed to re-check calendar availability: %v", err))
	}
	if externallyBusy(busy, start) {
		return nil, apperrors.ErrConflict("Slot is no longer available on Google Calendar.")
	}

	// 5. Remote write first. On failure the local row stays unbooked.
	eventID, err := cal.InsertEvent(ctx, gcal.EventRequest{
		Start:         start,
		End:           end,
		Summary:       fmt.Sprintf("Interview: %s", req.BookedByName),
		Description:   eventDescription(req),
		AttendeeEmail: req.BookedByEmail,
	})
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("calendar event creation failed, slot left unbooked")
		if httpErr, ok := err.(*apperrors.HTTPError); ok {
			return nil, httpErr
		}
		return nil, apperrors.ErrUnexpected(fmt.Sprintf("failed to create calendar event: %v", err))
	}

	// 6. Local commit, conditional on the row still being unbooked.
	booked, err := s.repo.MarkSlotBooked(slotID, req.BookedByName, req.BookedByEmail, req.Description, eventID)
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Str("event_id", eventID).
			Msg("local booking commit failed after remote event creation")
		return nil, apperrors.ErrUnexpected("failed to commit booking")
	}
	if booked == nil {
		// Lost a local race after the remote write. The remote event for
		// this request is the divergence the design accepts as recoverable.
		log.Warn().Str("slot_id", slotID).Str("event_id", eventID).
			Msg("slot was booked concurrently, remote event left orphaned")
		return nil, apperrors.ErrConflict("Slot is already booked.")
	}

	log.Info().Str("slot_id", slotID).Str("event_id", eventID).
		Time("start", start).Msg("slot booked")

	if s.sender != nil {
		s.sender.SendBookingConfirmation(req.BookedByEmail, req.BookedByName, start, req.Description)
	}

	view := entities.SlotViewFromModel(booked)
	return &view, nil
}

func eventDescription(req entities.BookingRequest) string {
	if req.Description != "" {
		return req.Description
	}
	return "Interview booking"
}
