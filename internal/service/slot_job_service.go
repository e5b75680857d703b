package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"slotbooker/internal/entities"
)

// SlotJobService pre-generates ledger rows for the bookable grid so the
// slot table reflects the lookahead window without waiting for first
// booking attempts. Booked rows are never touched.
type SlotJobService struct {
	repo  SlotStore
	sched ScheduleConfig
}

func NewSlotJobService(repo SlotStore, sched ScheduleConfig) *SlotJobService {
	return &SlotJobService{repo: repo, sched: sched}
}

// GenerateUpcomingSlots materializes unbooked rows for every grid candidate
// from today through the lookahead window.
func (s *SlotJobService) GenerateUpcomingSlots() error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	candidates := s.sched.Candidates(today)

	created := 0
	for _, start := range candidates {
		inserted, err := s.repo.EnsureSlot(entities.SlotID(start), start)
		if err != nil {
			return fmt.Errorf("slot generation: %w", err)
		}
		if inserted {
			created++
		}
	}

	log.Info().Int("candidates", len(candidates)).Int("created", created).
		Msg("slot pre-generation run complete")
	return nil
}
