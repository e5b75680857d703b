package service

import (
	"slotbooker/internal/entities"
)

// AdminService exposes the ledger for operator inspection, booked rows
// included. A row left unbooked after a remote event succeeded is the
// divergence the booking protocol accepts; this listing is how an operator
// finds it.
type AdminService struct {
	repo SlotStore
}

func NewAdminService(repo SlotStore) *AdminService {
	return &AdminService{repo: repo}
}

func (s *AdminService) ListSlots(date string, booked *bool) ([]entities.SlotView, error) {
	slots, err := s.repo.ListSlots(date, booked)
	if err != nil {
		return nil, err
	}
	views := make([]entities.SlotView, 0, len(slots))
	for i := range slots {
		views = append(views, entities.SlotViewFromModel(&slots[i]))
	}
	return views, nil
}
