package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"slotbooker/internal/entities"
	"slotbooker/internal/service"
)

type SlotHandler struct {
	Availability *service.AvailabilityService
	Booking      *service.BookingService
}

func NewSlotHandler(availability *service.AvailabilityService, booking *service.BookingService) *SlotHandler {
	return &SlotHandler{Availability: availability, Booking: booking}
}

// GetSlots handles GET /api/slots?target_date=YYYY-MM-DD.
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	targetDate := time.Now().UTC()
	if raw := r.URL.Query().Get("target_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "target_date must be YYYY-MM-DD"})
			return
		}
		targetDate = parsed.UTC()
	}

	slots, err := h.Availability.AvailableSlots(r.Context(), targetDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// BookSlot handles POST /api/slots/{slot_id}/book.
func (h *SlotHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slot_id"]

	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.BookedByName == "" || req.BookedByEmail == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "booked_by_name and booked_by_email are required"})
		return
	}
	if !strings.Contains(req.BookedByEmail, "@") {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "booked_by_email is not a valid email address"})
		return
	}

	slot, err := h.Booking.BookSlot(r.Context(), slotID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

// Root handles GET /.
func (h *SlotHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Welcome to the Interview Booking API!"})
}
