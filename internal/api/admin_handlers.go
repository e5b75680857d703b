package api

import (
	"net/http"
	"strconv"

	"slotbooker/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListSlots handles GET /admin/slots?date=YYYY-MM-DD&booked=true|false.
func (h *AdminHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	var booked *bool
	if raw := r.URL.Query().Get("booked"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "booked must be true or false"})
			return
		}
		booked = &parsed
	}

	slots, err := h.Service.ListSlots(date, booked)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Database error"})
		return
	}
	writeJSON(w, http.StatusOK, slots)
}
