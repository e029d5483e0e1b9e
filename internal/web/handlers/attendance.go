package handlers

import (
	"net/http"
	"time"

	"github.com/rollmark/rollmark/internal/storage"
)

// AttendanceHandler serves attendance records.
type AttendanceHandler struct {
	attendance storage.AttendanceStore
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendance storage.AttendanceStore) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type attendanceEntry struct {
	Roll string `json:"roll"`
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// List handles GET /api/v1/attendance?date=YYYY-MM-DD. The date defaults
// to today in the server's local time.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	records, err := h.attendance.ListByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "listing attendance failed")
		return
	}

	entries := make([]attendanceEntry, len(records))
	for i, rec := range records {
		entries[i] = attendanceEntry{Roll: rec.Roll, Name: rec.Name, Date: rec.Date, Time: rec.Time}
	}
	respondJSON(w, http.StatusOK, map[string]any{"date": date, "records": entries})
}
