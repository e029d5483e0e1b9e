package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rollmark/rollmark/internal/encoder"
	"github.com/rollmark/rollmark/internal/names"
	"github.com/rollmark/rollmark/internal/recognition"
	"github.com/rollmark/rollmark/internal/storage"
)

// StudentsHandler handles enrollment and the student list.
type StudentsHandler struct {
	registry *recognition.Registry
	students storage.StudentStore
	encoder  Encoder
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(registry *recognition.Registry, students storage.StudentStore, enc Encoder) *StudentsHandler {
	return &StudentsHandler{registry: registry, students: students, encoder: enc}
}

type enrollRequest struct {
	Name      string `json:"name"`
	Roll      string `json:"roll"`
	ClassName string `json:"class_name"`
	Section   string `json:"section"`
	Image     string `json:"image"` // base64 or data URL
}

type studentResponse struct {
	Roll      string    `json:"roll"`
	Name      string    `json:"name"`
	ClassName string    `json:"class_name"`
	Section   string    `json:"section"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Enroll handles POST /api/v1/students.
func (h *StudentsHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Name == "" || req.Roll == "" {
		respondError(w, http.StatusBadRequest, "name and roll are required")
		return
	}

	imageData, err := decodeImagePayload(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	detected, err := h.encoder.EncodeFaces(r.Context(), imageData)
	if err != nil {
		if errors.Is(err, encoder.ErrUnreadableImage) {
			respondError(w, http.StatusBadRequest, "could not read image")
			return
		}
		respondError(w, http.StatusBadGateway, "face encoder unavailable")
		return
	}
	if len(detected) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "no face detected in the enrollment photo")
		return
	}
	if len(detected) > 1 {
		respondError(w, http.StatusUnprocessableEntity, "enrollment photo must contain exactly one face")
		return
	}

	student := storage.Student{
		Roll:      req.Roll,
		Name:      req.Name,
		ClassName: req.ClassName,
		Section:   req.Section,
		Embedding: detected[0].Embedding,
	}
	if err := h.registry.Add(r.Context(), student); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateRoll):
			respondError(w, http.StatusConflict, "roll already enrolled")
		case errors.Is(err, recognition.ErrInvalidEmbedding):
			respondError(w, http.StatusBadGateway, "encoder returned a malformed embedding")
		default:
			respondError(w, http.StatusInternalServerError, "enrollment failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, studentResponse{
		Roll:      student.Roll,
		Name:      student.Name,
		ClassName: student.ClassName,
		Section:   student.Section,
	})
}

// List handles GET /api/v1/students. The optional q parameter filters by
// name, case- and diacritics-insensitively.
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.ListStudents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "listing students failed")
		return
	}

	q := r.URL.Query().Get("q")
	out := make([]studentResponse, 0, len(students))
	for _, s := range students {
		if q != "" && !names.Contains(s.Name, q) {
			continue
		}
		out = append(out, studentResponse{
			Roll:      s.Roll,
			Name:      s.Name,
			ClassName: s.ClassName,
			Section:   s.Section,
			CreatedAt: s.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"students": out})
}
