package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rollmark/rollmark/internal/encoder"
	"github.com/rollmark/rollmark/internal/recognition"
)

// RecognizeHandler handles the recognition endpoint: one image frame in,
// per-face identification and attendance outcomes out.
type RecognizeHandler struct {
	pipeline *recognition.Pipeline
	encoder  Encoder
}

// NewRecognizeHandler creates a new recognize handler.
func NewRecognizeHandler(pipeline *recognition.Pipeline, enc Encoder) *RecognizeHandler {
	return &RecognizeHandler{pipeline: pipeline, encoder: enc}
}

type recognizeRequest struct {
	Image string `json:"image"` // base64 or data URL
}

// faceMatch mirrors the browser overlay contract: box is
// [left, top, right, bottom] in frame pixel coordinates.
type faceMatch struct {
	Roll     string  `json:"roll,omitempty"`
	Name     string  `json:"name"`
	Marked   bool    `json:"marked"`
	Distance float64 `json:"distance"`
	Box      [4]int  `json:"box"`
}

type recognizeResponse struct {
	Matches []faceMatch `json:"matches"`
}

// Recognize handles POST /api/v1/recognize.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
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

	batch := make([]recognition.QueryFace, len(detected))
	for i, face := range detected {
		batch[i] = recognition.QueryFace{Embedding: face.Embedding, Location: face.Location}
	}

	results, err := h.pipeline.Recognize(r.Context(), batch, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "recognition failed")
		return
	}

	matches := make([]faceMatch, len(results))
	for i, res := range results {
		m := faceMatch{
			Name:     "Unknown",
			Marked:   res.Marked,
			Distance: res.Distance,
			Box:      [4]int{res.Location.Left, res.Location.Top, res.Location.Right, res.Location.Bottom},
		}
		if res.Matched {
			m.Roll = res.Roll
			m.Name = res.Name
		}
		matches[i] = m
	}
	respondJSON(w, http.StatusOK, recognizeResponse{Matches: matches})
}
