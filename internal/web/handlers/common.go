// Package handlers provides the HTTP handlers for the attendance API.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rollmark/rollmark/internal/encoder"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// Encoder is the face-encoding oracle consumed by the handlers. Satisfied
// by *encoder.Client; tests substitute a stub.
type Encoder interface {
	EncodeFaces(ctx context.Context, imageData []byte) ([]encoder.DetectedFace, error)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// errNoImage is returned by decodeImagePayload for an empty image field.
var errNoImage = errors.New("no image provided")

// decodeImagePayload decodes a base64 image, accepting both a bare base64
// string and a browser data URL ("data:image/jpeg;base64,...").
func decodeImagePayload(image string) ([]byte, error) {
	if strings.HasPrefix(image, "data:") {
		if _, after, found := strings.Cut(image, ","); found {
			image = after
		}
	}
	if image == "" {
		return nil, errNoImage
	}
	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return nil, errors.New("invalid base64 image data")
	}
	return data, nil
}
