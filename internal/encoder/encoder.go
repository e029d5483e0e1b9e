// Package encoder is the client for the external face-encoding service:
// the oracle that turns an image into 128-dimensional face embeddings plus
// bounding boxes. Everything past this boundary (detection models,
// embedding quality) is the service's concern, not ours.
package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rollmark/rollmark/internal/recognition"
)

const defaultBaseURL = "http://localhost:8000"

// ErrUnreadableImage is returned when the encoder rejects the submitted
// bytes as not being a decodable image. Distinct from an image that simply
// contains no faces, which yields an empty result and no error.
var ErrUnreadableImage = errors.New("unreadable image")

// DetectedFace is one face found in an image: its embedding and where the
// encoder saw it.
type DetectedFace struct {
	Embedding []float32            `json:"embedding"`
	Location  recognition.Location `json:"location"`
}

// Client talks to the face encoder over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an encoder client. An empty baseURL selects the
// default local service address.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

// encodeResponse is the wire format of the encoder service.
type encodeResponse struct {
	Faces []DetectedFace `json:"faces"`
	Error string         `json:"error"`
}

// EncodeFaces submits image bytes and returns all detected faces. Zero
// faces is a normal result; an image the service cannot decode returns
// ErrUnreadableImage.
func (c *Client) EncodeFaces(ctx context.Context, imageData []byte) ([]DetectedFace, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/encode", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("encoder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", ErrUnreadableImage, strings.TrimSpace(string(body)))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("encoder error (status %d): %s", resp.StatusCode, string(body))
	}

	var encResp encodeResponse
	if err := json.Unmarshal(body, &encResp); err != nil {
		return nil, fmt.Errorf("failed to parse encoder response: %w", err)
	}
	if encResp.Error != "" {
		return nil, fmt.Errorf("encoder: %s", encResp.Error)
	}

	return encResp.Faces, nil
}
