package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rollmark/rollmark/internal/encoder"
	"github.com/rollmark/rollmark/internal/recognition"
	"github.com/rollmark/rollmark/internal/storage"
	"github.com/rollmark/rollmark/internal/storage/mock"
)

// stubEncoder returns canned faces or a canned error.
type stubEncoder struct {
	faces []encoder.DetectedFace
	err   error

	// lastImage records the bytes the handler submitted.
	lastImage []byte
}

func (s *stubEncoder) EncodeFaces(ctx context.Context, imageData []byte) ([]encoder.DetectedFace, error) {
	s.lastImage = imageData
	if s.err != nil {
		return nil, s.err
	}
	return s.faces, nil
}

// testEmbedding returns a valid 128-d embedding with every component v.
func testEmbedding(v float32) []float32 {
	e := make([]float32, recognition.Dim)
	for i := range e {
		e[i] = v
	}
	return e
}

// testStores builds mock stores seeded with the given students.
func testStores(t *testing.T, students ...storage.Student) (*mock.StudentStore, *mock.AttendanceStore) {
	t.Helper()
	studentStore := mock.NewStudentStore()
	for _, s := range students {
		if err := studentStore.InsertStudent(context.Background(), s); err != nil {
			t.Fatalf("seeding students: %v", err)
		}
	}
	return studentStore, mock.NewAttendanceStore()
}

// b64 encodes payload bytes the way a client would.
func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// parseJSONResponse parses a JSON response body into the target type.
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}
