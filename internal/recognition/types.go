// Package recognition implements the embedding-matching and attendance
// engine: nearest-neighbour identification of face embeddings against the
// enrolled registry, and at-most-once-per-day attendance marking.
package recognition

import "errors"

// Dim is the embedding dimension produced by the face encoder.
const Dim = 128

// DefaultTolerance is the maximum Euclidean distance at which a query
// embedding is considered the same person as an enrolled one. Smaller is
// stricter.
const DefaultTolerance = 0.5

// ErrInvalidEmbedding is returned when a query embedding does not have
// exactly Dim components. This is a caller bug and is reported before any
// distance computation.
var ErrInvalidEmbedding = errors.New("invalid embedding dimension")

// ErrNegativeTolerance is returned when a negative tolerance is supplied.
var ErrNegativeTolerance = errors.New("tolerance must be non-negative")

// Candidate is one registry entry eligible for matching. Its embedding is
// guaranteed to have exactly Dim components.
type Candidate struct {
	Roll      string
	Name      string
	Embedding []float32
}

// Location is a face bounding box in the source frame, in the encoder's
// (top, right, bottom, left) convention. The engine never interprets it;
// it is carried through so callers can draw overlays.
type Location struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// MatchStatus describes the outcome of matching one query embedding.
type MatchStatus string

const (
	// StatusMatched means the closest candidate was within tolerance.
	StatusMatched MatchStatus = "matched"
	// StatusUnmatched means every candidate was farther than tolerance.
	StatusUnmatched MatchStatus = "unmatched"
	// StatusNoCandidates means the registry had nothing to match against.
	StatusNoCandidates MatchStatus = "no_candidates"
)

// MatchResult is the decision for one query embedding. Roll and Name are
// set only when Status is StatusMatched. Distance is the distance to the
// closest candidate and is meaningful for both matched and unmatched
// results (it is zero for StatusNoCandidates).
type MatchResult struct {
	Status   MatchStatus
	Roll     string
	Name     string
	Distance float64
}

// QueryFace is one detected face from a frame: its embedding and where it
// was found.
type QueryFace struct {
	Embedding []float32
	Location  Location
}

// FaceResult is the per-face outcome of a recognition call.
type FaceResult struct {
	// Matched is true when the face resolved to an enrolled student.
	Matched bool
	// Roll and Name identify the student when Matched.
	Roll string
	Name string
	// Distance to the closest candidate (see MatchResult.Distance).
	Distance float64
	// Marked is true when this call newly recorded today's attendance for
	// the student. It is false for unknown faces, for repeats of a roll
	// within the same batch, and when attendance was already recorded.
	Marked bool
	// Location echoes the query face location.
	Location Location
}
