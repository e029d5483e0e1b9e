package recognition

import (
	"fmt"
	"math"
)

// EuclideanDistance computes the Euclidean distance between two vectors of
// equal length. Accumulation happens in float64 regardless of how many
// candidates are scanned, so results do not depend on registry size.
func EuclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Match finds the candidate closest to query by Euclidean distance.
//
// The scan is linear over candidates in registry order. The closest
// candidate wins if its distance is <= tolerance; otherwise the result is
// StatusUnmatched with the best distance attached. When several candidates
// are exactly equidistant, the first one in registry order wins - the
// strict less-than comparison below is what makes that deterministic.
//
// A query whose length differs from Dim is rejected with
// ErrInvalidEmbedding before any distance is computed.
func Match(query []float32, candidates []Candidate, tolerance float64) (MatchResult, error) {
	if len(query) != Dim {
		return MatchResult{}, fmt.Errorf("%w: got %d components, want %d", ErrInvalidEmbedding, len(query), Dim)
	}
	if tolerance < 0 {
		return MatchResult{}, fmt.Errorf("%w: got %g", ErrNegativeTolerance, tolerance)
	}
	if len(candidates) == 0 {
		return MatchResult{Status: StatusNoCandidates}, nil
	}

	best := 0
	bestDist := EuclideanDistance(query, candidates[0].Embedding)
	for i := 1; i < len(candidates); i++ {
		if d := EuclideanDistance(query, candidates[i].Embedding); d < bestDist {
			best = i
			bestDist = d
		}
	}

	if bestDist > tolerance {
		return MatchResult{Status: StatusUnmatched, Distance: bestDist}, nil
	}
	return MatchResult{
		Status:   StatusMatched,
		Roll:     candidates[best].Roll,
		Name:     candidates[best].Name,
		Distance: bestDist,
	}, nil
}
