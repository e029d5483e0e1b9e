package recognition

import (
	"errors"
	"math"
	"testing"
)

// uniform returns a Dim-length embedding with every component set to v.
func uniform(v float32) []float32 {
	e := make([]float32, Dim)
	for i := range e {
		e[i] = v
	}
	return e
}

// shifted returns a copy of e whose first component is moved by delta,
// giving a known Euclidean distance of |delta| from e.
func shifted(e []float32, delta float32) []float32 {
	out := make([]float32, len(e))
	copy(out, e)
	out[0] += delta
	return out
}

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", uniform(0.25), uniform(0.25), 0},
		{"single axis", shifted(uniform(0), 3), uniform(0), 3},
		{"two axes", []float32{3, 4}, []float32{0, 0}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EuclideanDistance(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("EuclideanDistance() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestMatch_ExactMatch(t *testing.T) {
	e1 := uniform(0.5)
	candidates := []Candidate{{Roll: "S1", Name: "Alice", Embedding: e1}}

	result, err := Match(e1, candidates, 0.5)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Status != StatusMatched {
		t.Fatalf("expected StatusMatched, got %s", result.Status)
	}
	if result.Roll != "S1" {
		t.Errorf("expected roll S1, got %q", result.Roll)
	}
	if result.Distance != 0 {
		t.Errorf("expected distance 0, got %v", result.Distance)
	}
}

func TestMatch_BeyondTolerance(t *testing.T) {
	e1 := uniform(0.5)
	candidates := []Candidate{{Roll: "S1", Name: "Alice", Embedding: e1}}

	// Query at distance 0.6 from the only candidate, tolerance 0.5.
	result, err := Match(shifted(e1, 0.6), candidates, 0.5)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Status != StatusUnmatched {
		t.Fatalf("expected StatusUnmatched, got %s", result.Status)
	}
	if math.Abs(result.Distance-0.6) > 1e-6 {
		t.Errorf("expected distance 0.6, got %v", result.Distance)
	}
}

func TestMatch_PicksClosest(t *testing.T) {
	base := uniform(0)
	candidates := []Candidate{
		{Roll: "far", Embedding: shifted(base, 0.4)},
		{Roll: "near", Embedding: shifted(base, 0.1)},
		{Roll: "farther", Embedding: shifted(base, 0.45)},
	}

	result, err := Match(base, candidates, 0.5)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Roll != "near" {
		t.Errorf("expected roll 'near', got %q", result.Roll)
	}
}

func TestMatch_TieBreakFirstWins(t *testing.T) {
	base := uniform(0)
	// Two candidates at exactly the same distance from the query.
	candidates := []Candidate{
		{Roll: "first", Embedding: shifted(base, 0.3)},
		{Roll: "second", Embedding: shifted(base, -0.3)},
	}

	for range 10 {
		result, err := Match(base, candidates, 0.5)
		if err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if result.Roll != "first" {
			t.Fatalf("tie-break must pick the first candidate in registry order, got %q", result.Roll)
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	base := uniform(0.1)
	candidates := []Candidate{
		{Roll: "a", Embedding: shifted(base, 0.2)},
		{Roll: "b", Embedding: shifted(base, 0.3)},
	}
	query := shifted(base, 0.21)

	first, err := Match(query, candidates, 0.5)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	for range 5 {
		again, err := Match(query, candidates, 0.5)
		if err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if again != first {
			t.Fatalf("Match() not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestMatch_NoCandidates(t *testing.T) {
	result, err := Match(uniform(0.5), nil, 0.5)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Status != StatusNoCandidates {
		t.Errorf("expected StatusNoCandidates, got %s", result.Status)
	}
}

func TestMatch_InvalidDimension(t *testing.T) {
	candidates := []Candidate{{Roll: "S1", Embedding: uniform(0)}}

	_, err := Match(make([]float32, 64), candidates, 0.5)
	if !errors.Is(err, ErrInvalidEmbedding) {
		t.Errorf("expected ErrInvalidEmbedding, got %v", err)
	}

	// Dimension is checked even when there is nothing to match against.
	_, err = Match(make([]float32, 64), nil, 0.5)
	if !errors.Is(err, ErrInvalidEmbedding) {
		t.Errorf("expected ErrInvalidEmbedding with empty registry, got %v", err)
	}
}

func TestMatch_NegativeTolerance(t *testing.T) {
	candidates := []Candidate{{Roll: "S1", Embedding: uniform(0)}}

	_, err := Match(uniform(0), candidates, -0.1)
	if !errors.Is(err, ErrNegativeTolerance) {
		t.Errorf("expected ErrNegativeTolerance, got %v", err)
	}
}

func TestMatch_ZeroToleranceExactOnly(t *testing.T) {
	e1 := uniform(0.5)
	candidates := []Candidate{{Roll: "S1", Embedding: e1}}

	result, err := Match(e1, candidates, 0)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Status != StatusMatched {
		t.Errorf("exact query must match at tolerance 0, got %s", result.Status)
	}

	result, err = Match(shifted(e1, 0.001), candidates, 0)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Status != StatusUnmatched {
		t.Errorf("non-exact query must not match at tolerance 0, got %s", result.Status)
	}
}
