package recognition

import (
	"context"
	"fmt"
	"time"
)

// Pipeline runs a batch of query faces through matching and attendance
// marking. It holds no per-call state; concurrent Recognize calls share the
// registry snapshot read-only and rely on the ledger for write safety.
type Pipeline struct {
	registry  *Registry
	ledger    *Ledger
	tolerance float64
}

// NewPipeline creates a pipeline. A non-positive tolerance selects
// DefaultTolerance.
func NewPipeline(registry *Registry, ledger *Ledger, tolerance float64) *Pipeline {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Pipeline{registry: registry, ledger: ledger, tolerance: tolerance}
}

// Recognize matches every face in the batch against the registry and marks
// attendance for each resolved student on the given day.
//
// Within one batch a roll is marked at most once: the first occurrence
// goes to the ledger, later occurrences of the same roll are reported with
// Marked=false without another storage call. This covers a frame containing
// the same face twice and near-simultaneous sub-frames.
//
// An empty batch returns an empty result. An empty registry resolves every
// face as unknown rather than failing the batch. A malformed query
// embedding or a storage failure fails the whole call; attendance marking
// is never retried internally.
func (p *Pipeline) Recognize(ctx context.Context, faces []QueryFace, day time.Time) ([]FaceResult, error) {
	results := make([]FaceResult, 0, len(faces))
	if len(faces) == 0 {
		return results, nil
	}

	candidates, err := p.registry.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	seen := make(map[string]bool)
	for i, face := range faces {
		match, err := Match(face.Embedding, candidates, p.tolerance)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}

		result := FaceResult{Distance: match.Distance, Location: face.Location}
		if match.Status == StatusMatched {
			result.Matched = true
			result.Roll = match.Roll
			result.Name = match.Name

			if !seen[match.Roll] {
				seen[match.Roll] = true
				outcome, err := p.ledger.MarkIfAbsent(ctx, match.Roll, match.Name, day)
				if err != nil {
					return nil, fmt.Errorf("marking attendance for %s: %w", match.Roll, err)
				}
				result.Marked = outcome.Marked
			}
		}
		results = append(results, result)
	}
	return results, nil
}
