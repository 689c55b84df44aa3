// Package similarity computes how close two skill names are, on a 0..1 scale.
// Two interchangeable strategies exist: a local lexical one (string distance
// blended with ontology lookups) and a remote semantic one (text embeddings).
// The choice of strategy is made once at construction time from configuration,
// never per call.
package similarity

import "context"

// Strategy scores the similarity of two skill names.
type Strategy interface {
	// Similarity returns a score in [0,1]; 1 means the same skill.
	Similarity(ctx context.Context, a, b string) (float64, error)
	// Related reports whether the two skills name the same or an equivalent
	// competency for matching purposes.
	Related(ctx context.Context, a, b string) (bool, error)
}

// Config holds the similarity thresholds shared by both strategies.
type Config struct {
	// RelatedThreshold is the blended score at or above which two skills are
	// considered related.
	RelatedThreshold float64
	// CategoryThreshold is the relaxed score applied when both skills share an
	// ontology category; same-category skills are adjacent, not equivalent.
	CategoryThreshold float64
}

// DefaultConfig returns the engine's standard thresholds.
func DefaultConfig() Config {
	return Config{
		RelatedThreshold:  0.65,
		CategoryThreshold: 0.4,
	}
}
