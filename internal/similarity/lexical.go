package similarity

import (
	"context"
	"strings"

	"github.com/jonathan/talent-match/internal/ontology"
)

// Blend weights for the three string-distance measures.
const (
	jaroWinklerWeight = 0.4
	levenshteinWeight = 0.3
	diceWeight        = 0.3
)

// Lexical is the local similarity strategy: a weighted blend of Jaro-Winkler,
// normalized Levenshtein, and bigram Dice similarity, combined with ontology
// synonym and category lookups. It is stateless, never blocks, and never
// returns an error.
type Lexical struct {
	ont    *ontology.Ontology
	config Config
}

// NewLexical creates a lexical strategy over the given ontology.
func NewLexical(ont *ontology.Ontology, config Config) *Lexical {
	return &Lexical{ont: ont, config: config}
}

// Similarity returns the blended string similarity of the two skill names.
func (l *Lexical) Similarity(_ context.Context, a, b string) (float64, error) {
	return l.blend(a, b), nil
}

// Related reports whether the skills are close enough to be treated as the
// same competency: blended score at or above the related threshold, shared
// ontology synonym group, or shared ontology category with a relaxed
// threshold.
func (l *Lexical) Related(_ context.Context, a, b string) (bool, error) {
	score := l.blend(a, b)
	if score >= l.config.RelatedThreshold {
		return true, nil
	}
	if l.ont.SameGroup(a, b) {
		return true, nil
	}
	if l.ont.SharedCategory(a, b) && score >= l.config.CategoryThreshold {
		return true, nil
	}
	return false, nil
}

func (l *Lexical) blend(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	score := jaroWinklerWeight*jaroWinkler(a, b) +
		levenshteinWeight*levenshteinSimilarity(a, b) +
		diceWeight*diceCoefficient(a, b)

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}
