package similarity

// String-distance measures used by the lexical strategy. All operate on
// lowercased input and return scores in [0,1].

// jaroSimilarity calculates the Jaro similarity between two strings.
func jaroSimilarity(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) == 0 && len(r2) == 0 {
		return 1.0
	}
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	// Match window: max(|s1|, |s2|) / 2 - 1
	matchWindow := max(0, max(len(r1), len(r2))/2-1)

	s1Matches := make([]bool, len(r1))
	s2Matches := make([]bool, len(r2))

	matches := 0
	for i := range r1 {
		start := max(0, i-matchWindow)
		end := min(len(r2), i+matchWindow+1)
		for j := start; j < end; j++ {
			if s2Matches[j] || r1[i] != r2[j] {
				continue
			}
			s1Matches[i] = true
			s2Matches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Count transpositions between matched characters.
	transpositions := 0
	k := 0
	for i := range r1 {
		if !s1Matches[i] {
			continue
		}
		for !s2Matches[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(len(r1)) + m/float64(len(r2)) + (m-float64(transpositions)/2)/m) / 3
}

// jaroWinkler boosts the Jaro score for strings sharing a common prefix,
// up to the standard 4-character cap.
func jaroWinkler(s1, s2 string) float64 {
	jaro := jaroSimilarity(s1, s2)

	r1 := []rune(s1)
	r2 := []rune(s2)
	prefix := 0
	for i := 0; i < min(len(r1), len(r2)) && i < 4; i++ {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}

	const scalingFactor = 0.1
	return jaro + float64(prefix)*scalingFactor*(1-jaro)
}

// levenshteinDistance calculates the minimum number of single-character edits
// required to change one string into another, using two rows of the matrix.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// levenshteinSimilarity normalizes edit distance to a 0..1 score.
func levenshteinSimilarity(s1, s2 string) float64 {
	if len(s1) == 0 && len(s2) == 0 {
		return 1.0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	return 1.0 - float64(distance)/float64(maxLen)
}

// diceCoefficient computes bigram overlap: 2*|A∩B| / (|A|+|B|).
func diceCoefficient(s1, s2 string) float64 {
	b1 := bigrams(s1)
	b2 := bigrams(s2)

	if len(b1) == 0 && len(b2) == 0 {
		return 1.0
	}
	if len(b1) == 0 || len(b2) == 0 {
		return 0.0
	}

	counts := make(map[string]int, len(b1))
	for _, g := range b1 {
		counts[g]++
	}

	overlap := 0
	for _, g := range b2 {
		if counts[g] > 0 {
			counts[g]--
			overlap++
		}
	}

	return 2 * float64(overlap) / float64(len(b1)+len(b2))
}

func bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	grams := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		grams = append(grams, string(runes[i:i+2]))
	}
	return grams
}
