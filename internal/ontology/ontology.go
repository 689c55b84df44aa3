// Package ontology provides the static skill synonym and category tables used
// to recognize that two differently-named skills refer to the same or related
// competency. The tables are loaded once at startup and never mutated, so they
// are safe for concurrent readers without locking.
package ontology

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/ontology.json
var defaultData []byte

//go:embed data/ontology.schema.json
var schemaData []byte

// Ontology holds the synonym and category tables. Keys and values are stored
// lowercased; lookups are case-insensitive.
type Ontology struct {
	synonyms   map[string][]string // canonical skill -> synonyms
	categories map[string][]string // category -> canonical skills
}

type ontologyFile struct {
	Synonyms   map[string][]string `json:"synonyms"`
	Categories map[string][]string `json:"categories"`
}

// Default returns the built-in ontology shipped with the engine.
func Default() *Ontology {
	o, err := parse(defaultData)
	if err != nil {
		// The embedded data set is validated by tests; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("ontology: embedded data is invalid: %v", err))
	}
	return o
}

// LoadFile reads an ontology override from disk, validating it against the
// embedded JSON Schema before accepting it.
func LoadFile(path string) (*Ontology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read ontology file", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "schema validation failed", Cause: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &LoadError{Path: path, Message: strings.Join(msgs, "; ")}
	}

	return parse(raw)
}

func parse(raw []byte) (*Ontology, error) {
	var file ontologyFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &LoadError{Message: "failed to parse ontology JSON", Cause: err}
	}

	o := &Ontology{
		synonyms:   make(map[string][]string, len(file.Synonyms)),
		categories: make(map[string][]string, len(file.Categories)),
	}
	for canonical, syns := range file.Synonyms {
		lowered := make([]string, 0, len(syns))
		for _, s := range syns {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(s)))
		}
		o.synonyms[strings.ToLower(strings.TrimSpace(canonical))] = lowered
	}
	for category, skills := range file.Categories {
		lowered := make([]string, 0, len(skills))
		for _, s := range skills {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(s)))
		}
		o.categories[strings.ToLower(strings.TrimSpace(category))] = lowered
	}
	return o, nil
}

// SameGroup reports whether both skills fall into the same synonym group.
// Skills in the same group are treated as naming the same competency.
func (o *Ontology) SameGroup(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}

	for canonical, syns := range o.synonyms {
		if matchesGroup(a, canonical, syns) && matchesGroup(b, canonical, syns) {
			return true
		}
	}
	return false
}

// SharedCategory reports whether both skills belong to the same category.
// Same-category skills are adjacent competencies, not equivalents, and only
// relax the similarity threshold rather than replacing it.
func (o *Ontology) SharedCategory(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}

	for _, skills := range o.categories {
		if matchesAny(a, skills) && matchesAny(b, skills) {
			return true
		}
	}
	return false
}

// Categories returns the category names a skill belongs to, for diagnostics.
func (o *Ontology) Categories(skill string) []string {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return nil
	}

	var out []string
	for category, skills := range o.categories {
		if matchesAny(skill, skills) {
			out = append(out, category)
		}
	}
	return out
}

func matchesGroup(skill, canonical string, synonyms []string) bool {
	if tokenMatch(skill, canonical) {
		return true
	}
	return matchesAny(skill, synonyms)
}

func matchesAny(skill string, entries []string) bool {
	for _, entry := range entries {
		if tokenMatch(skill, entry) {
			return true
		}
	}
	return false
}

// tokenMatch implements the containment rule: a skill matches a table entry
// when either string contains the other, case already folded by callers.
// Short tokens (under 4 runes, e.g. "go", "js", "ml") additionally require a
// word boundary so "go" does not match inside "mongo". The original behavior
// was plain containment in both directions; the boundary rule is a deliberate
// tightening for short, ambiguous tokens.
func tokenMatch(a, b string) bool {
	if a == b {
		return true
	}
	if containsToken(a, b) || containsToken(b, a) {
		return true
	}
	return false
}

func containsToken(haystack, needle string) bool {
	if needle == "" || len(haystack) < len(needle) {
		return false
	}
	if len([]rune(needle)) >= 4 {
		return strings.Contains(haystack, needle)
	}

	// Word-boundary scan for short tokens.
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] != needle {
			continue
		}
		if boundaryBefore(haystack, i) && boundaryAfter(haystack, i+len(needle)) {
			return true
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}
