package ontology

import "fmt"

// LoadError represents a failure to read, validate, or parse an ontology file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("ontology %s: %s: %v", e.Path, e.Message, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("ontology %s: %s", e.Path, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("ontology: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ontology: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
