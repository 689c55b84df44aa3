package types

import "fmt"

// InvalidInputError represents malformed engine input: negative years,
// an empty skill name, or an inverted experience range. Inputs are rejected
// before they reach the scorer, which assumes validated data.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}
