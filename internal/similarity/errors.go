package similarity

import "fmt"

// RemoteUnavailableError represents a transport failure, timeout, or malformed
// response from the remote similarity backend. It is recovered by the fallback
// decorator and never reaches engine callers.
type RemoteUnavailableError struct {
	Message string
	Cause   error
}

func (e *RemoteUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("remote similarity: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("remote similarity: %s", e.Message)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Cause
}
