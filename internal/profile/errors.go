package profile

import "fmt"

// InputError represents a missing or malformed input document
type InputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// APICallError represents a Model Invoker transport failure
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
