package contribution

// ValidationError indicates a client-supplied field failed validation.
// The message is safe to return to the client.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the human-readable reason.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
