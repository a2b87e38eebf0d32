package types

// FieldError describes a single invalid or missing input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries field-level detail for rejected input. The
// terminal error responder renders the first field's message.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
