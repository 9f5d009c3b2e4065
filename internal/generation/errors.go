package generation

import "fmt"

// InputValidationError is returned when a request fails its input schema.
// No model call is made in that case.
type InputValidationError struct {
	Err error
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid generation input: %v", e.Err)
}

func (e *InputValidationError) Unwrap() error { return e.Err }

// ModelInvocationError wraps any failure of the model backend call
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// SchemaValidationError is returned when the model output does not match the expected shape.
// Raw holds the unparsed model output for logging.
type SchemaValidationError struct {
	Raw string
	Err error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("model output does not match schema: %v", e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }
