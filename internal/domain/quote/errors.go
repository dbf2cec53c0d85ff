package quote

import "fmt"

// ValidationError is input the user must correct. It is always raised before
// any gateway call; nothing gets partially applied.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrClientRequired = &ValidationError{Reason: "client is required"}
	ErrEmptyCart      = &ValidationError{Reason: "materials quote needs at least one line item"}
	ErrSystemRequired = &ValidationError{Reason: "labor quote needs a system"}
)

// GatewayError is a persistence failure. The caller's cart/form state stays
// intact so the submission can be retried.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *GatewayError) Unwrap() error { return e.Err }

// AssemblyError is a document-pipeline failure after the quote row exists:
// missing detail rows, unresolved client, or a render failure. It is reported
// separately from GatewayError so the caller knows the quote was saved.
type AssemblyError struct {
	Step string
	Err  error
}

func (e *AssemblyError) Error() string { return fmt.Sprintf("assemble %s: %v", e.Step, e.Err) }
func (e *AssemblyError) Unwrap() error { return e.Err }

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
