package errors

import "fmt"

// NilArgumentError reports a nil dependency passed to a constructor.
// Constructors panic with it; a nil dependency is a wiring bug, not a
// runtime condition.
type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}
