package massprop

import (
	"errors"
	"fmt"
)

// Domain errors for mass-property and aerodynamic synthesis.
var (
	// ErrUnsupportedGeometryKind indicates an enumerated shape or material with no formula.
	ErrUnsupportedGeometryKind = errors.New("massprop: unsupported geometry kind")

	// ErrDegenerateMassModel indicates a part list whose total mass is not positive,
	// or a single part that violates the record invariants.
	ErrDegenerateMassModel = errors.New("massprop: degenerate mass model")

	// ErrInvalidFinGeometry indicates fin solver preconditions were violated.
	ErrInvalidFinGeometry = errors.New("massprop: invalid fin geometry")

	// ErrUndefinedCenterOfPressure indicates zero total normal-force slope.
	ErrUndefinedCenterOfPressure = errors.New("massprop: undefined center of pressure")
)

// ComponentError wraps an error with the part and value that caused it.
type ComponentError struct {
	Component string
	Field     string
	Value     float64
	Wrapped   error
}

// NewComponentError is shorthand for building a *ComponentError.
func NewComponentError(component, field string, value float64, err error) *ComponentError {
	return &ComponentError{Component: component, Field: field, Value: value, Wrapped: err}
}

func (e *ComponentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Component, e.Wrapped)
	}
	return fmt.Sprintf("%s: %v (%s=%g)", e.Component, e.Wrapped, e.Field, e.Value)
}

func (e *ComponentError) Unwrap() error {
	return e.Wrapped
}
