package validation

import (
	"errors"
	"fmt"
)

// Kind names a ValidationError variant. It is stable and safe to use as a metric label.
type Kind string

const (
	KindRequiredField    Kind = "required_field"
	KindValueTooLow      Kind = "value_too_low"
	KindValueTooHigh     Kind = "value_too_high"
	KindInvalidFormat    Kind = "invalid_format"
	KindDecimalPrecision Kind = "decimal_precision"
	KindEdgeCase         Kind = "edge_case"
	KindConfiguration    Kind = "configuration"
)

// ValidationError is a recoverable, field-scoped input problem.
// The set of implementations is closed; switch on the concrete type to handle each variant.
type ValidationError interface {
	error
	// Field is the label of the offending input.
	Field() string
	// Guidance is a human-readable hint on how to fix the input.
	Guidance() string
	Kind() Kind

	validationError()
}

type RequiredField struct {
	Label string
}

type ValueTooLow struct {
	Label  string
	Value  float64
	Min    float64
	Advice string
}

type ValueTooHigh struct {
	Label  string
	Value  float64
	Max    float64
	Advice string
}

type InvalidFormat struct {
	Label string
	Value string
}

type DecimalPrecisionError struct {
	Label       string
	MaxDecimals int
}

type EdgeCaseError struct {
	Label string
	Value float64
}

type ConfigurationError struct {
	Label   string
	Message string
}

var (
	_ ValidationError = (*RequiredField)(nil)
	_ ValidationError = (*ValueTooLow)(nil)
	_ ValidationError = (*ValueTooHigh)(nil)
	_ ValidationError = (*InvalidFormat)(nil)
	_ ValidationError = (*DecimalPrecisionError)(nil)
	_ ValidationError = (*EdgeCaseError)(nil)
	_ ValidationError = (*ConfigurationError)(nil)
)

func (e *RequiredField) Error() string    { return fmt.Sprintf("%s is required", e.Label) }
func (e *RequiredField) Field() string    { return e.Label }
func (e *RequiredField) Kind() Kind       { return KindRequiredField }
func (e *RequiredField) Guidance() string { return fmt.Sprintf("Enter a value for %s.", e.Label) }
func (*RequiredField) validationError()   {}

func (e *ValueTooLow) Error() string {
	return fmt.Sprintf("%s must be at least %s (got %s)", e.Label, formatNumber(e.Min), formatNumber(e.Value))
}
func (e *ValueTooLow) Field() string    { return e.Label }
func (e *ValueTooLow) Kind() Kind       { return KindValueTooLow }
func (e *ValueTooLow) Guidance() string { return e.Advice }
func (*ValueTooLow) validationError()   {}

func (e *ValueTooHigh) Error() string {
	return fmt.Sprintf("%s must be at most %s (got %s)", e.Label, formatNumber(e.Max), formatNumber(e.Value))
}
func (e *ValueTooHigh) Field() string    { return e.Label }
func (e *ValueTooHigh) Kind() Kind       { return KindValueTooHigh }
func (e *ValueTooHigh) Guidance() string { return e.Advice }
func (*ValueTooHigh) validationError()   {}

func (e *InvalidFormat) Error() string {
	return fmt.Sprintf("%s: %q is not a valid number", e.Label, e.Value)
}
func (e *InvalidFormat) Field() string { return e.Label }
func (e *InvalidFormat) Kind() Kind    { return KindInvalidFormat }
func (e *InvalidFormat) Guidance() string {
	return fmt.Sprintf("Enter %s as a plain number such as 2.5.", e.Label)
}
func (*InvalidFormat) validationError() {}

func (e *DecimalPrecisionError) Error() string {
	return fmt.Sprintf("%s allows at most %d decimal places", e.Label, e.MaxDecimals)
}
func (e *DecimalPrecisionError) Field() string { return e.Label }
func (e *DecimalPrecisionError) Kind() Kind    { return KindDecimalPrecision }
func (e *DecimalPrecisionError) Guidance() string {
	return fmt.Sprintf("Round %s to %d decimal places.", e.Label, e.MaxDecimals)
}
func (*DecimalPrecisionError) validationError() {}

func (e *EdgeCaseError) Error() string {
	return fmt.Sprintf("%s must be greater than zero (got %s)", e.Label, formatNumber(e.Value))
}
func (e *EdgeCaseError) Field() string { return e.Label }
func (e *EdgeCaseError) Kind() Kind    { return KindEdgeCase }
func (e *EdgeCaseError) Guidance() string {
	return fmt.Sprintf("%s cannot be zero or negative.", e.Label)
}
func (*EdgeCaseError) validationError() {}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid validation rule: %s", e.Label, e.Message)
}
func (e *ConfigurationError) Field() string { return e.Label }
func (e *ConfigurationError) Kind() Kind    { return KindConfiguration }
func (e *ConfigurationError) Guidance() string {
	return "The calculator configuration is invalid. Contact your administrator."
}
func (*ConfigurationError) validationError() {}

// IndexedError ties a ValidationError to the position of the equipment entry it came from.
type IndexedError struct {
	Index int
	Err   ValidationError
}

func (e IndexedError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index+1, e.Err)
}

func (e IndexedError) Unwrap() error { return e.Err }

// FleetErrors aggregates every problem found while validating an equipment list.
type FleetErrors struct {
	Kind   string
	Errors []IndexedError
}

func (e *FleetErrors) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s fleet: %v", e.Kind, e.Errors[0])
	}
	return fmt.Sprintf("%s fleet: %d invalid fields, first: %v", e.Kind, len(e.Errors), e.Errors[0])
}

func (e *FleetErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, ie := range e.Errors {
		errs = append(errs, ie)
	}
	return errs
}

// Flatten returns every ValidationError carried by err, in order.
// It understands single errors, *FleetErrors and errors joined with errors.Join.
func Flatten(err error) []ValidationError {
	if err == nil {
		return nil
	}

	if ve, ok := err.(ValidationError); ok {
		return []ValidationError{ve}
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []ValidationError
		for _, inner := range joined.Unwrap() {
			out = append(out, Flatten(inner)...)
		}
		return out
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return []ValidationError{ve}
	}
	return nil
}

// IsValidationError reports whether err carries at least one ValidationError.
func IsValidationError(err error) bool {
	return len(Flatten(err)) > 0
}
