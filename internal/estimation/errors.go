package estimation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrCalculationUnavailable matches every MathematicalError via errors.Is.
// Callers use it to show a generic "calculation unavailable" state instead of a field message.
var ErrCalculationUnavailable = errors.New("calculation unavailable")

// MathematicalError reports a precondition violation or a non-finite intermediate value.
// It means the inputs bypassed validation.
type MathematicalError struct {
	Operation string
	Inputs    map[string]float64
	Reason    string
}

func NewMathematicalError(operation, reason string, inputs map[string]float64) *MathematicalError {
	return &MathematicalError{Operation: operation, Inputs: inputs, Reason: reason}
}

func (e *MathematicalError) Error() string {
	keys := make([]string, 0, len(e.Inputs))
	for k := range e.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.FormatFloat(e.Inputs[k], 'g', -1, 64))
	}
	return fmt.Sprintf("%s: %s (%s)", e.Operation, e.Reason, strings.Join(parts, ", "))
}

func (e *MathematicalError) Is(target error) bool {
	return target == ErrCalculationUnavailable
}
