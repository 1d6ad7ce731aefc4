// Package validation turns raw user text into checked numeric values.
//
// Every failure is a ValidationError carrying the field label and guidance for the user.
// Nothing here logs, panics or keeps state.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
)

// MaxDecimalPlaces is the number of fractional digits accepted for any numeric field.
const MaxDecimalPlaces = 2

// plainDecimal accepts an optional minus sign, digits and at most one decimal point.
// Exponents, hex, NaN/Inf, '+' and separators are rejected before parsing.
var plainDecimal = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)$`)

// ValidateField checks one raw input against rule. The first failing check wins:
// required, format, precision, positivity, lower bound, upper bound.
// Bounds are inclusive and compared in exact decimal arithmetic.
func ValidateField(fieldLabel string, rule config.ValidationRule, raw string) (float64, error) {
	if err := checkRule(rule); err != nil {
		return 0, &ConfigurationError{Label: fieldLabel, Message: err.Error()}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &RequiredField{Label: fieldLabel}
	}

	if !plainDecimal.MatchString(trimmed) {
		return 0, &InvalidFormat{Label: fieldLabel, Value: trimmed}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, &InvalidFormat{Label: fieldLabel, Value: trimmed}
	}

	if decimalPlaces(d) > MaxDecimalPlaces {
		return 0, &DecimalPrecisionError{Label: fieldLabel, MaxDecimals: MaxDecimalPlaces}
	}

	value := d.InexactFloat64()

	// every field category is a physical quantity, whatever the configured minimum
	if !d.IsPositive() {
		return 0, &EdgeCaseError{Label: fieldLabel, Value: value}
	}

	if d.LessThan(decimal.NewFromFloat(rule.Min)) {
		return 0, &ValueTooLow{
			Label:  fieldLabel,
			Value:  value,
			Min:    rule.Min,
			Advice: tooLowGuidance(fieldLabel, rule.Min),
		}
	}

	if d.GreaterThan(decimal.NewFromFloat(rule.Max)) {
		return 0, &ValueTooHigh{
			Label:  fieldLabel,
			Value:  value,
			Max:    rule.Max,
			Advice: tooHighGuidance(fieldLabel, rule.Max),
		}
	}

	return value, nil
}

func checkRule(rule config.ValidationRule) error {
	for _, bound := range []float64{rule.Min, rule.Max} {
		if math.IsNaN(bound) || math.IsInf(bound, 0) {
			return fmt.Errorf("bounds must be finite (min=%v, max=%v)", rule.Min, rule.Max)
		}
	}
	if rule.Min > rule.Max {
		return fmt.Errorf("min %s is greater than max %s", formatNumber(rule.Min), formatNumber(rule.Max))
	}
	return nil
}

// decimalPlaces counts the fractional digits as written, trailing zeros included.
func decimalPlaces(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}
