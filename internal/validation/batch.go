package validation

import (
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
)

// Field labels shown to the user. Guidance is derived from the wording, so keep the domain words.
const (
	LabelExcavatorCapacity = "Excavator Capacity"
	LabelCycleTime         = "Excavator Cycle Time"
	LabelTruckCapacity     = "Truck Capacity"
	LabelRoundTripTime     = "Truck Round-Trip Time"
	LabelWorkHours         = "Work Hours per Day"
	LabelPondLength        = "Pond Length"
	LabelPondWidth         = "Pond Width"
	LabelPondDepth         = "Pond Depth"
)

// CubicFeetPerCubicYard converts pond dimensions in feet to a volume in cubic yards.
const CubicFeetPerCubicYard = 27.0

// RawProject holds the site inputs exactly as typed.
type RawProject struct {
	WorkHours  string `json:"workHours"`
	PondLength string `json:"pondLength"`
	PondWidth  string `json:"pondWidth"`
	PondDepth  string `json:"pondDepth"`
}

// RawInputs is the single-record form: one excavator, one truck and the site.
type RawInputs struct {
	ExcavatorCapacity string `json:"excavatorCapacity"`
	CycleTime         string `json:"cycleTime"`
	TruckCapacity     string `json:"truckCapacity"`
	RoundTripTime     string `json:"roundTripTime"`
	RawProject
}

type ValidatedProject struct {
	WorkHours  float64
	PondLength float64
	PondWidth  float64
	PondDepth  float64
}

// PondVolume is the excavation volume in cubic yards.
func (p ValidatedProject) PondVolume() float64 {
	return p.PondLength * p.PondWidth * p.PondDepth / CubicFeetPerCubicYard
}

type ValidatedInputs struct {
	ExcavatorCapacity float64
	CycleTime         float64
	TruckCapacity     float64
	RoundTripTime     float64
	ValidatedProject
}

type fieldCheck struct {
	label string
	rule  config.ValidationRule
	raw   string
	dst   *float64
}

// run validates checks in order and stops at the first failure.
func run(checks []fieldCheck) error {
	for _, c := range checks {
		v, err := ValidateField(c.label, c.rule, c.raw)
		if err != nil {
			return err
		}
		*c.dst = v
	}
	return nil
}

// runAll validates every check and returns all failures.
func runAll(checks []fieldCheck) []ValidationError {
	var errs []ValidationError
	for _, c := range checks {
		v, err := ValidateField(c.label, c.rule, c.raw)
		if err != nil {
			errs = append(errs, err.(ValidationError))
			continue
		}
		*c.dst = v
	}
	return errs
}

func projectChecks(rules config.ValidationRules, in RawProject, out *ValidatedProject) []fieldCheck {
	return []fieldCheck{
		{LabelWorkHours, rules.WorkHours, in.WorkHours, &out.WorkHours},
		{LabelPondLength, rules.PondDimensions, in.PondLength, &out.PondLength},
		{LabelPondWidth, rules.PondDimensions, in.PondWidth, &out.PondWidth},
		{LabelPondDepth, rules.PondDimensions, in.PondDepth, &out.PondDepth},
	}
}

// ValidateAll checks the single-record form field by field and fails fast with the first
// ValidationError, in the order excavator, truck, work hours, pond dimensions.
func ValidateAll(rules config.ValidationRules, inputs RawInputs) (*ValidatedInputs, error) {
	var out ValidatedInputs
	checks := []fieldCheck{
		{LabelExcavatorCapacity, rules.ExcavatorCapacity, inputs.ExcavatorCapacity, &out.ExcavatorCapacity},
		{LabelCycleTime, rules.CycleTime, inputs.CycleTime, &out.CycleTime},
		{LabelTruckCapacity, rules.TruckCapacity, inputs.TruckCapacity, &out.TruckCapacity},
		{LabelRoundTripTime, rules.RoundTripTime, inputs.RoundTripTime, &out.RoundTripTime},
	}
	checks = append(checks, projectChecks(rules, inputs.RawProject, &out.ValidatedProject)...)

	if err := run(checks); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateProject checks work hours and pond dimensions, failing fast.
func ValidateProject(rules config.ValidationRules, in RawProject) (*ValidatedProject, error) {
	var out ValidatedProject
	if err := run(projectChecks(rules, in, &out)); err != nil {
		return nil, err
	}
	return &out, nil
}
