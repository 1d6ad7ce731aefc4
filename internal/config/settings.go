package config

import (
	"os"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validator"
)

// ValidationRule is the inclusive range accepted for one field category.
type ValidationRule struct {
	Min float64 `json:"min" validate:"finite,gt=0"`
	Max float64 `json:"max" validate:"finite,gtefield=Min"`
}

// ValidationRules holds one rule per validated field category.
type ValidationRules struct {
	ExcavatorCapacity ValidationRule `json:"excavatorCapacity"`
	CycleTime         ValidationRule `json:"cycleTime"`
	TruckCapacity     ValidationRule `json:"truckCapacity"`
	RoundTripTime     ValidationRule `json:"roundTripTime"`
	WorkHours         ValidationRule `json:"workHours"`
	PondDimensions    ValidationRule `json:"pondDimensions"`
}

// FleetLimits caps how many units of each kind a project may configure.
type FleetLimits struct {
	MaxExcavators int `json:"maxExcavators" validate:"gte=1,lte=100"`
	MaxTrucks     int `json:"maxTrucks" validate:"gte=1,lte=100"`
}

type ExcavatorDefaults struct {
	BucketCapacity float64 `json:"bucketCapacity" validate:"finite,gt=0"`
	CycleTime      float64 `json:"cycleTime" validate:"finite,gt=0"`
	Name           string  `json:"name" validate:"required,equipment_name"`
}

type TruckDefaults struct {
	Capacity      float64 `json:"capacity" validate:"finite,gt=0"`
	RoundTripTime float64 `json:"roundTripTime" validate:"finite,gt=0"`
	Name          string  `json:"name" validate:"required,equipment_name"`
}

type PondDefaults struct {
	Length float64 `json:"length" validate:"finite,gt=0"`
	Width  float64 `json:"width" validate:"finite,gt=0"`
	Depth  float64 `json:"depth" validate:"finite,gt=0"`
}

// EquipmentDefaults seed new equipment entries and a fresh project form.
type EquipmentDefaults struct {
	Excavator ExcavatorDefaults `json:"excavator"`
	Truck     TruckDefaults     `json:"truck"`
	WorkHours float64           `json:"workHours" validate:"finite,gt=0,lte=24"`
	Pond      PondDefaults      `json:"pond"`
}

// Settings is the immutable calculator configuration loaded once at startup.
type Settings struct {
	Validation  ValidationRules   `json:"validation"`
	FleetLimits FleetLimits       `json:"fleetLimits"`
	Defaults    EquipmentDefaults `json:"defaults"`
}

func DefaultSettings() Settings {
	return Settings{
		Validation: ValidationRules{
			ExcavatorCapacity: ValidationRule{Min: 0.1, Max: 15.0},
			CycleTime:         ValidationRule{Min: 0.5, Max: 10.0},
			TruckCapacity:     ValidationRule{Min: 5.0, Max: 30.0},
			RoundTripTime:     ValidationRule{Min: 5.0, Max: 60.0},
			WorkHours:         ValidationRule{Min: 1.0, Max: 24.0},
			PondDimensions:    ValidationRule{Min: 1.0, Max: 1000.0},
		},
		FleetLimits: FleetLimits{
			MaxExcavators: 10,
			MaxTrucks:     20,
		},
		Defaults: EquipmentDefaults{
			Excavator: ExcavatorDefaults{BucketCapacity: 2.5, CycleTime: 2.0, Name: "Excavator"},
			Truck:     TruckDefaults{Capacity: 12.0, RoundTripTime: 15.0, Name: "Truck"},
			WorkHours: 8.0,
			Pond:      PondDefaults{Length: 50.0, Width: 30.0, Depth: 6.0},
		},
	}
}

// LoadSettings reads a YAML or JSON settings file on top of DefaultSettings.
// Keys absent from the file keep their default value. An empty path returns the defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return &settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings file %q", path)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrapf(err, "decoding settings file %q", path)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// HoursPerDay is the hard ceiling for any work-hours rule.
const HoursPerDay = 24.0

// Validate checks that every rule is a finite, ordered range and that defaults and limits are usable.
func (s Settings) Validate() error {
	v := validator.NewValidator()
	v.Register(validator.NewSettingsValidationRules()...)
	v.Register(validator.ValidationRule{
		Rule: func(v *govalidator.Validate) {
			v.RegisterStructValidation(workHoursWithinDay, ValidationRules{})
		},
	})
	return v.Struct(s)
}

func workHoursWithinDay(sl govalidator.StructLevel) {
	rules, ok := sl.Current().Interface().(ValidationRules)
	if !ok {
		return
	}
	if rules.WorkHours.Max > HoursPerDay {
		sl.ReportError(rules.WorkHours.Max, "WorkHours.Max", "Max", "workday", "")
	}
}
