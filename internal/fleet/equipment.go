package fleet

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
)

// NewExcavator builds an active form entry from the configured defaults.
func NewExcavator(defaults config.ExcavatorDefaults, ordinal int) validation.RawExcavator {
	return validation.RawExcavator{
		ID:             uuid.NewString(),
		Name:           fmt.Sprintf("%s %d", defaults.Name, ordinal),
		BucketCapacity: formatNumber(defaults.BucketCapacity),
		CycleTime:      formatNumber(defaults.CycleTime),
		IsActive:       true,
	}
}

// NewTruck builds an active form entry from the configured defaults.
func NewTruck(defaults config.TruckDefaults, ordinal int) validation.RawTruck {
	return validation.RawTruck{
		ID:            uuid.NewString(),
		Name:          fmt.Sprintf("%s %d", defaults.Name, ordinal),
		Capacity:      formatNumber(defaults.Capacity),
		RoundTripTime: formatNumber(defaults.RoundTripTime),
		IsActive:      true,
	}
}

// AddExcavator appends a default excavator, honoring FleetLimits.MaxExcavators.
func AddExcavator(units []validation.RawExcavator, settings config.Settings) ([]validation.RawExcavator, error) {
	return Add(units, NewExcavator(settings.Defaults.Excavator, len(units)+1), estimation.KindExcavator, settings.FleetLimits.MaxExcavators)
}

// AddTruck appends a default truck, honoring FleetLimits.MaxTrucks.
func AddTruck(units []validation.RawTruck, settings config.Settings) ([]validation.RawTruck, error) {
	return Add(units, NewTruck(settings.Defaults.Truck, len(units)+1), estimation.KindTruck, settings.FleetLimits.MaxTrucks)
}

func DefaultExcavators(settings config.Settings) []validation.RawExcavator {
	return []validation.RawExcavator{NewExcavator(settings.Defaults.Excavator, 1)}
}

func DefaultTrucks(settings config.Settings) []validation.RawTruck {
	return []validation.RawTruck{NewTruck(settings.Defaults.Truck, 1)}
}

// DefaultProject is the site form pre-filled with the configured defaults.
func DefaultProject(settings config.Settings) validation.RawProject {
	d := settings.Defaults
	return validation.RawProject{
		WorkHours:  formatNumber(d.WorkHours),
		PondLength: formatNumber(d.Pond.Length),
		PondWidth:  formatNumber(d.Pond.Width),
		PondDepth:  formatNumber(d.Pond.Depth),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
