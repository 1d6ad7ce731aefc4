package calculators

import (
	"math"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
)

const (
	// DefaultEfficiency derates the nameplate rate for delays, breaks and site conditions.
	DefaultEfficiency = 0.85
	// MinutesPerHour converts cycles per minute into cycles per hour.
	MinutesPerHour = 60.0
)

// RateCalculator converts one unit's specs into a productivity rate in cubic yards per hour.
type RateCalculator struct {
	efficiency float64
}

// RateOption is a functional option for configuring a RateCalculator.
type RateOption func(*RateCalculator)

// WithEfficiency sets the efficiency factor applied to every rate.
// Values outside (0, 1] are ignored and the default is kept.
func WithEfficiency(efficiency float64) RateOption {
	return func(c *RateCalculator) {
		if efficiency > 0 && efficiency <= 1 {
			c.efficiency = efficiency
		}
	}
}

// NewRateCalculator creates a RateCalculator using DefaultEfficiency unless overridden.
func NewRateCalculator(opts ...RateOption) *RateCalculator {
	res := RateCalculator{
		efficiency: DefaultEfficiency,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

var defaultRates = NewRateCalculator()

// Efficiency returns the factor applied to every rate.
func (c *RateCalculator) Efficiency() float64 { return c.efficiency }

// Rate computes (60 / cycle minutes) * capacity * efficiency for any equipment kind.
func (c *RateCalculator) Rate(unit estimation.Equipment) (float64, error) {
	capacity, minutes := unit.Cycle()
	return c.rate(unit.Kind()+" rate", capacity, minutes)
}

func (c *RateCalculator) rate(operation string, capacity, minutes float64) (float64, error) {
	inputs := map[string]float64{
		"capacity":   capacity,
		"minutes":    minutes,
		"efficiency": c.efficiency,
	}

	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return 0, estimation.NewMathematicalError(operation, "cycle duration must be a positive finite number of minutes", inputs)
	}
	if math.IsNaN(capacity) || math.IsInf(capacity, 0) || capacity <= 0 {
		return 0, estimation.NewMathematicalError(operation, "capacity must be a positive finite number of cubic yards", inputs)
	}

	rate := (MinutesPerHour / minutes) * capacity * c.efficiency
	if math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, estimation.NewMathematicalError(operation, "rate is not a finite number", inputs)
	}
	return rate, nil
}

// ExcavatorRate is the hourly rate of one excavator at DefaultEfficiency.
func ExcavatorRate(bucketCapacity, cycleTime float64) (float64, error) {
	return defaultRates.rate(estimation.KindExcavator+" rate", bucketCapacity, cycleTime)
}

// TruckRate is the hourly rate of one truck at DefaultEfficiency.
func TruckRate(capacity, roundTripTime float64) (float64, error) {
	return defaultRates.rate(estimation.KindTruck+" rate", capacity, roundTripTime)
}
