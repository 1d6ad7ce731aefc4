package calculators

import (
	"fmt"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
)

// Param prefix = parameter keys in the params map given to the calculator
const (
	// ParamExcavators holds the excavator fleet, as []estimation.Excavator.
	ParamExcavators = "excavators"
	// ParamTrucks holds the truck fleet, as []estimation.Truck.
	ParamTrucks = "trucks"
	// ParamEfficiency optionally overrides the calculator's efficiency factor for one run.
	ParamEfficiency = "efficiency"

	ExcavationFleetName = "Excavation Fleet"
	HaulingFleetName    = "Hauling Fleet"
)

// FleetRate sums the DefaultEfficiency rate of every active unit. An empty or all-inactive fleet yields 0.
func FleetRate[E estimation.Equipment](units []E) (float64, error) {
	rate, _, err := fleetRate(defaultRates, units)
	return rate, err
}

func fleetRate[E estimation.Equipment](rates *RateCalculator, units []E) (float64, int, error) {
	total := 0.0
	active := 0
	for i, u := range units {
		if !u.Active() {
			continue
		}
		r, err := rates.Rate(u)
		if err != nil {
			return 0, 0, fmt.Errorf("%s %d: %w", u.Kind(), i+1, err)
		}
		total += r
		active++
	}
	return total, active, nil
}

// Compile-time assertions that the fleet calculators implement the Calculator interface.
var (
	_ estimation.Calculator = (*ExcavationFleet)(nil)
	_ estimation.Calculator = (*HaulingFleet)(nil)
)

// ExcavationFleet estimates how many cubic yards per hour the active excavators dig.
type ExcavationFleet struct {
	rates *RateCalculator
}

// NewExcavationFleet creates an ExcavationFleet calculator.
func NewExcavationFleet(opts ...RateOption) *ExcavationFleet {
	return &ExcavationFleet{rates: NewRateCalculator(opts...)}
}

func (c *ExcavationFleet) Name() string { return ExcavationFleetName }

func (c *ExcavationFleet) Keys() []string { return []string{ParamExcavators} }

// Calculate sums the excavator rates. ParamEfficiency is optional.
func (c *ExcavationFleet) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	return calculateFleet[estimation.Excavator](c.rates, params, ParamExcavators)
}

// HaulingFleet estimates how many cubic yards per hour the active trucks haul away.
type HaulingFleet struct {
	rates *RateCalculator
}

// NewHaulingFleet creates a HaulingFleet calculator.
func NewHaulingFleet(opts ...RateOption) *HaulingFleet {
	return &HaulingFleet{rates: NewRateCalculator(opts...)}
}

func (c *HaulingFleet) Name() string { return HaulingFleetName }

func (c *HaulingFleet) Keys() []string { return []string{ParamTrucks} }

// Calculate sums the truck rates. ParamEfficiency is optional.
func (c *HaulingFleet) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	return calculateFleet[estimation.Truck](c.rates, params, ParamTrucks)
}

func calculateFleet[E estimation.Equipment](rates *RateCalculator, params map[string]estimation.Param, key string) (estimation.Estimation, error) {
	unitsParam, ok := params[key]
	if !ok {
		return estimation.Estimation{}, fmt.Errorf("missing %s", key)
	}
	units, err := getUnits[E](unitsParam)
	if err != nil {
		return estimation.Estimation{}, err
	}

	// Extract efficiency (optional - falls back to the calculator's factor)
	if effParam, exists := params[ParamEfficiency]; exists {
		efficiency, err := getFloat(effParam)
		if err != nil {
			return estimation.Estimation{}, err
		}
		if efficiency <= 0 || efficiency > 1 {
			return estimation.Estimation{}, fmt.Errorf("%s must be in (0, 1], got %v", ParamEfficiency, efficiency)
		}
		rates = NewRateCalculator(WithEfficiency(efficiency))
	}

	rate, active, err := fleetRate(rates, units)
	if err != nil {
		return estimation.Estimation{}, err
	}

	var zero E
	return estimation.Estimation{
		Rate:        rate,
		ActiveUnits: active,
		Reason:      fmt.Sprintf("%d of %d %s(s) active @ %.0f%% efficiency", active, len(units), zero.Kind(), rates.Efficiency()*100),
	}, nil
}
