package validation

import (
	"strings"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
)

// RawExcavator is one excavator entry as typed.
type RawExcavator struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BucketCapacity string `json:"bucketCapacity"`
	CycleTime      string `json:"cycleTime"`
	IsActive       bool   `json:"isActive"`
}

// RawTruck is one truck entry as typed.
type RawTruck struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Capacity      string `json:"capacity"`
	RoundTripTime string `json:"roundTripTime"`
	IsActive      bool   `json:"isActive"`
}

func (r RawExcavator) Identity() string { return r.ID }
func (r RawExcavator) Active() bool     { return r.IsActive }

func (r RawExcavator) WithActive(active bool) RawExcavator {
	r.IsActive = active
	return r
}

func (r RawTruck) Identity() string { return r.ID }
func (r RawTruck) Active() bool     { return r.IsActive }

func (r RawTruck) WithActive(active bool) RawTruck {
	r.IsActive = active
	return r
}

// ValidateExcavators checks every entry and reports all failures at once as *FleetErrors.
// Inactive entries are validated too, so a unit can be switched back on without surprises.
func ValidateExcavators(rules config.ValidationRules, raw []RawExcavator) ([]estimation.Excavator, error) {
	out := make([]estimation.Excavator, len(raw))
	fe := &FleetErrors{Kind: estimation.KindExcavator}

	for i, r := range raw {
		out[i] = estimation.Excavator{
			ID:       r.ID,
			Name:     strings.TrimSpace(r.Name),
			IsActive: r.IsActive,
		}
		errs := runAll([]fieldCheck{
			{LabelExcavatorCapacity, rules.ExcavatorCapacity, r.BucketCapacity, &out[i].BucketCapacity},
			{LabelCycleTime, rules.CycleTime, r.CycleTime, &out[i].CycleTime},
		})
		fe.add(i, errs)
	}

	if len(fe.Errors) > 0 {
		return nil, fe
	}
	return out, nil
}

// ValidateTrucks checks every entry and reports all failures at once as *FleetErrors.
func ValidateTrucks(rules config.ValidationRules, raw []RawTruck) ([]estimation.Truck, error) {
	out := make([]estimation.Truck, len(raw))
	fe := &FleetErrors{Kind: estimation.KindTruck}

	for i, r := range raw {
		out[i] = estimation.Truck{
			ID:       r.ID,
			Name:     strings.TrimSpace(r.Name),
			IsActive: r.IsActive,
		}
		errs := runAll([]fieldCheck{
			{LabelTruckCapacity, rules.TruckCapacity, r.Capacity, &out[i].Capacity},
			{LabelRoundTripTime, rules.RoundTripTime, r.RoundTripTime, &out[i].RoundTripTime},
		})
		fe.add(i, errs)
	}

	if len(fe.Errors) > 0 {
		return nil, fe
	}
	return out, nil
}

func (e *FleetErrors) add(index int, errs []ValidationError) {
	for _, err := range errs {
		e.Errors = append(e.Errors, IndexedError{Index: index, Err: err})
	}
}
