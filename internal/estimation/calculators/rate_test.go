package calculators

import (
	"errors"
	"math"
	"testing"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
)

const tolerance = 1e-9

func TestExcavatorRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		bucketCapacity float64
		cycleTime      float64
		expected       float64
	}{
		{name: "default excavator", bucketCapacity: 2.5, cycleTime: 2.0, expected: 63.75},
		{name: "small bucket slow cycle", bucketCapacity: 1.0, cycleTime: 4.0, expected: 12.75},
		{name: "large bucket fast cycle", bucketCapacity: 5.0, cycleTime: 1.0, expected: 255},
		{name: "minimum bounds", bucketCapacity: 0.1, cycleTime: 10, expected: 0.51},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExcavatorRate(tt.bucketCapacity, tt.cycleTime)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTruckRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		capacity      float64
		roundTripTime float64
		expected      float64
	}{
		{name: "default truck", capacity: 12, roundTripTime: 15, expected: 40.8},
		{name: "large truck short trip", capacity: 30, roundTripTime: 5, expected: 306},
		{name: "small truck long trip", capacity: 6, roundTripTime: 30, expected: 10.2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := TruckRate(tt.capacity, tt.roundTripTime)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRate_PreconditionViolations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		capacity float64
		minutes  float64
	}{
		{name: "zero cycle time", capacity: 2.5, minutes: 0},
		{name: "negative cycle time", capacity: 2.5, minutes: -1},
		{name: "NaN cycle time", capacity: 2.5, minutes: math.NaN()},
		{name: "infinite cycle time", capacity: 2.5, minutes: math.Inf(1)},
		{name: "zero capacity", capacity: 0, minutes: 2},
		{name: "negative capacity", capacity: -3, minutes: 2},
		{name: "overflowing rate", capacity: math.MaxFloat64, minutes: 1e-300},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, fn := range []func(float64, float64) (float64, error){ExcavatorRate, TruckRate} {
				got, err := fn(tt.capacity, tt.minutes)
				if err == nil {
					t.Fatalf("expected error, got rate %v", got)
				}
				if got != 0 {
					t.Errorf("expected zero rate on error, got %v", got)
				}
				var mathErr *estimation.MathematicalError
				if !errors.As(err, &mathErr) {
					t.Fatalf("expected *MathematicalError, got %T", err)
				}
				if !errors.Is(err, estimation.ErrCalculationUnavailable) {
					t.Error("expected error to match ErrCalculationUnavailable")
				}
			}
		})
	}
}

func TestRate_Deterministic(t *testing.T) {
	t.Parallel()
	first, err := ExcavatorRate(3.3, 1.7)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	for i := 0; i < 100; i++ {
		got, _ := ExcavatorRate(3.3, 1.7)
		if math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("run %d: expected bit-identical %v, got %v", i, first, got)
		}
	}
}

func TestRateCalculator_WithEfficiency(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		efficiency float64
		expected   float64
	}{
		{name: "custom efficiency", efficiency: 0.5, expected: 0.5},
		{name: "full efficiency", efficiency: 1, expected: 1},
		{name: "zero is ignored", efficiency: 0, expected: DefaultEfficiency},
		{name: "negative is ignored", efficiency: -0.2, expected: DefaultEfficiency},
		{name: "above one is ignored", efficiency: 1.5, expected: DefaultEfficiency},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			calc := NewRateCalculator(WithEfficiency(tt.efficiency))
			if calc.Efficiency() != tt.expected {
				t.Errorf("expected efficiency %v, got %v", tt.expected, calc.Efficiency())
			}
		})
	}
}

func TestRateCalculator_Rate(t *testing.T) {
	t.Parallel()
	calc := NewRateCalculator(WithEfficiency(1))

	got, err := calc.Rate(estimation.Truck{Capacity: 10, RoundTripTime: 20, IsActive: true})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if math.Abs(got-30) > tolerance {
		t.Errorf("expected 30, got %v", got)
	}

	_, err = calc.Rate(estimation.Excavator{BucketCapacity: 2, CycleTime: 0})
	var mathErr *estimation.MathematicalError
	if !errors.As(err, &mathErr) {
		t.Fatalf("expected *MathematicalError, got %v", err)
	}
	if mathErr.Operation != "excavator rate" {
		t.Errorf("expected operation %q, got %q", "excavator rate", mathErr.Operation)
	}
}
