package estimation

import (
	"fmt"
	"math"
)

const (
	// HighConfidenceRatio is the smallest slower/faster rate ratio still rated High.
	HighConfidenceRatio = 0.80
	// MediumConfidenceRatio is the smallest ratio still rated Medium; anything below is Low.
	MediumConfidenceRatio = 0.50
	// HighEfficiencyThreshold flags efficiency factors few real sites sustain.
	HighEfficiencyThreshold = 0.90
	// LongProjectDays flags timelines longer than a year of working days.
	LongProjectDays = 260

	synthesizeOperation = "synthesize timeline"
)

type synthesisContext struct {
	efficiency     float64
	excavatorCount int
	truckCount     int
}

// SynthesisOption annotates the advisory text of a result. Options never change the numbers.
type SynthesisOption func(*synthesisContext)

// WithEfficiency records the efficiency factor the rates were computed with.
func WithEfficiency(efficiency float64) SynthesisOption {
	return func(c *synthesisContext) {
		c.efficiency = efficiency
	}
}

// WithFleetSizes records how many active units produced each rate.
func WithFleetSizes(excavators, trucks int) SynthesisOption {
	return func(c *synthesisContext) {
		c.excavatorCount = excavators
		c.truckCount = trucks
	}
}

// Synthesize combines the excavation and hauling fleet rates (cubic yards per hour) with the pond volume
// (cubic yards) and the length of a work day (hours) into a timeline estimate.
//
// The slower operation throttles the project. Partial days are billed as full working days.
// Any non-positive or non-finite input, or non-finite intermediate, yields a *MathematicalError.
func Synthesize(excavationRate, haulingRate, pondVolume, workHoursPerDay float64, opts ...SynthesisOption) (*CalculationResult, error) {
	inputs := map[string]float64{
		"excavationRate":  excavationRate,
		"haulingRate":     haulingRate,
		"pondVolume":      pondVolume,
		"workHoursPerDay": workHoursPerDay,
	}

	for _, name := range []string{"pondVolume", "workHoursPerDay", "excavationRate", "haulingRate"} {
		v := inputs[name]
		if !isFinite(v) {
			return nil, NewMathematicalError(synthesizeOperation, fmt.Sprintf("%s is not a finite number", name), inputs)
		}
		if v <= 0 {
			return nil, NewMathematicalError(synthesizeOperation, fmt.Sprintf("%s must be greater than zero", name), inputs)
		}
	}

	ctx := synthesisContext{}
	for _, opt := range opts {
		opt(&ctx)
	}

	effectiveRate := math.Min(excavationRate, haulingRate)
	totalHours := pondVolume / effectiveRate
	if !isFinite(totalHours) || totalHours <= 0 {
		return nil, NewMathematicalError(synthesizeOperation, "total hours is not a positive finite number", inputs)
	}

	days := math.Ceil(totalHours / workHoursPerDay)
	if !isFinite(days) || days > math.MaxInt32 {
		return nil, NewMathematicalError(synthesizeOperation, "timeline is too long to represent", inputs)
	}
	timelineInDays := int(math.Max(1, days))

	bottleneck := ClassifyBottleneck(excavationRate, haulingRate)
	ratio := BalanceRatio(excavationRate, haulingRate)

	return &CalculationResult{
		TimelineInDays: timelineInDays,
		TotalHours:     totalHours,
		ExcavationRate: excavationRate,
		HaulingRate:    haulingRate,
		Bottleneck:     bottleneck,
		Confidence:     ClassifyConfidence(ratio),
		Assumptions:    assumptions(ctx, pondVolume, workHoursPerDay),
		Warnings:       warnings(ctx, bottleneck, ratio, timelineInDays),
	}, nil
}

// ClassifyBottleneck compares the two rates exactly; only identical rates are Balanced.
func ClassifyBottleneck(excavationRate, haulingRate float64) Bottleneck {
	switch {
	case excavationRate < haulingRate:
		return ExcavationBottleneck
	case haulingRate < excavationRate:
		return HaulingBottleneck
	default:
		return Balanced
	}
}

// BalanceRatio is slower/faster, in (0, 1]. It is 1 for identical rates.
func BalanceRatio(excavationRate, haulingRate float64) float64 {
	hi := math.Max(excavationRate, haulingRate)
	if hi <= 0 {
		return 0
	}
	return math.Min(excavationRate, haulingRate) / hi
}

// ClassifyConfidence maps a balance ratio to a confidence level. It is monotonic:
// a smaller ratio never yields a higher level.
func ClassifyConfidence(ratio float64) ConfidenceLevel {
	switch {
	case ratio >= HighConfidenceRatio:
		return High
	case ratio >= MediumConfidenceRatio:
		return Medium
	default:
		return Low
	}
}

func assumptions(ctx synthesisContext, pondVolume, workHoursPerDay float64) []string {
	out := make([]string, 0, 5)
	if ctx.efficiency > 0 {
		out = append(out, fmt.Sprintf("Equipment operates at %.0f%% efficiency to account for delays, operator breaks and site conditions", ctx.efficiency*100))
	}
	out = append(out,
		fmt.Sprintf("Pond volume of %.1f cubic yards from rectangular length x width x depth", pondVolume),
		fmt.Sprintf("%s working hours per day; partial days are billed as full working days", trimFloat(workHoursPerDay)),
		"Excavation and hauling run concurrently, so the slower operation sets the pace",
	)
	if ctx.excavatorCount > 0 || ctx.truckCount > 0 {
		out = append(out, fmt.Sprintf("%d active excavator(s) and %d active truck(s) work the full day", ctx.excavatorCount, ctx.truckCount))
	}
	return out
}

func warnings(ctx synthesisContext, bottleneck Bottleneck, ratio float64, days int) []string {
	out := make([]string, 0)
	if ctx.efficiency > HighEfficiencyThreshold {
		out = append(out, fmt.Sprintf("An efficiency factor of %.0f%% is unusually high; real sites rarely sustain more than %.0f%%", ctx.efficiency*100, HighEfficiencyThreshold*100))
	}
	if ratio < MediumConfidenceRatio {
		switch bottleneck {
		case HaulingBottleneck:
			out = append(out, fmt.Sprintf("Fleet is heavily imbalanced: hauling runs at %.0f%% of excavation capacity; adding trucks would shorten the timeline", ratio*100))
		case ExcavationBottleneck:
			out = append(out, fmt.Sprintf("Fleet is heavily imbalanced: excavation runs at %.0f%% of hauling capacity; trucks will wait on the excavators", ratio*100))
		}
	}
	if days > LongProjectDays {
		out = append(out, fmt.Sprintf("The project needs %d working days, more than a working year; consider adding equipment", days))
	}
	return out
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
