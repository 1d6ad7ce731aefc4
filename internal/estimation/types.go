package estimation

import "slices"

// Calculator encapsulates one specific part of the estimation (e.g. "excavation fleet", "hauling fleet").
type Calculator interface {
	// Name returns the human-readable name of this calculator, used as the key in Engine results.
	Name() string
	// Keys returns the list of Param keys this calculator depends on.
	Keys() []string
	// Calculate runs the estimation using the provided params and returns an Estimation or an error.
	Calculate(params map[string]Param) (Estimation, error)
}

// Param represents an input for a Calculator (validated user input or configured defaults)
type Param struct {
	Key   string      // Unique identifier (e.g., "excavators")
	Value interface{} // The actual value (e.g., []Excavator, 0.85)
}

// Estimation the result of a Calculator calculation
type Estimation struct {
	// Rate is the production rate in cubic yards per hour.
	Rate float64
	// ActiveUnits is the number of units that contributed to Rate.
	ActiveUnits int
	Reason      string
}

// Bottleneck names the operation that caps overall production.
type Bottleneck string

const (
	ExcavationBottleneck Bottleneck = "excavation"
	HaulingBottleneck    Bottleneck = "hauling"
	Balanced             Bottleneck = "balanced"
)

// ConfidenceLevel expresses how much the fleet balance supports the estimate.
type ConfidenceLevel string

const (
	High   ConfidenceLevel = "high"
	Medium ConfidenceLevel = "medium"
	Low    ConfidenceLevel = "low"
)

// CalculationResult is an immutable timeline estimate.
type CalculationResult struct {
	TimelineInDays int             `json:"timelineInDays"`
	TotalHours     float64         `json:"totalHours"`
	ExcavationRate float64         `json:"excavationRate"`
	HaulingRate    float64         `json:"haulingRate"`
	Bottleneck     Bottleneck      `json:"bottleneck"`
	Confidence     ConfidenceLevel `json:"confidence"`
	Assumptions    []string        `json:"assumptions"`
	Warnings       []string        `json:"warnings"`
}

// Clone returns a deep copy so callers cannot alias the advisory slices.
func (r CalculationResult) Clone() CalculationResult {
	r.Assumptions = slices.Clone(r.Assumptions)
	r.Warnings = slices.Clone(r.Warnings)
	return r
}
