package calculators

import (
	"fmt"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
)

func getFloat(p estimation.Param) (float64, error) {
	switch v := p.Value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0.0, fmt.Errorf("param %s is not a number (type: %T)", p.Key, p.Value)
	}
}

// getUnits accepts either a slice of units or a single unit.
func getUnits[E estimation.Equipment](p estimation.Param) ([]E, error) {
	switch v := p.Value.(type) {
	case []E:
		return v, nil
	case E:
		return []E{v}, nil
	case nil:
		return nil, nil
	default:
		var zero E
		return nil, fmt.Errorf("param %s is not a list of %s units (type: %T)", p.Key, zero.Kind(), p.Value)
	}
}
