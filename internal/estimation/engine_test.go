package estimation

import (
	"errors"
	"strings"
	"testing"
)

// mockCalculator is a test double implementing the Calculator interface.
type mockCalculator struct {
	name   string
	result Estimation
	err    error
	// gotParams captures the params map passed to Calculate for inspection.
	gotParams map[string]Param
}

func (m *mockCalculator) Name() string { return m.name }
func (m *mockCalculator) Keys() []string {
	return nil
}
func (m *mockCalculator) Calculate(params map[string]Param) (Estimation, error) {
	m.gotParams = params
	return m.result, m.err
}

func TestNewEngine(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	if e == nil {
		t.Fatal("expected non-nil Engine")
	}
	if len(e.calculators) != 0 {
		t.Errorf("expected 0 calculators, got %d", len(e.calculators))
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	e.Register(&mockCalculator{name: "A"})
	e.Register(&mockCalculator{name: "B"})
	if len(e.calculators) != 2 {
		t.Errorf("expected 2 calculators, got %d", len(e.calculators))
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	e.Register(&mockCalculator{name: "A"})
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate calculator name, got none")
		}
	}()
	e.Register(&mockCalculator{name: "A"})
}

func TestRun_ReturnsResultsKeyedByName(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	e.Register(&mockCalculator{name: "calc-a", result: Estimation{Rate: 63.75, ActiveUnits: 1, Reason: "reason-a"}})
	e.Register(&mockCalculator{name: "calc-b", result: Estimation{Rate: 40.8, ActiveUnits: 1, Reason: "reason-b"}})

	results, err := e.Run(nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["calc-a"].Rate != 63.75 {
		t.Errorf("calc-a: expected 63.75, got %v", results["calc-a"].Rate)
	}
	if results["calc-b"].Rate != 40.8 {
		t.Errorf("calc-b: expected 40.8, got %v", results["calc-b"].Rate)
	}
}

func TestRun_CalculatorErrorIsReturned(t *testing.T) {
	t.Parallel()
	cause := NewMathematicalError("excavator rate", "cycle time must be greater than zero", map[string]float64{"cycleTime": 0})
	e := NewEngine()
	e.Register(&mockCalculator{name: "ok", result: Estimation{Rate: 10}})
	e.Register(&mockCalculator{name: "failing", err: cause})

	results, err := e.Run(nil)
	if err == nil {
		t.Fatal("expected error for failing calculator")
	}
	if !strings.Contains(err.Error(), "failing") {
		t.Errorf("expected calculator name in error, got %q", err.Error())
	}
	if !errors.Is(err, ErrCalculationUnavailable) {
		t.Errorf("expected error to match ErrCalculationUnavailable, got %v", err)
	}
	var mathErr *MathematicalError
	if !errors.As(err, &mathErr) || mathErr != cause {
		t.Errorf("expected the original *MathematicalError to be reachable")
	}
	if _, ok := results["failing"]; ok {
		t.Error("expected no result for failing calculator")
	}
	if results["ok"].Rate != 10 {
		t.Errorf("expected successful calculator result to be kept, got %v", results["ok"])
	}
}

func TestRun_InputSliceConvertedToMap(t *testing.T) {
	t.Parallel()
	calc := &mockCalculator{name: "spy"}
	e := NewEngine()
	e.Register(calc)

	inputs := []Param{
		{Key: "foo", Value: 1},
		{Key: "bar", Value: 2},
	}
	if _, err := e.Run(inputs); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if calc.gotParams["foo"].Value != 1 {
		t.Errorf("expected foo=1 in params map, got %v", calc.gotParams["foo"].Value)
	}
	if calc.gotParams["bar"].Value != 2 {
		t.Errorf("expected bar=2 in params map, got %v", calc.gotParams["bar"].Value)
	}
}

func TestRun_EmptyEngine(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	results, err := e.Run([]Param{{Key: "x", Value: 42}})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results for engine with no calculators, got %d", len(results))
	}
}
