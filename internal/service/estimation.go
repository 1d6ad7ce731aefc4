package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation/calculators"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/fleet"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
	"github.com/Meshed/PondDiggingCalculator-sub003/pkg/log"
	"github.com/Meshed/PondDiggingCalculator-sub003/pkg/metrics"
)

// Outcome is a successful estimate together with the per-fleet breakdown behind it.
type Outcome struct {
	Result     estimation.CalculationResult     `json:"result"`
	Breakdown  map[string]estimation.Estimation `json:"breakdown"`
	PondVolume float64                          `json:"pondVolume"`
}

func (o Outcome) clone() Outcome {
	o.Result = o.Result.Clone()
	o.Breakdown = maps.Clone(o.Breakdown)
	return o
}

// FleetRequest is the full project form: the site plus every equipment entry, as typed.
type FleetRequest struct {
	Project    validation.RawProject     `json:"project"`
	Excavators []validation.RawExcavator `json:"excavators"`
	Trucks     []validation.RawTruck     `json:"trucks"`
}

// EstimationService validates raw project input and runs it through the estimation Engine.
// It is safe for concurrent use.
type EstimationService struct {
	settings   config.Settings
	engine     *estimation.Engine
	efficiency float64
	cache      *lru.Cache[string, Outcome]
	logger     *log.StructuredLogger
}

type estimationOptions struct {
	efficiency float64
	cacheSize  int
}

type EstimationOption func(*estimationOptions)

// WithEfficiency overrides calculators.DefaultEfficiency. Values outside (0, 1] are ignored.
func WithEfficiency(efficiency float64) EstimationOption {
	return func(o *estimationOptions) {
		if efficiency > 0 && efficiency <= 1 {
			o.efficiency = efficiency
		}
	}
}

// WithCacheSize bounds the memoised outcomes. Zero disables caching.
func WithCacheSize(size int) EstimationOption {
	return func(o *estimationOptions) {
		if size >= 0 {
			o.cacheSize = size
		}
	}
}

// NewEstimationService creates an EstimationService with the excavation and hauling calculators registered.
func NewEstimationService(settings config.Settings, opts ...EstimationOption) *EstimationService {
	o := estimationOptions{efficiency: calculators.DefaultEfficiency}
	for _, opt := range opts {
		opt(&o)
	}

	engine := estimation.NewEngine()
	engine.Register(calculators.NewExcavationFleet(calculators.WithEfficiency(o.efficiency)))
	engine.Register(calculators.NewHaulingFleet(calculators.WithEfficiency(o.efficiency)))

	svc := &EstimationService{
		settings:   settings,
		engine:     engine,
		efficiency: o.efficiency,
		logger:     log.NewDebugLogger("estimation_service"),
	}
	if o.cacheSize > 0 {
		// only fails for a non-positive size
		svc.cache, _ = lru.New[string, Outcome](o.cacheSize)
	}
	return svc
}

func (s *EstimationService) Settings() config.Settings { return s.settings }

// Estimate validates the single excavator, single truck form and estimates the timeline.
// Validation stops at the first bad field.
func (s *EstimationService) Estimate(ctx context.Context, in validation.RawInputs) (*Outcome, error) {
	tracer := s.logger.WithContext(ctx).Operation("estimate").Build()

	validated, err := validation.ValidateAll(s.settings.Validation, in)
	if err != nil {
		s.recordValidationFailure(err)
		tracer.Error(err).WithString("step", "validate").Log()
		return nil, err
	}
	tracer.Step("validated").WithFloat("pond_volume", validated.PondVolume()).Log()

	excavators := []estimation.Excavator{{
		Name:           s.settings.Defaults.Excavator.Name,
		BucketCapacity: validated.ExcavatorCapacity,
		CycleTime:      validated.CycleTime,
		IsActive:       true,
	}}
	trucks := []estimation.Truck{{
		Name:          s.settings.Defaults.Truck.Name,
		Capacity:      validated.TruckCapacity,
		RoundTripTime: validated.RoundTripTime,
		IsActive:      true,
	}}

	return s.run(tracer, validated.ValidatedProject, excavators, trucks)
}

// EstimateFleet validates a whole fleet and estimates the timeline. Every bad equipment
// field is reported at once; the site fields still fail fast.
func (s *EstimationService) EstimateFleet(ctx context.Context, req FleetRequest) (*Outcome, error) {
	tracer := s.logger.WithContext(ctx).Operation("estimate_fleet").
		WithInt("excavators", len(req.Excavators)).
		WithInt("trucks", len(req.Trucks)).
		Build()

	if err := s.checkFleetSize(req); err != nil {
		tracer.Error(err).WithString("step", "fleet_size").Log()
		return nil, err
	}

	project, projectErr := validation.ValidateProject(s.settings.Validation, req.Project)
	excavators, excavatorErr := validation.ValidateExcavators(s.settings.Validation, req.Excavators)
	trucks, truckErr := validation.ValidateTrucks(s.settings.Validation, req.Trucks)
	if err := errors.Join(projectErr, excavatorErr, truckErr); err != nil {
		s.recordValidationFailure(err)
		tracer.Error(err).WithString("step", "validate").Log()
		return nil, err
	}
	tracer.Step("validated").
		WithInt("active_excavators", fleet.ActiveCount(excavators)).
		WithInt("active_trucks", fleet.ActiveCount(trucks)).
		Log()

	return s.run(tracer, *project, excavators, trucks)
}

func (s *EstimationService) checkFleetSize(req FleetRequest) error {
	limits := s.settings.FleetLimits
	switch {
	case len(req.Excavators) == 0:
		return NewErrEmptyFleet(estimation.KindExcavator)
	case len(req.Trucks) == 0:
		return NewErrEmptyFleet(estimation.KindTruck)
	case len(req.Excavators) > limits.MaxExcavators:
		return NewErrFleetLimitExceeded(estimation.KindExcavator, len(req.Excavators), limits.MaxExcavators)
	case len(req.Trucks) > limits.MaxTrucks:
		return NewErrFleetLimitExceeded(estimation.KindTruck, len(req.Trucks), limits.MaxTrucks)
	}
	return nil
}

func (s *EstimationService) run(tracer *log.OperationTracer, project validation.ValidatedProject, excavators []estimation.Excavator, trucks []estimation.Truck) (*Outcome, error) {
	key := cacheKey(project, excavators, trucks)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.IncreaseEstimatesTotalMetric(metrics.OutcomeCached)
			tracer.Success().WithBool("cached", true).Log()
			out := cached.clone()
			return &out, nil
		}
	}

	breakdown, err := s.engine.Run([]estimation.Param{
		{Key: calculators.ParamExcavators, Value: excavators},
		{Key: calculators.ParamTrucks, Value: trucks},
	})
	if err != nil {
		metrics.IncreaseEstimatesTotalMetric(metrics.OutcomeCalculationErr)
		tracer.Error(err).WithString("step", "fleet_rates").Log()
		return nil, err
	}

	excavation := breakdown[calculators.ExcavationFleetName]
	hauling := breakdown[calculators.HaulingFleetName]
	tracer.Step("fleet_rates").
		WithFloat("excavation_rate", excavation.Rate).
		WithFloat("hauling_rate", hauling.Rate).
		Log()

	volume := project.PondVolume()
	result, err := estimation.Synthesize(excavation.Rate, hauling.Rate, volume, project.WorkHours,
		estimation.WithEfficiency(s.efficiency),
		estimation.WithFleetSizes(excavation.ActiveUnits, hauling.ActiveUnits),
	)
	if err != nil {
		metrics.IncreaseEstimatesTotalMetric(metrics.OutcomeCalculationErr)
		tracer.Error(err).WithString("step", "synthesize").Log()
		return nil, err
	}

	out := Outcome{Result: *result, Breakdown: breakdown, PondVolume: volume}
	if s.cache != nil {
		s.cache.Add(key, out.clone())
	}

	metrics.IncreaseEstimatesTotalMetric(metrics.OutcomeSuccess)
	metrics.ObserveTimelineDays(result.TimelineInDays)
	tracer.Success().
		WithInt("timeline_days", result.TimelineInDays).
		WithString("bottleneck", string(result.Bottleneck)).
		WithString("confidence", string(result.Confidence)).
		Log()

	return &out, nil
}

func (s *EstimationService) recordValidationFailure(err error) {
	metrics.IncreaseEstimatesTotalMetric(metrics.OutcomeValidationError)
	for _, ve := range validation.Flatten(err) {
		metrics.IncreaseValidationErrorsMetric(string(ve.Kind()))
	}
}

type cacheEntry struct {
	Project    validation.ValidatedProject `json:"project"`
	Excavators [][2]float64                `json:"excavators"`
	Trucks     [][2]float64                `json:"trucks"`
	Listed     [2]int                      `json:"listed"`
}

// cacheKey depends on the active unit specs and the list sizes; names and ids do not
// change the outcome.
func cacheKey(project validation.ValidatedProject, excavators []estimation.Excavator, trucks []estimation.Truck) string {
	entry := cacheEntry{Project: project, Excavators: activeCycles(excavators), Trucks: activeCycles(trucks), Listed: [2]int{len(excavators), len(trucks)}}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf("%v", entry)
	}
	return string(data)
}

func activeCycles[E estimation.Equipment](units []E) [][2]float64 {
	out := make([][2]float64, 0, len(units))
	for _, u := range units {
		if !u.Active() {
			continue
		}
		capacity, minutes := u.Cycle()
		out = append(out, [2]float64{capacity, minutes})
	}
	return out
}

// IsCalculationUnavailable reports whether err is a calculation failure rather than a field problem.
func IsCalculationUnavailable(err error) bool {
	return errors.Is(err, estimation.ErrCalculationUnavailable)
}
