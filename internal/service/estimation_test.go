package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation/calculators"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/service"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
)

func scenarioAProject() validation.RawProject {
	// 50 x 30 x 5.4 ft = 300 cubic yards
	return validation.RawProject{WorkHours: "8", PondLength: "50", PondWidth: "30", PondDepth: "5.4"}
}

func fleetRequest() service.FleetRequest {
	return service.FleetRequest{
		Project: scenarioAProject(),
		Excavators: []validation.RawExcavator{
			{ID: "e1", Name: "Excavator 1", BucketCapacity: "2.5", CycleTime: "2", IsActive: true},
		},
		Trucks: []validation.RawTruck{
			{ID: "t1", Name: "Truck 1", Capacity: "12", RoundTripTime: "15", IsActive: true},
			{ID: "t2", Name: "Truck 2", Capacity: "12", RoundTripTime: "15", IsActive: true},
		},
	}
}

var _ = Describe("EstimationService", func() {
	var (
		settings config.Settings
		srv      *service.EstimationService
		ctx      context.Context
	)

	BeforeEach(func() {
		settings = config.DefaultSettings()
		srv = service.NewEstimationService(settings)
		ctx = context.Background()
	})

	Describe("Estimate", func() {
		It("estimates the single excavator and truck form", func() {
			out, err := srv.Estimate(ctx, validation.RawInputs{
				ExcavatorCapacity: "2.5",
				CycleTime:         "2",
				TruckCapacity:     "12",
				RoundTripTime:     "15",
				RawProject:        scenarioAProject(),
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(out.PondVolume).To(BeNumerically("~", 300, 1e-9))
			Expect(out.Result.ExcavationRate).To(BeNumerically("~", 63.75, 1e-9))
			Expect(out.Result.HaulingRate).To(BeNumerically("~", 40.8, 1e-9))
			Expect(out.Result.TotalHours).To(BeNumerically("~", 300/40.8, 1e-9))
			Expect(out.Result.TimelineInDays).To(Equal(1))
			Expect(out.Result.Bottleneck).To(Equal(estimation.HaulingBottleneck))
			Expect(out.Result.Confidence).To(Equal(estimation.Medium))
			Expect(out.Breakdown).To(HaveKey(calculators.ExcavationFleetName))
			Expect(out.Breakdown).To(HaveKey(calculators.HaulingFleetName))
		})

		It("fails fast on the first invalid field", func() {
			out, err := srv.Estimate(ctx, validation.RawInputs{
				ExcavatorCapacity: "0.05",
				CycleTime:         "abc",
				TruckCapacity:     "12",
				RoundTripTime:     "15",
				RawProject:        scenarioAProject(),
			})
			Expect(out).To(BeNil())
			Expect(validation.Flatten(err)).To(HaveLen(1))

			var low *validation.ValueTooLow
			Expect(err).To(BeAssignableToTypeOf(low))
			Expect(service.IsCalculationUnavailable(err)).To(BeFalse())
		})
	})

	Describe("EstimateFleet", func() {
		It("aggregates every active unit", func() {
			out, err := srv.EstimateFleet(ctx, fleetRequest())
			Expect(err).ToNot(HaveOccurred())

			Expect(out.Result.HaulingRate).To(BeNumerically("~", 81.6, 1e-9))
			Expect(out.Result.Bottleneck).To(Equal(estimation.ExcavationBottleneck))
			Expect(out.Breakdown[calculators.HaulingFleetName].ActiveUnits).To(Equal(2))
		})

		It("ignores inactive units", func() {
			req := fleetRequest()
			req.Trucks[1].IsActive = false

			out, err := srv.EstimateFleet(ctx, req)
			Expect(err).ToNot(HaveOccurred())
			Expect(out.Result.HaulingRate).To(BeNumerically("~", 40.8, 1e-9))
			Expect(out.Breakdown[calculators.HaulingFleetName].ActiveUnits).To(Equal(1))
		})

		It("reports every invalid equipment field at once", func() {
			req := fleetRequest()
			req.Project.PondDepth = ""
			req.Excavators[0].BucketCapacity = "20"
			req.Trucks[0].Capacity = "1.234"
			req.Trucks[1].RoundTripTime = " "

			_, err := srv.EstimateFleet(ctx, req)
			Expect(err).To(HaveOccurred())

			issues := validation.Issues(err)
			Expect(issues).To(HaveLen(4))
			Expect(issues[0].Field).To(Equal(validation.LabelPondDepth))
			Expect(issues[1].Kind).To(Equal(validation.KindValueTooHigh))
			Expect(issues[2].Kind).To(Equal(validation.KindDecimalPrecision))
			Expect(issues[3].Entry).To(Equal(2))
			Expect(issues[3].Kind).To(Equal(validation.KindRequiredField))
		})

		It("treats an all-inactive fleet as a calculation failure", func() {
			req := fleetRequest()
			req.Trucks[0].IsActive = false
			req.Trucks[1].IsActive = false

			out, err := srv.EstimateFleet(ctx, req)
			Expect(out).To(BeNil())
			Expect(service.IsCalculationUnavailable(err)).To(BeTrue())

			var mathErr *estimation.MathematicalError
			Expect(err).To(BeAssignableToTypeOf(mathErr))
			Expect(validation.IsValidationError(err)).To(BeFalse())
		})

		It("rejects empty fleets", func() {
			req := fleetRequest()
			req.Excavators = nil

			_, err := srv.EstimateFleet(ctx, req)
			var empty *service.ErrEmptyFleet
			Expect(err).To(BeAssignableToTypeOf(empty))
		})

		It("enforces the fleet limits", func() {
			settings.FleetLimits.MaxTrucks = 1
			srv = service.NewEstimationService(settings)

			_, err := srv.EstimateFleet(ctx, fleetRequest())
			var tooMany *service.ErrFleetLimitExceeded
			Expect(err).To(BeAssignableToTypeOf(tooMany))
			Expect(err.Error()).To(ContainSubstring("limit is 1"))
		})
	})

	Describe("options", func() {
		It("applies a custom efficiency to every rate", func() {
			srv = service.NewEstimationService(settings, service.WithEfficiency(1))

			out, err := srv.EstimateFleet(ctx, fleetRequest())
			Expect(err).ToNot(HaveOccurred())
			Expect(out.Result.ExcavationRate).To(BeNumerically("~", 75, 1e-9))
			Expect(out.Result.Warnings).To(ContainElement(ContainSubstring("unusually high")))
		})

		It("returns cached outcomes that callers cannot corrupt", func() {
			srv = service.NewEstimationService(settings, service.WithCacheSize(4))

			first, err := srv.EstimateFleet(ctx, fleetRequest())
			Expect(err).ToNot(HaveOccurred())
			first.Result.Assumptions[0] = "tampered"
			delete(first.Breakdown, calculators.HaulingFleetName)

			req := fleetRequest()
			req.Trucks[0].Name = "Renamed"
			second, err := srv.EstimateFleet(ctx, req)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.Result.Assumptions[0]).ToNot(Equal("tampered"))
			Expect(second.Breakdown).To(HaveKey(calculators.HaulingFleetName))
			Expect(second.Result.TotalHours).To(Equal(first.Result.TotalHours))
		})
	})
})
