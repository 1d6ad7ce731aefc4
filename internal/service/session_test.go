package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/service"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
)

var _ = Describe("Session", func() {
	var (
		srv *service.EstimationService
		ctx context.Context
	)

	BeforeEach(func() {
		srv = service.NewEstimationService(config.DefaultSettings())
		ctx = context.Background()
	})

	Context("evaluated immediately", func() {
		var session *service.Session

		BeforeEach(func() {
			session = service.NewSession(srv, time.Hour)
		})

		AfterEach(func() {
			session.Close()
		})

		It("shows nothing stale before the first valid result", func() {
			req := fleetRequest()
			req.Project.WorkHours = "abc"

			view := session.Evaluate(ctx, req)
			Expect(view.Result).To(BeNil())
			Expect(view.Stale).To(BeFalse())
			Expect(view.Errors).To(HaveLen(1))
			Expect(view.Errors[0].Kind).To(Equal(validation.KindInvalidFormat))
		})

		It("keeps the last valid result and flags it stale", func() {
			valid := session.Evaluate(ctx, fleetRequest())
			Expect(valid.Result).ToNot(BeNil())
			Expect(valid.Stale).To(BeFalse())
			Expect(valid.Errors).To(BeEmpty())

			req := fleetRequest()
			req.Excavators[0].CycleTime = "0"
			invalid := session.Evaluate(ctx, req)
			Expect(invalid.Stale).To(BeTrue())
			Expect(invalid.Result).ToNot(BeNil())
			Expect(invalid.Result.TotalHours).To(Equal(valid.Result.TotalHours))
			Expect(invalid.Errors).To(HaveLen(1))
			Expect(invalid.Errors[0].Kind).To(Equal(validation.KindEdgeCase))
			Expect(invalid.Revision).To(BeNumerically(">", valid.Revision))

			again := session.Evaluate(ctx, fleetRequest())
			Expect(again.Stale).To(BeFalse())
			Expect(again.Errors).To(BeEmpty())
		})

		It("reports calculation failures distinctly from field errors", func() {
			session.Evaluate(ctx, fleetRequest())

			req := fleetRequest()
			for i := range req.Trucks {
				req.Trucks[i].IsActive = false
			}
			view := session.Evaluate(ctx, req)
			Expect(view.CalculationUnavailable).To(BeTrue())
			Expect(view.Errors).To(BeEmpty())
			Expect(view.Stale).To(BeTrue())
			Expect(view.Message).ToNot(BeEmpty())
		})

		It("marks the retained result stale when input cannot be read", func() {
			valid := session.Evaluate(ctx, fleetRequest())

			view := session.Reject(ctx, errors.New("decoding project file: unexpected EOF"))
			Expect(view.Stale).To(BeTrue())
			Expect(view.Revision).To(BeNumerically(">", valid.Revision))
			Expect(view.Result).ToNot(BeNil())
			Expect(view.Result.TotalHours).To(Equal(valid.Result.TotalHours))
			Expect(view.Errors).To(BeEmpty())
			Expect(view.CalculationUnavailable).To(BeFalse())
			Expect(view.Message).To(ContainSubstring("unexpected EOF"))
			Expect(session.View().Stale).To(BeTrue())
		})

		It("does not let callers mutate the retained result", func() {
			first := session.Evaluate(ctx, fleetRequest())
			first.Result.Warnings = append(first.Result.Warnings, "tampered")

			req := fleetRequest()
			req.Project.PondLength = ""
			stale := session.Evaluate(ctx, req)
			Expect(stale.Result.Warnings).ToNot(ContainElement("tampered"))
		})
	})

	Context("with debounced input", func() {
		It("evaluates once per pause in typing, using the latest input", func() {
			var (
				mu      sync.Mutex
				updates []service.View
			)
			session := service.NewSession(srv, 25*time.Millisecond, service.WithOnUpdate(func(v service.View) {
				mu.Lock()
				defer mu.Unlock()
				updates = append(updates, v)
			}))
			defer session.Close()

			var last uint64
			for _, depth := range []string{"5", "5.", "5.4"} {
				req := fleetRequest()
				req.Project.PondDepth = depth
				last = session.Submit(ctx, req)
			}
			Expect(session.Pending()).To(BeTrue())

			Eventually(func() int {
				mu.Lock()
				defer mu.Unlock()
				return len(updates)
			}).WithTimeout(time.Second).Should(Equal(1))
			Consistently(func() int {
				mu.Lock()
				defer mu.Unlock()
				return len(updates)
			}).WithTimeout(75 * time.Millisecond).Should(Equal(1))

			view := session.View()
			Expect(view.Revision).To(Equal(last))
			Expect(view.Errors).To(BeEmpty())
			Expect(view.Result).ToNot(BeNil())
			Expect(view.Result.TimelineInDays).To(Equal(1))
		})

		It("drops pending input on Close", func() {
			session := service.NewSession(srv, 20*time.Millisecond)
			session.Submit(ctx, fleetRequest())
			session.Close()

			Consistently(func() *uint64 {
				v := session.View()
				if v.Result == nil {
					return nil
				}
				return &v.Revision
			}).WithTimeout(60 * time.Millisecond).Should(BeNil())
		})
	})
})
