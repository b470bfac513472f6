package association_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/association"
)

func TestAssociation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Association Suite")
}

var _ = Describe("Association state machine", func() {
	Describe("CanBeRevoked", func() {
		It("should allow revoke only from approved", func() {
			a := &association.CampEventAssociation{Status: association.StatusApproved}
			Expect(a.CanBeRevoked()).To(Succeed())
		})

		It("should fail as unsupported from any other state", func() {
			for _, s := range []association.Status{
				association.StatusPending,
				association.StatusRejected,
				association.StatusRevoked,
			} {
				a := &association.CampEventAssociation{Status: s}
				err := a.CanBeRevoked()
				Expect(errors.Is(err, internal.ErrUnsupportedAction)).To(BeTrue(),
					"revoke from %s should be unsupported", s)
			}
		})
	})

	Describe("CanCancelRejection", func() {
		It("should allow cancel-rejection only from rejected", func() {
			a := &association.CampEventAssociation{Status: association.StatusRejected}
			Expect(a.CanCancelRejection()).To(Succeed())
		})

		It("should fail as unsupported from pending, approved and revoked", func() {
			for _, s := range []association.Status{
				association.StatusPending,
				association.StatusApproved,
				association.StatusRevoked,
			} {
				a := &association.CampEventAssociation{Status: s}
				err := a.CanCancelRejection()
				Expect(errors.Is(err, internal.ErrUnsupportedAction)).To(BeTrue())
			}
		})
	})

	Describe("Revoke", func() {
		It("should clear the approval timestamp and store the reason", func() {
			approvedAt := time.Now().Add(-time.Hour)
			a := &association.CampEventAssociation{
				Status:     association.StatusApproved,
				ApprovedAt: &approvedAt,
			}

			a.Revoke("venue conflict")

			Expect(a.Status).To(Equal(association.StatusRevoked))
			Expect(a.ApprovedAt).To(BeNil())
			Expect(a.Reason).ToNot(BeNil())
			Expect(*a.Reason).To(Equal("venue conflict"))
		})
	})

	Describe("CancelRejection", func() {
		It("should revert to pending and clear the stored reason", func() {
			reason := "incomplete application"
			a := &association.CampEventAssociation{
				Status: association.StatusRejected,
				Reason: &reason,
			}

			a.CancelRejection()

			Expect(a.Status).To(Equal(association.StatusPending))
			Expect(a.Reason).To(BeNil())
		})
	})
})

var _ = Describe("RevokeDTO", func() {
	It("should reject an empty reason", func() {
		err := association.RevokeDTO{Reason: ""}.Validate()
		Expect(errors.Is(err, internal.ErrReasonRequired)).To(BeTrue())
	})

	It("should reject a whitespace-only reason", func() {
		err := association.RevokeDTO{Reason: "   \t"}.Validate()
		Expect(errors.Is(err, internal.ErrReasonRequired)).To(BeTrue())
	})

	It("should accept a non-blank reason", func() {
		Expect(association.RevokeDTO{Reason: "venue conflict"}.Validate()).To(Succeed())
	})
})
