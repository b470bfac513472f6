package workflow_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/association"
	"github.com/frahmantamala/camp-management/internal/audit"
	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/event"
	"github.com/frahmantamala/camp-management/internal/role"
	"github.com/frahmantamala/camp-management/internal/user"
	"github.com/frahmantamala/camp-management/internal/workflow"
)

func TestWorkflow(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Workflow Suite")
}

// mockUserStore keeps versioned users in memory and enforces the same
// conditional-write contract as the real repository. beforeSave, when set,
// runs once before the version check to simulate an interleaved writer.
type mockUserStore struct {
	users      map[int64]*user.User
	beforeSave func(*mockUserStore)
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int64]*user.User)}
}

func (m *mockUserStore) put(u *user.User) {
	if u.Version == 0 {
		u.Version = 1
	}
	m.users[u.ID] = u
}

func (m *mockUserStore) Get(_ context.Context, id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	snapshot := *u
	return &snapshot, nil
}

func (m *mockUserStore) Save(_ context.Context, u *user.User, expectedVersion int64) error {
	if m.beforeSave != nil {
		hook := m.beforeSave
		m.beforeSave = nil
		hook(m)
	}

	stored, ok := m.users[u.ID]
	if !ok || stored.Version != expectedVersion {
		return internal.ErrConcurrentWrite
	}

	updated := *u
	updated.Version = expectedVersion + 1
	m.users[u.ID] = &updated
	u.Version = updated.Version
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id int64, expectedVersion int64) error {
	stored, ok := m.users[id]
	if !ok || stored.Version != expectedVersion {
		return internal.ErrConcurrentWrite
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) Counts(_ context.Context) (user.Counts, error) {
	var counts user.Counts
	for _, u := range m.users {
		counts.Total++
		if u.IsActive {
			counts.Active++
		} else {
			counts.Suspended++
		}
	}
	return counts, nil
}

type mockEventStore struct {
	events map[int64]*event.Event
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: make(map[int64]*event.Event)}
}

func (m *mockEventStore) put(ev *event.Event) {
	if ev.Version == 0 {
		ev.Version = 1
	}
	m.events[ev.ID] = ev
}

func (m *mockEventStore) Get(_ context.Context, id int64) (*event.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, internal.ErrEventNotFound
	}
	snapshot := *ev
	return &snapshot, nil
}

func (m *mockEventStore) Save(_ context.Context, ev *event.Event, expectedVersion int64) error {
	stored, ok := m.events[ev.ID]
	if !ok || stored.Version != expectedVersion {
		return internal.ErrConcurrentWrite
	}
	updated := *ev
	updated.Version = expectedVersion + 1
	m.events[ev.ID] = &updated
	ev.Version = updated.Version
	return nil
}

func (m *mockEventStore) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, ev := range m.events {
		counts[ev.Status.String()]++
	}
	return counts, nil
}

type mockAssociationStore struct {
	associations map[int64]*association.CampEventAssociation
}

func newMockAssociationStore() *mockAssociationStore {
	return &mockAssociationStore{associations: make(map[int64]*association.CampEventAssociation)}
}

func (m *mockAssociationStore) put(a *association.CampEventAssociation) {
	if a.Version == 0 {
		a.Version = 1
	}
	m.associations[a.ID] = a
}

func (m *mockAssociationStore) Get(_ context.Context, id int64) (*association.CampEventAssociation, error) {
	a, ok := m.associations[id]
	if !ok {
		return nil, internal.ErrAssociationNotFound
	}
	snapshot := *a
	return &snapshot, nil
}

func (m *mockAssociationStore) Save(_ context.Context, a *association.CampEventAssociation, expectedVersion int64) error {
	stored, ok := m.associations[a.ID]
	if !ok || stored.Version != expectedVersion {
		return internal.ErrConcurrentWrite
	}
	updated := *a
	updated.Version = expectedVersion + 1
	m.associations[a.ID] = &updated
	a.Version = updated.Version
	return nil
}

func (m *mockAssociationStore) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, a := range m.associations {
		counts[a.Status.String()]++
	}
	return counts, nil
}

type mockAuditEmitter struct {
	entries []audit.Entry
}

func (m *mockAuditEmitter) Emit(_ context.Context, entry audit.Entry) {
	m.entries = append(m.entries, entry)
}

var _ = Describe("Engine", func() {
	var (
		engine       *workflow.Engine
		users        *mockUserStore
		eventStore   *mockEventStore
		associations *mockAssociationStore
		auditor      *mockAuditEmitter
		ctx          context.Context
	)

	siteAdmin := auth.Actor{ID: 100, Email: "site@camp.test", Role: role.SiteAdmin}
	globalAdmin := auth.Actor{ID: 101, Email: "global@camp.test", Role: role.GlobalAdmin}
	member := auth.Actor{ID: 102, Email: "member@camp.test", Role: role.Member}

	BeforeEach(func() {
		ctx = context.Background()
		users = newMockUserStore()
		eventStore = newMockEventStore()
		associations = newMockAssociationStore()
		auditor = &mockAuditEmitter{}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		gate := auth.NewGate(logger)
		engine = workflow.NewEngine(users, eventStore, associations, gate, auditor, logger)
	})

	Describe("user transitions", func() {
		BeforeEach(func() {
			users.put(&user.User{ID: 1, Email: "target@camp.test", IsActive: true})
		})

		It("should suspend an active user and record the audit entry", func() {
			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.User.IsActive).To(BeFalse())
			Expect(result.Message).To(Equal("User target@camp.test has been suspended"))
			Expect(users.users[1].IsActive).To(BeFalse())

			Expect(auditor.entries).To(HaveLen(1))
			Expect(auditor.entries[0].Action).To(Equal("user.suspend"))
			Expect(auditor.entries[0].PreviousState).To(Equal(user.StatusActive))
			Expect(auditor.entries[0].NewState).To(Equal(user.StatusSuspended))
			Expect(auditor.entries[0].ActorID).To(Equal(siteAdmin.ID))
		})

		It("should fail to suspend an already suspended user", func() {
			users.users[1].IsActive = false

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})

			Expect(errors.Is(err, internal.ErrInvalidTransition)).To(BeTrue())
			Expect(auditor.entries).To(BeEmpty())
		})

		It("should fail to reactivate an active user", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionReactivateUser, TargetID: 1,
			})

			Expect(errors.Is(err, internal.ErrInvalidTransition)).To(BeTrue())
		})

		It("should reactivate a suspended user", func() {
			users.users[1].IsActive = false

			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionReactivateUser, TargetID: 1,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.User.IsActive).To(BeTrue())
			Expect(result.Message).To(Equal("User target@camp.test has been reactivated"))
		})

		It("should deny self-suspension even for a global admin", func() {
			users.put(&user.User{ID: globalAdmin.ID, Email: globalAdmin.Email, IsActive: true})

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: globalAdmin, Action: auth.ActionSuspendUser, TargetID: globalAdmin.ID,
			})

			Expect(errors.Is(err, internal.ErrSelfActionForbidden)).To(BeTrue())
			Expect(users.users[globalAdmin.ID].IsActive).To(BeTrue())
		})

		It("should deny suspension by a non-admin without mutating", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: member, Action: auth.ActionSuspendUser, TargetID: 1,
			})

			Expect(errors.Is(err, internal.ErrInsufficientRole)).To(BeTrue())
			Expect(users.users[1].IsActive).To(BeTrue())
			Expect(auditor.entries).To(BeEmpty())
		})

		It("should fail with not-found for an absent target", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 999,
			})

			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})

		It("should not be re-appliable after a committed suspend", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})
			Expect(errors.Is(err, internal.ErrInvalidTransition)).To(BeTrue())
		})
	})

	Describe("user deletion", func() {
		BeforeEach(func() {
			users.put(&user.User{ID: 1, Email: "target@camp.test", IsActive: true})
		})

		It("should let a global admin delete another user and keep the audit row", func() {
			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: globalAdmin, Action: auth.ActionDeleteUser, TargetID: 1,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Message).To(Equal("User target@camp.test has been deleted"))
			Expect(users.users).ToNot(HaveKey(int64(1)))

			Expect(auditor.entries).To(HaveLen(1))
			Expect(auditor.entries[0].NewState).To(Equal("deleted"))
		})

		It("should deny deletion by a site admin", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionDeleteUser, TargetID: 1,
			})

			Expect(errors.Is(err, internal.ErrInsufficientRole)).To(BeTrue())
			Expect(users.users).To(HaveKey(int64(1)))
		})

		It("should deny self-deletion for a global admin", func() {
			users.put(&user.User{ID: globalAdmin.ID, Email: globalAdmin.Email, IsActive: true})

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: globalAdmin, Action: auth.ActionDeleteUser, TargetID: globalAdmin.ID,
			})

			Expect(errors.Is(err, internal.ErrSelfActionForbidden)).To(BeTrue())
		})
	})

	Describe("event status overrides", func() {
		BeforeEach(func() {
			eventStore.put(&event.Event{ID: 1, Title: "Burn Night", Status: event.StatusPending})
		})

		It("should apply pending to approved with an empty reason", func() {
			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "approved", Reason: "",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Event.Status).To(Equal(event.StatusApproved))
			Expect(result.Event.StatusReason).ToNot(BeNil())
			Expect(*result.Event.StatusReason).To(Equal(""))
			Expect(result.Event.StatusChangedAt).ToNot(BeNil())
			Expect(result.Message).To(Equal("Event status changed from pending to approved"))
		})

		It("should include a non-empty reason in the outcome message", func() {
			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "rejected", Reason: "missing insurance",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Message).To(Equal("Event status changed from pending to rejected. Reason: missing insurance"))
		})

		It("should allow any override between distinct statuses, including cancelled to pending", func() {
			eventStore.events[1].Status = event.StatusCancelled

			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "pending",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Event.Status).To(Equal(event.StatusPending))
		})

		It("should reject the identity transition as a no-op", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "pending",
			})

			Expect(errors.Is(err, internal.ErrNoOpTransition)).To(BeTrue())
			Expect(auditor.entries).To(BeEmpty())
		})

		It("should reject an unknown status at the boundary", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "archived",
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})

		It("should not be re-appliable after a committed override", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "approved",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSetEventStatus, TargetID: 1,
				Status: "approved",
			})
			Expect(errors.Is(err, internal.ErrNoOpTransition)).To(BeTrue())
		})
	})

	Describe("association revoke", func() {
		BeforeEach(func() {
			approvedAt := time.Now().Add(-24 * time.Hour)
			associations.put(&association.CampEventAssociation{
				ID: 1, CampID: 10, EventID: 20,
				Status:     association.StatusApproved,
				ApprovedAt: &approvedAt,
			})
		})

		It("should revoke an approved association and clear the approval timestamp", func() {
			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionRevokeAssociation, TargetID: 1,
				Reason: "venue conflict",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Association.Status).To(Equal(association.StatusRevoked))
			Expect(result.Association.ApprovedAt).To(BeNil())
			Expect(result.Message).To(Equal("Association revoked successfully"))

			Expect(auditor.entries).To(HaveLen(1))
			Expect(auditor.entries[0].Reason).ToNot(BeNil())
			Expect(*auditor.entries[0].Reason).To(Equal("venue conflict"))
		})

		It("should fail a second revoke on the same association", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionRevokeAssociation, TargetID: 1,
				Reason: "venue conflict",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionRevokeAssociation, TargetID: 1,
				Reason: "again",
			})
			Expect(errors.Is(err, internal.ErrUnsupportedAction)).To(BeTrue())
		})

		It("should fail with an empty reason before any mutation", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionRevokeAssociation, TargetID: 1,
				Reason: "",
			})

			Expect(errors.Is(err, internal.ErrReasonRequired)).To(BeTrue())
			Expect(associations.associations[1].Status).To(Equal(association.StatusApproved))
			Expect(associations.associations[1].ApprovedAt).ToNot(BeNil())
		})

		It("should fail with a whitespace-only reason", func() {
			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionRevokeAssociation, TargetID: 1,
				Reason: "   ",
			})

			Expect(errors.Is(err, internal.ErrReasonRequired)).To(BeTrue())
		})

		It("should fail as unsupported on a pending association", func() {
			associations.associations[1].Status = association.StatusPending
			associations.associations[1].ApprovedAt = nil

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionRevokeAssociation, TargetID: 1,
				Reason: "venue conflict",
			})

			Expect(errors.Is(err, internal.ErrUnsupportedAction)).To(BeTrue())
		})
	})

	Describe("association cancel-rejection", func() {
		BeforeEach(func() {
			reason := "incomplete application"
			associations.put(&association.CampEventAssociation{
				ID: 1, CampID: 10, EventID: 20,
				Status: association.StatusRejected,
				Reason: &reason,
			})
		})

		It("should revert a rejected association to pending and clear the reason", func() {
			result, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionCancelRejection, TargetID: 1,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Association.Status).To(Equal(association.StatusPending))
			Expect(result.Association.Reason).To(BeNil())
			Expect(result.Message).To(Equal("Association rejection cancelled successfully. Status reverted to pending."))
		})

		It("should fail as unsupported on a pending association", func() {
			associations.associations[1].Status = association.StatusPending

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionCancelRejection, TargetID: 1,
			})

			Expect(errors.Is(err, internal.ErrUnsupportedAction)).To(BeTrue())
		})

		It("should fail as unsupported on an approved association", func() {
			associations.associations[1].Status = association.StatusApproved

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionCancelRejection, TargetID: 1,
			})

			Expect(errors.Is(err, internal.ErrUnsupportedAction)).To(BeTrue())
		})
	})

	Describe("concurrent modification", func() {
		It("should surface a conflict when another writer commits first, then fail the retry", func() {
			users.put(&user.User{ID: 1, Email: "target@camp.test", IsActive: true})

			// Another admin's suspend lands between our fetch and save.
			users.beforeSave = func(m *mockUserStore) {
				stored := m.users[1]
				stored.IsActive = false
				stored.Version++
			}

			_, err := engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})
			Expect(errors.Is(err, internal.ErrConcurrentWrite)).To(BeTrue())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Retryable()).To(BeTrue())

			// Retry from a fresh fetch sees the already-suspended user.
			_, err = engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})
			Expect(errors.Is(err, internal.ErrInvalidTransition)).To(BeTrue())
		})
	})

	Describe("Stats", func() {
		It("should equal a full scan of the stores at query time", func() {
			users.put(&user.User{ID: 1, IsActive: true})
			users.put(&user.User{ID: 2, IsActive: true})
			users.put(&user.User{ID: 3, IsActive: false})

			eventStore.put(&event.Event{ID: 1, Status: event.StatusPending})
			eventStore.put(&event.Event{ID: 2, Status: event.StatusPending})
			eventStore.put(&event.Event{ID: 3, Status: event.StatusApproved})

			associations.put(&association.CampEventAssociation{ID: 1, Status: association.StatusPending})
			associations.put(&association.CampEventAssociation{ID: 2, Status: association.StatusRevoked})

			stats, err := engine.Stats(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(stats.TotalUsers).To(Equal(int64(3)))
			Expect(stats.ActiveUsers).To(Equal(int64(2)))
			Expect(stats.SuspendedUsers).To(Equal(int64(1)))
			Expect(stats.PendingEvents).To(Equal(int64(2)))
			Expect(stats.PendingAssociations).To(Equal(int64(1)))
			Expect(stats.EventsByStatus["approved"]).To(Equal(int64(1)))
			Expect(stats.AssociationsByStatus["revoked"]).To(Equal(int64(1)))
		})

		It("should reflect mutations on the next query without incremental counters", func() {
			users.put(&user.User{ID: 1, Email: "target@camp.test", IsActive: true})

			before, err := engine.Stats(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(before.ActiveUsers).To(Equal(int64(1)))

			_, err = engine.Apply(ctx, workflow.TransitionRequest{
				Actor: siteAdmin, Action: auth.ActionSuspendUser, TargetID: 1,
			})
			Expect(err).ToNot(HaveOccurred())

			after, err := engine.Stats(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(after.ActiveUsers).To(Equal(int64(0)))
			Expect(after.SuspendedUsers).To(Equal(int64(1)))
		})
	})
})
