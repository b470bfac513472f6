package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/role"
)

type mockAuthRepository struct {
	credentials     map[string]*auth.Credentials
	actors          map[int64]*auth.Actor
	touchedLogins   []int64
	touchLoginError error
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		credentials: make(map[string]*auth.Credentials),
		actors:      make(map[int64]*auth.Actor),
	}
}

func (m *mockAuthRepository) GetCredentials(_ context.Context, email string) (*auth.Credentials, error) {
	creds, ok := m.credentials[email]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return creds, nil
}

func (m *mockAuthRepository) GetActor(_ context.Context, userID int64) (*auth.Actor, error) {
	actor, ok := m.actors[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return actor, nil
}

func (m *mockAuthRepository) TouchLastLogin(_ context.Context, userID int64) error {
	if m.touchLoginError != nil {
		return m.touchLoginError
	}
	m.touchedLogins = append(m.touchedLogins, userID)
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokenGen *auth.JWTTokenGenerator
		ctx      context.Context
	)

	const (
		accessSecret  = "test-access-secret-at-least-32-chars!!"
		refreshSecret = "test-refresh-secret-at-least-32-chars!"
		password      = "correct horse battery staple"
	)

	seedUser := func(id int64, email string, active bool) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).ToNot(HaveOccurred())

		mockRepo.credentials[email] = &auth.Credentials{
			UserID:       id,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role.SiteAdmin,
			IsActive:     active,
		}
		if active {
			mockRepo.actors[id] = &auth.Actor{ID: id, Email: email, Role: role.SiteAdmin}
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = newMockAuthRepository()
		tokenGen = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, logger)
	})

	Describe("Authenticate", func() {
		It("should return a token pair for valid active credentials", func() {
			seedUser(1, "admin@camp.test", true)

			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "admin@camp.test", Password: password})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
			Expect(mockRepo.touchedLogins).To(ContainElement(int64(1)))
		})

		It("should reject a wrong password", func() {
			seedUser(1, "admin@camp.test", true)

			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "admin@camp.test", Password: "wrong"})

			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("should reject an unknown email without revealing whether it exists", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "ghost@camp.test", Password: password})

			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("should reject a suspended user even with the correct password", func() {
			seedUser(2, "suspended@camp.test", false)

			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "suspended@camp.test", Password: password})

			Expect(errors.Is(err, internal.ErrUserInactive)).To(BeTrue())
		})

		It("should reject a malformed email before hitting the repository", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "not-an-email", Password: password})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("token validation", func() {
		It("should round-trip claims through an access token", func() {
			seedUser(1, "admin@camp.test", true)

			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "admin@camp.test", Password: password})
			Expect(err).ToNot(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(1)))
			Expect(claims.Email).To(Equal("admin@camp.test"))
		})

		It("should reject a refresh token presented as an access token", func() {
			seedUser(1, "admin@camp.test", true)

			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "admin@camp.test", Password: password})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(tokens.RefreshToken)
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})

		It("should reject garbage tokens", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh pair for an active user", func() {
			seedUser(1, "admin@camp.test", true)

			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "admin@camp.test", Password: password})
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
		})

		It("should refuse to refresh for a user suspended since login", func() {
			seedUser(1, "admin@camp.test", true)

			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "admin@camp.test", Password: password})
			Expect(err).ToNot(HaveOccurred())

			// Suspension removes the actor from the active set.
			delete(mockRepo.actors, 1)

			_, err = service.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(errors.Is(err, internal.ErrUserInactive)).To(BeTrue())
		})
	})

	Describe("HashPassword", func() {
		It("should produce a hash that verifies against the password", func() {
			hash, err := service.HashPassword("hunter2-hunter2")
			Expect(err).ToNot(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2-hunter2"))).To(Succeed())
		})
	})
})
