package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"caredesk/internal/adapters/memory"
	"caredesk/internal/core/token"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
	"caredesk/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *token.Service, *memory.RevocationStore) {
	t.Helper()

	tokens := token.NewService("test-secret", time.Hour, token.WithIssuer("caredesk"))
	revocations := memory.NewRevocationStore()

	svc := NewService(
		memory.NewUserRepository(memory.NewStore()),
		tokens,
		revocations,
		validator.New(),
		logger.Nop(),
	).(*Service)
	svc.cost = bcrypt.MinCost

	return svc, tokens, revocations
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, tokens, _ := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "  User A ",
		Email:    "A@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "User A", res.User.Name)
	assert.Equal(t, "a@example.com", res.User.Email)
	assert.NotEqual(t, "password123", res.User.Password)
	assert.NotEmpty(t, res.Token)

	identity, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, identity.UserID)
	assert.WithinDuration(t, res.ExpiresAt, identity.ExpiresAt, time.Second)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Email: "nope", Password: "short"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}

func TestRegisterRejectsBlankName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "   ", Email: "a@example.com", Password: "password123",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name     string
		password string
	}{
		{"ascii", strings.Repeat("a", 80)},
		{"multibyte under rune limit", strings.Repeat("é", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), domain.RegisterRequest{
				Name: "A", Email: "a@example.com", Password: tt.password,
			})

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "password")
		})
	}

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "A", Email: "a@example.com", Password: strings.Repeat("a", domain.MaxPasswordBytes),
	})
	require.NoError(t, err)
	assert.NotZero(t, res.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Email = "A@EXAMPLE.COM"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(ctx, domain.LoginRequest{Email: "A@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", res.User.Email)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, domain.LoginRequest{Email: "b@example.com", Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, tokens, revocations := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	identity, err := tokens.Verify(res.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, identity))

	revoked, err := revocations.IsRevoked(ctx, identity.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, svc.Logout(ctx, nil), domain.ErrUnauthorized)
}

func TestGetUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, res.User.Email, user.Email)

	_, err = svc.GetUser(ctx, res.User.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
