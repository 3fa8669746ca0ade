package token

import (
	"strings"
	"testing"
	"time"

	"caredesk/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(c *clock, secret string) *Service {
	return NewService(secret, time.Hour, WithIssuer("caredesk"), WithClock(c.now))
}

func TestIssueAndVerify(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestService(c, "secret")

	tok, expiresAt, err := svc.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(time.Hour), expiresAt)

	id, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	assert.NotEmpty(t, id.TokenID)
	assert.WithinDuration(t, expiresAt, id.ExpiresAt, time.Second)
}

func TestEachTokenHasItsOwnID(t *testing.T) {
	svc := newTestService(&clock{t: time.Now()}, "secret")

	a, _, err := svc.Issue(1)
	require.NoError(t, err)
	b, _, err := svc.Issue(1)
	require.NoError(t, err)

	ia, err := svc.Verify(a)
	require.NoError(t, err)
	ib, err := svc.Verify(b)
	require.NoError(t, err)
	assert.NotEqual(t, ia.TokenID, ib.TokenID)
}

func TestVerifyRejectsExpired(t *testing.T) {
	c := &clock{t: time.Now()}
	svc := newTestService(c, "secret")

	tok, _, err := svc.Issue(1)
	require.NoError(t, err)

	c.t = c.t.Add(2 * time.Hour)
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
	assert.NotErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyHonoursLeeway(t *testing.T) {
	c := &clock{t: time.Now()}
	svc := NewService("secret", time.Hour, WithLeeway(time.Minute), WithClock(c.now))

	tok, _, err := svc.Issue(1)
	require.NoError(t, err)

	c.t = c.t.Add(time.Hour + 30*time.Second)
	_, err = svc.Verify(tok)
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	c := &clock{t: time.Now()}
	tok, _, err := newTestService(c, "other-secret").Issue(1)
	require.NoError(t, err)

	_, err = newTestService(c, "secret").Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsTamperedAndMalformed(t *testing.T) {
	c := &clock{t: time.Now()}
	svc := newTestService(c, "secret")

	tok, _, err := svc.Issue(1)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, _, err := newTestService(c, "secret").Issue(999)
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	for _, bad := range []string{"", "garbage", "a.b.c", tampered} {
		_, err := svc.Verify(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", bad)
	}
}

func TestVerifyRejectsOtherAlgorithmsAndIssuers(t *testing.T) {
	c := &clock{t: time.Now()}
	svc := newTestService(c, "secret")

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ID:        "x",
		Issuer:    "caredesk",
		ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour)),
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	claims.Issuer = "someone-else"
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsBadSubject(t *testing.T) {
	c := &clock{t: time.Now()}
	svc := newTestService(c, "secret")

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ID:        "x",
		Issuer:    "caredesk",
		ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
