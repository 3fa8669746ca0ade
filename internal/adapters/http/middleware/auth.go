package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
)

var ErrMissingToken = errors.New("missing bearer token")

type identityKey struct{}

// Authenticator resolves a raw bearer token into the caller's identity.
type Authenticator struct {
	tokens      domain.TokenService
	revocations domain.RevocationStore
}

// NewAuthenticator builds an Authenticator. revocations may be nil, in which
// case logged out tokens stay valid until they expire.
func NewAuthenticator(tokens domain.TokenService, revocations domain.RevocationStore) *Authenticator {
	return &Authenticator{tokens: tokens, revocations: revocations}
}

func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*domain.Identity, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	identity, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	if a.revocations != nil {
		revoked, err := a.revocations.IsRevoked(ctx, identity.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrRevokedToken
		}
	}

	return identity, nil
}

// BearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func AuthGuard(auth *Authenticator, writer response.ResponseWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				writer.Write(w, http.StatusUnauthorized, &response.Response{
					Message: "missing or malformed authorization header",
					Code:    response.CodeUnauthorized,
				})
				return
			}

			identity, err := auth.Authenticate(r.Context(), raw)
			if err != nil {
				status, res := authFailure(err)
				writer.Write(w, status, res)
				return
			}

			setUserID(r.Context(), identity.UserID)
			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authFailure(err error) (int, *response.Response) {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, &response.Response{Message: "token expired", Code: response.CodeTokenExpired}
	case errors.Is(err, domain.ErrRevokedToken):
		return http.StatusUnauthorized, &response.Response{Message: "token revoked", Code: response.CodeTokenRevoked}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, &response.Response{Message: "invalid token", Code: response.CodeInvalidToken}
	case errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized, &response.Response{Message: "missing bearer token", Code: response.CodeUnauthorized}
	default:
		return http.StatusInternalServerError, &response.Response{Message: "failed to authenticate", Code: response.CodeInternal}
	}
}

func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*domain.Identity)
	return identity, ok && identity != nil
}
