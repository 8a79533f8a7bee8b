package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the resolved caller, taken from a verified access token
// without a database round-trip.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Username string
}

// Authenticate resolves the access-token cookie into an Identity in the
// request context. Missing, invalid, and expired tokens all leave the
// context without an identity; rejection happens in RequireAuth so public
// routes can share the middleware.
func (s *Service) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := readCookie(r, AccessCookieName)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.VerifyAccessToken(tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		identity := &Identity{
			UserID:   userID,
			Email:    claims.Email,
			Username: claims.Username,
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that carry no resolved identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			requestID := apperr.GetRequestID(r.Context())
			apperr.WriteError(w, requestID, apperr.Unauthorized("not authenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the resolved identity or nil. It never fails; "no
// session" and "bad session" look identical to callers.
func CurrentUser(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// WithIdentity returns a context carrying the identity. Used by tests.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
