package authapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"todo/cmd/security/token"
)

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated identifier.
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Identity extracts the authenticated identifier attached by RequireAuth.
func Identity(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}

// RequireAuth gates next behind a bearer access token.
//
// A missing or malformed Authorization header yields 401; a present but
// unverifiable token yields 403. The verification cause is logged at
// debug level and never sent to the caller. On success the token subject
// is attached to the request context for Identity.
func RequireAuth(log *slog.Logger, tokens *token.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			WriteMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		subject, err := tokens.Verify(raw, time.Now().UTC())
		if err != nil {
			log.Debug("auth.token.invalid",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			WriteMessage(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), subject)))
	})
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}
