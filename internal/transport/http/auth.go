package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clickwork/clickwork/pkg/api"
	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/golang-jwt/jwt/v5"
)

const userIDHeader = "X-User-ID"

type userKey struct{}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

func userIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userKey{}).(string); ok {
		return id
	}

	return ""
}

// authenticateJWT returns the subject of an HS256 token signed with secret.
func authenticateJWT(token, secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("jwt secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if !parsed.Valid {
		return "", errors.New("invalid token")
	}

	if claims.Subject == "" {
		return "", errors.New("subject claim required")
	}

	return claims.Subject, nil
}

func bearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return parts[1], true
}

// authenticate resolves the worker id from a bearer token, or from the
// X-User-ID header when the config allows it.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "internal.transport.http.authenticate"

		authz := strings.TrimSpace(r.Header.Get("Authorization"))
		header := strings.TrimSpace(r.Header.Get(userIDHeader))

		var userID string

		switch {
		case authz != "":
			token, ok := bearerToken(authz)
			if !ok {
				s.respondAPIError(w, http.StatusUnauthorized, api.UNAUTHORIZED, "invalid credentials", nil)
				return
			}

			sub, err := authenticateJWT(token, s.auth.JWTSecret)
			if err != nil {
				s.log.Warn("rejected token",
					slog.String("op", op),
					slog.String("request_id", getRequestID(r.Context())),
					sl.Err(err),
				)
				s.respondAPIError(w, http.StatusUnauthorized, api.UNAUTHORIZED, "invalid credentials", nil)

				return
			}

			userID = sub
		case header != "" && s.auth.AllowUserHeader:
			userID = header
		default:
			s.respondAPIError(w, http.StatusUnauthorized, api.UNAUTHORIZED, "authentication required", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}
