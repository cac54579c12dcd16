package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/logger"
	"github.com/mapsensemedia/betterrental-sub009/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// claimsFrom returns the validated token claims the auth middleware stored
// on the request context.
func claimsFrom(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.Claims)
	return claims, ok
}

type authMiddleware struct {
	tokens security.TokenManager
}

func newAuthMiddleware(tokens security.TokenManager) *authMiddleware {
	return &authMiddleware{tokens: tokens}
}

func (m *authMiddleware) authenticate(r *http.Request) (*security.Claims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, security.ErrInvalidToken
	}
	claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, err
	}
	if claims.Type != security.TokenTypeAccess {
		return nil, security.ErrWrongTokenType
	}
	return claims, nil
}

// requireCustomer accepts customer tokens. Ops tokens pass too so agents can
// act on a customer's behalf over the same routes.
func (m *authMiddleware) requireCustomer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

func (m *authMiddleware) requireOps(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		if claims.Aud != security.AudienceOps {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "ops access required"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

// requireManager narrows requireOps to the MANAGER role. Used for bypass and
// deposit deductions.
func (m *authMiddleware) requireManager(next http.HandlerFunc) http.HandlerFunc {
	return m.requireOps(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := claimsFrom(r.Context())
		if claims.Role != string(domain.OperatorRoleManager) {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "manager role required"})
			return
		}
		next(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
