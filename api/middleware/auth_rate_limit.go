package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/config"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// AuthRateLimitPolicy is a fixed-window limit applied per client IP and per
// submitted email.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int64
	emailLimit int64
}

// LoginRateLimitPolicy builds the policy guarding POST /auth/login.
func LoginRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       "login",
		window:     cfg.LoginWindow,
		ipLimit:    int64(cfg.LoginIPLimit),
		emailLimit: int64(cfg.LoginEmailLimit),
	}
}

// RegisterRateLimitPolicy builds the policy guarding POST /auth/register.
func RegisterRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       "register",
		window:     cfg.RegisterWindow,
		ipLimit:    int64(cfg.RegisterIPLimit),
		emailLimit: int64(cfg.RegisterEmailLimit),
	}
}

// AuthRateLimit throttles credential endpoints. The IP dimension blunts wide
// scans; the email dimension blunts targeted guessing even across IPs.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if ip != "" {
				allowed, err := allow(ctx, store, "rl:ip:"+policy.name+":"+ip, policy.ipLimit, policy.window)
				if err != nil {
					logg.Warn(logg.WithField(ctx, "limiter", policy.name), "auth.rate_limit.store_error")
				} else if !allowed {
					respondRateLimited(ctx, logg, w, policy.name, "ip")
					return
				}
			}

			email, body := extractEmail(r)
			if body != nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
			}
			if email != "" {
				key := "rl:email:" + policy.name + ":" + hashValue(email)
				allowed, err := allow(ctx, store, key, policy.emailLimit, policy.window)
				if err != nil {
					logg.Warn(logg.WithField(ctx, "limiter", policy.name), "auth.rate_limit.store_error")
				} else if !allowed {
					respondRateLimited(ctx, logg, w, policy.name, "email")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allow(ctx context.Context, store rateLimiterStore, key string, limit int64, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return true, err
	}
	return count <= limit, nil
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policyName, dimension string) {
	ctx = logg.WithFields(ctx, map[string]any{
		"limiter":   policyName,
		"dimension": dimension,
	})
	logg.Warn(ctx, "auth.rate_limit.blocked")
	responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, slow down"))
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// extractEmail peeks at the JSON body for an email field. The consumed body
// is returned so the caller can restore it.
func extractEmail(r *http.Request) (string, []byte) {
	if r.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return "", nil
	}
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", body
	}
	return normalizeEmail(payload.Email), body
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
