package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tailorline/storefront/api/responses"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	pkgredis "github.com/tailorline/storefront/pkg/redis"
)

// RateLimitPolicy throttles one traffic surface per client IP and,
// optionally, per submitted email address.
type RateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) RateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "default"
	}
	return RateLimitPolicy{name: name, window: window, ipLimit: ipLimit, emailLimit: emailLimit}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// counter is one fixed window the request is counted against.
type counter struct {
	kind  string
	value string
	limit int
}

// RateLimit enforces fixed window counters kept in redis. The client IP is
// always counted first; the email counter only runs for JSON bodies that
// carry one.
func RateLimit(policy RateLimitPolicy, store pkgredis.RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			counters := make([]counter, 0, 2)
			if policy.ipLimit > 0 {
				if ip := clientIP(r); ip != "" {
					counters = append(counters, counter{kind: "ip", value: ip, limit: policy.ipLimit})
				}
			}
			if policy.emailLimit > 0 && isJSON(r) {
				body, err := peekBody(r)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "read request"))
					return
				}
				if email := extractEmail(body); email != "" {
					sum := sha256.Sum256([]byte(email))
					counters = append(counters, counter{kind: "email", value: hex.EncodeToString(sum[:]), limit: policy.emailLimit})
				}
			}

			for _, c := range counters {
				key := store.RateLimitKey(c.kind + ":" + policy.name + ":" + c.value)
				count, err := store.IncrWithTTL(r.Context(), key, policy.window)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(c.limit) {
					rejectRateLimited(w, r, logg, policy, c, count)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(w http.ResponseWriter, r *http.Request, logg *logger.Logger, policy RateLimitPolicy, c counter, count int64) {
	ctx := r.Context()
	if logg != nil {
		field := "ip"
		if c.kind == "email" {
			field = "email_hash"
		}
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"scope":          c.kind,
			"policy":         policy.name,
			"attempts":       count,
			"limit":          c.limit,
			"window_seconds": int(policy.window.Seconds()),
			field:            c.value,
		}), "rate_limit.blocked")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(policy.window.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests, please try again later."))
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket address.
func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

// extractEmail returns the normalized email or user_email field of a JSON body.
func extractEmail(payload []byte) string {
	var body struct {
		Email     string `json:"email"`
		UserEmail string `json:"user_email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	email := body.Email
	if email == "" {
		email = body.UserEmail
	}
	return strings.ToLower(strings.TrimSpace(email))
}
