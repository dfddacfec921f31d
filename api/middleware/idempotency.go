package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tailorline/storefront/api/responses"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	pkgredis "github.com/tailorline/storefront/pkg/redis"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	idempotencyHeader     = "Idempotency-Key"
	maxIdempotencyKeyLen  = 255
)

// idempotencyRule marks a write route as replayable. A pattern ending in
// "/" matches every route below it.
type idempotencyRule struct {
	method  string
	pattern string
	ttl     time.Duration
}

func (r idempotencyRule) matches(method, pattern string) bool {
	if r.method != method || pattern == "" {
		return false
	}
	if strings.HasSuffix(r.pattern, "/") {
		return strings.HasPrefix(pattern, r.pattern)
	}
	return strings.TrimSuffix(pattern, "/") == r.pattern
}

func idempotencyRules(orderTTL time.Duration) []idempotencyRule {
	if orderTTL <= 0 {
		orderTTL = defaultIdempotencyTTL
	}
	return []idempotencyRule{
		{method: http.MethodPost, pattern: "/api/orders", ttl: orderTTL},
		{method: http.MethodPut, pattern: "/api/admin/orders/", ttl: defaultIdempotencyTTL},
	}
}

func routeTTL(rules []idempotencyRule, method, pattern string) (time.Duration, bool) {
	for _, rule := range rules {
		if rule.matches(method, pattern) {
			return rule.ttl, true
		}
	}
	return 0, false
}

// storedResponse is what gets replayed. Pending marks a key whose first
// request is still running.
type storedResponse struct {
	Pending     bool   `json:"pending,omitempty"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
	RequestHash string `json:"request_hash"`
}

type idempotencyGuard struct {
	store pkgredis.IdempotencyStore
	logg  *logger.Logger
	key   string
	hash  string
	ttl   time.Duration
}

// Idempotency replays the stored response when a client retries a write
// with the same Idempotency-Key. Requests without the header pass through.
// Server errors release the key so the client can retry.
func Idempotency(store pkgredis.IdempotencyStore, orderTTL time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	rules := idempotencyRules(orderTTL)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, ok := routeTTL(rules, r.Method, routePattern(r))
			clientKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if !ok || store == nil || clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(clientKey) > maxIdempotencyKeyLen {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header too long"))
				return
			}

			body, err := peekBody(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "read request"))
				return
			}
			sum := sha256.Sum256(body)
			g := &idempotencyGuard{
				store: store,
				logg:  logg,
				key:   store.IdempotencyKey(r.Method+"|"+r.URL.Path, clientKey),
				hash:  hex.EncodeToString(sum[:]),
				ttl:   ttl,
			}

			if err := g.claim(r.Context(), w); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if g.key == "" {
				return
			}

			ctx := context.WithoutCancel(r.Context())
			defer func() {
				if rec := recover(); rec != nil {
					g.release(ctx)
					panic(rec)
				}
			}()
			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)
			g.finish(ctx, capture)
		})
	}
}

// claim either reserves the key for this request or answers from the
// stored response. It clears g.key once the response has been written.
func (g *idempotencyGuard) claim(ctx context.Context, w http.ResponseWriter) error {
	stored, err := g.store.Get(ctx, g.key)
	switch {
	case err != nil && !errors.Is(err, redis.Nil):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency")
	case stored != "":
		var prior storedResponse
		if err := json.Unmarshal([]byte(stored), &prior); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record")
		}
		if prior.RequestHash != g.hash {
			return pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body")
		}
		if prior.Pending {
			return errInFlight
		}
		if prior.ContentType != "" {
			w.Header().Set("Content-Type", prior.ContentType)
		}
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(prior.Status)
		_, _ = w.Write(prior.Body)
		g.key = ""
		return nil
	}

	marker, _ := json.Marshal(storedResponse{Pending: true, RequestHash: g.hash})
	claimed, err := g.store.SetNX(ctx, g.key, string(marker), g.ttl)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim idempotency key")
	}
	if !claimed {
		return errInFlight
	}
	return nil
}

var errInFlight = pkgerrors.New(pkgerrors.CodeIdempotency, "a request with this idempotency key is in progress")

// finish stores the captured response, or releases the key after a server
// error.
func (g *idempotencyGuard) finish(ctx context.Context, capture *responseCapture) {
	status := defaultStatus(capture.status)
	if status >= http.StatusInternalServerError {
		g.release(ctx)
		return
	}
	payload, err := json.Marshal(storedResponse{
		Status:      status,
		ContentType: capture.Header().Get("Content-Type"),
		Body:        capture.body.Bytes(),
		RequestHash: g.hash,
	})
	if err != nil {
		logError(ctx, g.logg, "marshal idempotency record", err)
		return
	}
	logError(ctx, g.logg, "persist idempotency record", g.store.Set(ctx, g.key, string(payload), g.ttl))
}

func (g *idempotencyGuard) release(ctx context.Context) {
	logError(ctx, g.logg, "release idempotency key", g.store.Del(ctx, g.key))
}
