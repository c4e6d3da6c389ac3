package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ssemujju/sokoyetu-backend/api/responses"
	pkgerrors "github.com/ssemujju/sokoyetu-backend/pkg/errors"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ReportRateLimitPolicy defines the throttling parameters for the reporting
// endpoints.
type ReportRateLimitPolicy struct {
	name    string
	window  time.Duration
	ipLimit int
}

// NewReportRateLimitPolicy builds a policy with the supplied window and limit.
func NewReportRateLimitPolicy(name string, window time.Duration, ipLimit int) ReportRateLimitPolicy {
	return ReportRateLimitPolicy{
		name:    strings.ToLower(strings.TrimSpace(name)),
		window:  window,
		ipLimit: ipLimit,
	}
}

func (p ReportRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.ipLimit > 0
}

func (p ReportRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "reports"
	}
	return p.name
}

// ipScope names the fixed-window counter for one client; the store prefixes
// it into its rate-limit namespace.
func (p ReportRateLimitPolicy) ipScope(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("%s:ip:%s", p.normalizedName(), ip)
}

// ReportRateLimit enforces a per-IP counter on report endpoints. Statement
// builds walk every order in a window, so uncapped dashboard polling is a
// real load problem.
func ReportRateLimit(policy ReportRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			scope := policy.ipScope(ip)
			if scope == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.ipLimit), policy.window)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"policy":         policy.normalizedName(),
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.ipLimit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "reports.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
